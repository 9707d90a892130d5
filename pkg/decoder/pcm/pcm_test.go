// ABOUTME: Tests for the raw PCM plugin
// ABOUTME: End-to-end decodes over in-memory and file sources
package pcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

type fakeClient struct {
	readyFormat   audio.Format
	readySeekable bool
	readyDuration audio.Duration
	readyCount    int

	cmd       decoder.Command
	seekFrame int64
	finished  int
	seekErrs  int
	out       bytes.Buffer
}

func (c *fakeClient) Ready(format audio.Format, seekable bool, duration audio.Duration) {
	c.readyCount++
	c.readyFormat = format
	c.readySeekable = seekable
	c.readyDuration = duration
}

func (c *fakeClient) GetCommand() decoder.Command { return c.cmd }
func (c *fakeClient) GetSeekFrame() int64 { return c.seekFrame }
func (c *fakeClient) CommandFinished() { c.finished++; c.cmd = decoder.CommandNone }
func (c *fakeClient) SeekError() { c.seekErrs++; c.cmd = decoder.CommandNone }

func (c *fakeClient) SubmitData(data []byte, bitrateKbps int) decoder.Command {
	c.out.Write(data)
	return c.cmd
}

func (c *fakeClient) OpenURI(uri string) (source.Source, error) {
	return nil, errors.New("no opener")
}

// streamSource is an unseekable source of unknown size.
type streamSource struct {
	r   *bytes.Reader
	uri string
}

func (s *streamSource) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *streamSource) Close() error { return nil }
func (s *streamSource) URI() string { return s.uri }
func (s *streamSource) Offset() int64 { return s.r.Size() - int64(s.r.Len()) }
func (s *streamSource) Size() int64 { return source.SizeUnknown }
func (s *streamSource) Seekable() bool { return false }
func (s *streamSource) SeekTo(offset int64) error { return errors.New("unsupported") }

// rampLE builds frames of interleaved 16-bit little-endian samples with
// sample value == sample index.
func rampLE(frames int) []byte {
	data := make([]byte, frames*frameBytes)
	for i := 0; i < frames*defaultChannels; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(i)))
	}
	return data
}

func TestDecodeMemory(t *testing.T) {
	const frames = 4410
	data := rampLE(frames)
	client := &fakeClient{}

	if err := New().StreamDecode(client, source.NewMemory("/a.pcm", data)); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	want := audio.Format{SampleRate: 44100, Sample: audio.SampleFormatS16, Channels: 2}
	if client.readyFormat != want {
		t.Errorf("expected %v, got %v", want, client.readyFormat)
	}
	if !client.readySeekable {
		t.Error("a memory source is seekable")
	}
	if client.readyDuration.Std().Milliseconds() != 100 {
		t.Errorf("expected 100ms, got %v", client.readyDuration)
	}

	// Little-endian input passes through sample for sample.
	if !bytes.Equal(client.out.Bytes(), data) {
		t.Errorf("output differs from input: %d vs %d bytes", client.out.Len(), len(data))
	}
}

func TestDecodeL16SwapsToHostOrder(t *testing.T) {
	data := make([]byte, 2*frameBytes)
	for i := 0; i < 4; i++ {
		binary.BigEndian.PutUint16(data[i*2:], uint16(int16(i+1)))
	}
	client := &fakeClient{}

	if err := NewL16().StreamDecode(client, source.NewMemory("/l16", data)); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	out := client.out.Bytes()
	if len(out) != len(data) {
		t.Fatalf("expected %d bytes, got %d", len(data), len(out))
	}
	for i := 0; i < 4; i++ {
		v := int16(binary.LittleEndian.Uint16(out[i*2:]))
		if v != int16(i+1) {
			t.Errorf("sample %d: expected %d, got %d", i, i+1, v)
		}
	}
}

func TestDecodeDropsPartialFrame(t *testing.T) {
	data := append(rampLE(8), 0x7F) // one stray byte
	client := &fakeClient{}

	if err := New().StreamDecode(client, source.NewMemory("/a.pcm", data)); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if client.out.Len() != 8*frameBytes {
		t.Errorf("expected 8 whole frames, got %d bytes", client.out.Len())
	}
}

func TestDecodeSeek(t *testing.T) {
	const frames = 2000
	data := rampLE(frames)
	client := &fakeClient{cmd: decoder.CommandSeek, seekFrame: 1500}

	if err := New().StreamDecode(client, source.NewMemory("/a.pcm", data)); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if client.finished != 1 {
		t.Fatalf("expected one seek acknowledgement, got %d", client.finished)
	}
	if client.out.Len() != 500*frameBytes {
		t.Errorf("expected 500 frames after the seek, got %d bytes", client.out.Len())
	}
	first := int16(binary.LittleEndian.Uint16(client.out.Bytes()))
	if first != int16(1500*defaultChannels) {
		t.Errorf("expected decode to resume at frame 1500, first sample %d", first)
	}
}

func TestDecodeUnseekableStream(t *testing.T) {
	data := rampLE(100)
	src := &streamSource{r: bytes.NewReader(data), uri: "/radio"}
	client := &fakeClient{}

	if err := New().StreamDecode(client, src); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if client.readySeekable {
		t.Error("expected an unseekable announcement")
	}
	if client.readyDuration.IsKnown() {
		t.Error("expected unknown duration for an unsized stream")
	}
	if client.out.Len() != len(data) {
		t.Errorf("expected %d bytes, got %d", len(data), client.out.Len())
	}
}

func TestFileDecodeAndScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.pcm")
	if err := os.WriteFile(path, rampLE(44100), 0o644); err != nil {
		t.Fatal(err)
	}

	client := &fakeClient{}
	if err := New().FileDecode(client, path); err != nil {
		t.Fatalf("file decode failed: %v", err)
	}
	if client.out.Len() != 44100*frameBytes {
		t.Errorf("expected one second of frames, got %d bytes", client.out.Len())
	}

	sink := &recordingSink{}
	if !New().ScanFile(path, sink) {
		t.Fatal("expected a successful scan")
	}
	if sink.duration.Std().Seconds() != 1 {
		t.Errorf("expected 1s duration, got %v", sink.duration)
	}

	if New().ScanFile(filepath.Join(t.TempDir(), "missing.pcm"), sink) {
		t.Error("expected scan failure for a missing file")
	}
}

func TestSuffixAndMimeSplit(t *testing.T) {
	if len(New().MimeTypes()) != 0 {
		t.Error("raw files are matched by suffix only")
	}
	if len(NewL16().Suffixes()) != 0 {
		t.Error("audio/L16 is matched by MIME type only")
	}
}

type recordingSink struct {
	duration audio.Duration
}

func (s *recordingSink) Duration(d audio.Duration) { s.duration = d }
func (s *recordingSink) Tag(name, value string) {}

var _ io.Reader = (*streamSource)(nil)
