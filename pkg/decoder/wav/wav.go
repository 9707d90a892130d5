// ABOUTME: RIFF/WAVE decoder plugin backed by go-audio/wav
// ABOUTME: Needs a seekable source to walk the chunk structure
package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string { return "wav" }
func (p *Plugin) Suffixes() []string { return []string{"wav", "wave"} }

func (p *Plugin) MimeTypes() []string {
	return []string{"audio/wav", "audio/x-wav", "audio/wave"}
}

type wavCodec struct {
	dec      *gowav.Decoder
	channels int
	bytesPer int
	total    int64
	buf      *gaudio.IntBuffer
}

func newCodec(rs io.ReadSeeker) (*wavCodec, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, errors.New("not a RIFF/WAVE stream")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("no PCM chunk: %w", err)
	}

	channels := int(dec.NumChans)
	bytesPer := int(dec.BitDepth) / 8
	if channels < 1 || bytesPer < 1 {
		return nil, fmt.Errorf("unusable layout: %d channels, %d bit", dec.NumChans, dec.BitDepth)
	}

	return &wavCodec{
		dec:      dec,
		channels: channels,
		bytesPer: bytesPer,
		total:    dec.PCMLen() / int64(bytesPer*channels),
		buf: &gaudio.IntBuffer{
			Format: &gaudio.Format{
				NumChannels: channels,
				SampleRate:  int(dec.SampleRate),
			},
		},
	}, nil
}

func (c *wavCodec) Params() decoder.Params {
	return decoder.Params{
		SampleRate:     int(c.dec.SampleRate),
		Channels:       c.channels,
		BytesPerSample: c.bytesPer,
	}
}

func (c *wavCodec) TotalFrames() int64 { return c.total }

func (c *wavCodec) Unpack(dst []int32, frames int) (int, error) {
	want := frames * c.channels
	if cap(c.buf.Data) < want {
		c.buf.Data = make([]int, want)
	}
	c.buf.Data = c.buf.Data[:want]

	n, err := c.dec.PCMBuffer(c.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}

	n -= n % c.channels
	for i := 0; i < n; i++ {
		dst[i] = int32(c.buf.Data[i])
	}
	return n / c.channels, nil
}

// SeekFrame is unsupported: the chunk walker has no sample-accurate
// reposition, so decodes always run with seeking disabled.
func (c *wavCodec) SeekFrame(frame int64) error {
	return errors.New("wav: seeking is not supported")
}

func (c *wavCodec) Bitrate() int {
	return int(c.dec.SampleRate) * c.channels * c.bytesPer * 8 / 1000
}

func (c *wavCodec) Close() error { return nil }

func (p *Plugin) StreamDecode(client decoder.Client, src source.Source) error {
	if !src.Seekable() {
		return fmt.Errorf("wav: %s is not seekable", src.URI())
	}

	codec, err := newCodec(decoder.NewStreamReader(client, src))
	if err != nil {
		return fmt.Errorf("wav setup failed: %w", err)
	}
	defer codec.Close()

	return decoder.Run(client, codec, false)
}

func (p *Plugin) FileDecode(client decoder.Client, path string) error {
	src, err := source.OpenFile(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer src.Close()

	return p.StreamDecode(client, src)
}

func (p *Plugin) ScanFile(path string, tags decoder.TagSink) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return false
	}
	if d, err := dec.Duration(); err == nil {
		tags.Duration(audio.Duration(d))
	}

	dec.ReadMetadata()
	if m := dec.Metadata; m != nil {
		reportTag(tags, "ARTIST", m.Artist)
		reportTag(tags, "TITLE", m.Title)
		reportTag(tags, "GENRE", m.Genre)
		reportTag(tags, "COMMENT", m.Comments)
	}
	return true
}

func reportTag(tags decoder.TagSink, name, value string) {
	if value != "" {
		tags.Tag(name, value)
	}
}
