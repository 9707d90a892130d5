// ABOUTME: MPEG layer 3 decoder plugin backed by hajimehoshi/go-mp3
// ABOUTME: Always yields 16-bit stereo regardless of the encoded layout
package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// The underlying decoder upmixes mono and emits interleaved signed
// 16-bit little-endian stereo, so every decoded frame is 4 bytes.
const (
	channels      = 2
	bytesPerFrame = 4
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string { return "mp3" }
func (p *Plugin) Suffixes() []string { return []string{"mp3"} }
func (p *Plugin) MimeTypes() []string { return []string{"audio/mpeg", "audio/mp3"} }

// sequentialReader hides the Seek method of a stream reader so the
// decoder does not probe an unseekable transport for its length.
type sequentialReader struct {
	io.Reader
}

type mp3Codec struct {
	dec   *gomp3.Decoder
	total int64
	buf   []byte
}

func newCodec(r io.Reader) (*mp3Codec, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3 setup failed: %w", err)
	}

	total := int64(-1)
	if n := dec.Length(); n >= 0 {
		total = n / bytesPerFrame
	}
	return &mp3Codec{dec: dec, total: total}, nil
}

func (c *mp3Codec) Params() decoder.Params {
	return decoder.Params{
		SampleRate:     c.dec.SampleRate(),
		Channels:       channels,
		BytesPerSample: 2,
	}
}

func (c *mp3Codec) TotalFrames() int64 { return c.total }

func (c *mp3Codec) Unpack(dst []int32, frames int) (int, error) {
	need := frames * bytesPerFrame
	if cap(c.buf) < need {
		c.buf = make([]byte, need)
	}

	n, err := io.ReadFull(c.dec, c.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}

	n -= n % bytesPerFrame
	for i := 0; i < n/2; i++ {
		dst[i] = int32(int16(binary.LittleEndian.Uint16(c.buf[i*2:])))
	}
	return n / bytesPerFrame, nil
}

func (c *mp3Codec) SeekFrame(frame int64) error {
	_, err := c.dec.Seek(frame*bytesPerFrame, io.SeekStart)
	return err
}

func (c *mp3Codec) Bitrate() int { return 0 }
func (c *mp3Codec) Close() error { return nil }

func (p *Plugin) StreamDecode(client decoder.Client, src source.Source) error {
	r := decoder.NewStreamReader(client, src)

	var rd io.Reader = r
	if !src.Seekable() {
		rd = sequentialReader{r}
	}

	codec, err := newCodec(rd)
	if err != nil {
		return err
	}
	defer codec.Close()

	return decoder.Run(client, codec, src.Seekable())
}

func (p *Plugin) FileDecode(client decoder.Client, path string) error {
	src, err := source.OpenFile(path)
	if err != nil {
		return fmt.Errorf("mp3: %w", err)
	}
	defer src.Close()

	return p.StreamDecode(client, src)
}

// ScanFile opens the stream far enough to learn the layout, reports
// the duration when the length is known and closes without decoding.
func (p *Plugin) ScanFile(path string, tags decoder.TagSink) bool {
	src, err := source.OpenFile(path)
	if err != nil {
		return false
	}
	defer src.Close()

	codec, err := newCodec(decoder.NewStreamReader(nil, src))
	if err != nil {
		return false
	}
	defer codec.Close()

	if d := decoder.CodecDuration(codec); d.IsKnown() {
		tags.Duration(d)
	}
	return true
}
