// ABOUTME: Raw PCM decoder plugin, headerless signed 16-bit streams
// ABOUTME: Little-endian raw files plus big-endian audio/L16 per RFC 2586
package pcm

import (
	"encoding/binary"
	"fmt"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// Raw streams carry no header, so the layout is fixed by convention.
const (
	defaultRate     = 44100
	defaultChannels = 2
	bytesPerSample  = 2
	frameBytes      = defaultChannels * bytesPerSample
)

type Plugin struct {
	name      string
	suffixes  []string
	mimes     []string
	bigEndian bool
}

// New returns the plugin for little-endian raw PCM files.
func New() *Plugin {
	return &Plugin{
		name:     "pcm",
		suffixes: []string{"pcm", "raw"},
	}
}

// NewL16 returns the plugin for the network byte order audio/L16 MIME
// type. It claims no suffixes: L16 only arrives over a typed stream.
func NewL16() *Plugin {
	return &Plugin{
		name:      "l16",
		mimes:     []string{"audio/L16"},
		bigEndian: true,
	}
}

func (p *Plugin) Name() string { return p.name }
func (p *Plugin) Suffixes() []string { return p.suffixes }
func (p *Plugin) MimeTypes() []string { return p.mimes }

type pcmCodec struct {
	r         *decoder.StreamReader
	total     int64
	bigEndian bool
	buf       []byte
}

func newCodec(r *decoder.StreamReader, size int64, bigEndian bool) *pcmCodec {
	total := int64(-1)
	if size != source.SizeUnknown {
		total = size / frameBytes
	}
	return &pcmCodec{r: r, total: total, bigEndian: bigEndian}
}

func (c *pcmCodec) Params() decoder.Params {
	return decoder.Params{
		SampleRate:     defaultRate,
		Channels:       defaultChannels,
		BytesPerSample: bytesPerSample,
	}
}

func (c *pcmCodec) TotalFrames() int64 { return c.total }

func (c *pcmCodec) Unpack(dst []int32, frames int) (int, error) {
	need := frames * frameBytes
	if cap(c.buf) < need {
		c.buf = make([]byte, need)
	}

	n := c.r.ReadFull(c.buf[:need])
	n -= n % frameBytes // drop a trailing partial frame
	for i := 0; i < n/bytesPerSample; i++ {
		var v uint16
		if c.bigEndian {
			v = binary.BigEndian.Uint16(c.buf[i*2:])
		} else {
			v = binary.LittleEndian.Uint16(c.buf[i*2:])
		}
		dst[i] = int32(int16(v))
	}
	return n / frameBytes, nil
}

func (c *pcmCodec) SeekFrame(frame int64) error {
	if !c.r.SeekAbsolute(frame * frameBytes) {
		return fmt.Errorf("seek to frame %d failed", frame)
	}
	return nil
}

func (c *pcmCodec) Bitrate() int {
	return defaultRate * defaultChannels * bytesPerSample * 8 / 1000
}

func (c *pcmCodec) Close() error { return nil }

func (p *Plugin) StreamDecode(client decoder.Client, src source.Source) error {
	r := decoder.NewStreamReader(client, src)
	codec := newCodec(r, src.Size(), p.bigEndian)
	defer codec.Close()

	return decoder.Run(client, codec, src.Seekable())
}

func (p *Plugin) FileDecode(client decoder.Client, path string) error {
	src, err := source.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	defer src.Close()

	return p.StreamDecode(client, src)
}

// ScanFile derives the duration from the file size; a headerless
// stream has nothing else to report.
func (p *Plugin) ScanFile(path string, tags decoder.TagSink) bool {
	src, err := source.OpenFile(path)
	if err != nil {
		return false
	}
	defer src.Close()

	if size := src.Size(); size != source.SizeUnknown {
		tags.Duration(audio.DurationFromFrames(size/frameBytes, defaultRate))
	}
	return true
}
