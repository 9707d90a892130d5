// ABOUTME: FLAC decoder plugin backed by mewkiz/flac
// ABOUTME: Interleaves per-channel subframes into the shared sample space
package flac

import (
	"errors"
	"fmt"
	"io"
	"strings"

	mewflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string { return "flac" }
func (p *Plugin) Suffixes() []string { return []string{"flac"} }
func (p *Plugin) MimeTypes() []string { return []string{"audio/flac", "audio/x-flac"} }

type flacCodec struct {
	stream   *mewflac.Stream
	seekable bool

	// cur is the partially consumed frame, off the number of frames
	// already handed out of it.
	cur *frame.Frame
	off int
}

func (c *flacCodec) Params() decoder.Params {
	info := c.stream.Info
	return decoder.Params{
		SampleRate:     int(info.SampleRate),
		Channels:       int(info.NChannels),
		BytesPerSample: (int(info.BitsPerSample) + 7) / 8,
	}
}

func (c *flacCodec) TotalFrames() int64 {
	// A zero sample count in the stream info means "not recorded".
	if c.stream.Info.NSamples == 0 {
		return -1
	}
	return int64(c.stream.Info.NSamples)
}

func (c *flacCodec) Unpack(dst []int32, frames int) (int, error) {
	channels := int(c.stream.Info.NChannels)
	got := 0

	for got < frames {
		if c.cur == nil {
			f, err := c.stream.ParseNext()
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					break
				}
				return 0, fmt.Errorf("flac frame: %w", err)
			}
			c.cur = f
			c.off = 0
		}

		avail := len(c.cur.Subframes[0].Samples)
		n := frames - got
		if n > avail-c.off {
			n = avail - c.off
		}
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				dst[(got+i)*channels+ch] = c.cur.Subframes[ch].Samples[c.off+i]
			}
		}
		got += n
		c.off += n
		if c.off == avail {
			c.cur = nil
		}
	}
	return got, nil
}

func (c *flacCodec) SeekFrame(target int64) error {
	if !c.seekable {
		return errors.New("stream is not seekable")
	}
	// The library lands on the enclosing frame boundary; discarding the
	// partial frame resynchronizes ParseNext.
	c.cur = nil
	_, err := c.stream.Seek(uint64(target))
	return err
}

func (c *flacCodec) Bitrate() int { return 0 }

func (c *flacCodec) Close() error { return c.stream.Close() }

func (p *Plugin) StreamDecode(client decoder.Client, src source.Source) error {
	r := decoder.NewStreamReader(client, src)

	var stream *mewflac.Stream
	var err error
	if src.Seekable() {
		stream, err = mewflac.NewSeek(r)
	} else {
		stream, err = mewflac.New(r)
	}
	if err != nil {
		return fmt.Errorf("flac setup failed: %w", err)
	}

	codec := &flacCodec{stream: stream, seekable: src.Seekable()}
	defer codec.Close()

	return decoder.Run(client, codec, src.Seekable())
}

func (p *Plugin) FileDecode(client decoder.Client, path string) error {
	src, err := source.OpenFile(path)
	if err != nil {
		return fmt.Errorf("flac: %w", err)
	}
	defer src.Close()

	return p.StreamDecode(client, src)
}

// ScanFile parses the metadata blocks only: duration from the stream
// info, tags from the Vorbis comment block when present.
func (p *Plugin) ScanFile(path string, tags decoder.TagSink) bool {
	stream, err := mewflac.ParseFile(path)
	if err != nil {
		return false
	}
	defer stream.Close()

	if stream.Info.NSamples > 0 {
		tags.Duration(audio.DurationFromFrames(int64(stream.Info.NSamples), int(stream.Info.SampleRate)))
	}
	for _, block := range stream.Blocks {
		if comment, ok := block.Body.(*meta.VorbisComment); ok {
			for _, tag := range comment.Tags {
				tags.Tag(strings.ToUpper(tag[0]), tag[1])
			}
		}
	}
	return true
}
