// ABOUTME: Plugin shell for hybrid lossy/correction codec backends
// ABOUTME: Pairs the primary stream with its correction companion
package hybrid

import (
	"fmt"

	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// Backend opens codec handles for a hybrid format: one whose lossy
// primary stream can be restored to lossless by a separate correction
// stream. The shell owns stream pairing and the decode loop; the
// backend only knows its bitstream.
type Backend interface {
	Name() string
	Suffixes() []string
	MimeTypes() []string

	// Open opens a codec over the primary reader, optionally combined
	// with a correction reader (nil when none is available). streaming
	// requests an open without seek structures, for one-pass sources.
	Open(primary, correction *decoder.StreamReader, streaming bool) (decoder.Codec, error)

	// OpenFile opens a codec from a local path. The backend resolves
	// the correction companion itself.
	OpenFile(path string) (decoder.Codec, error)
}

// Plugin adapts a Backend to the decoder plugin contract.
type Plugin struct {
	backend Backend
}

func New(backend Backend) *Plugin {
	return &Plugin{backend: backend}
}

func (p *Plugin) Name() string { return p.backend.Name() }
func (p *Plugin) Suffixes() []string { return p.backend.Suffixes() }
func (p *Plugin) MimeTypes() []string { return p.backend.MimeTypes() }

// StreamDecode tries to pair src with its correction companion before
// opening the codec. A missing companion is normal and decoding
// proceeds lossy; when the companion is present, the pair is only
// seekable if both streams are.
func (p *Plugin) StreamDecode(client decoder.Client, src source.Source) error {
	canSeek := src.Seekable()
	primary := decoder.NewStreamReader(client, src)

	var correction *decoder.StreamReader
	if corrSrc := decoder.OpenCorrection(client, src.URI()); corrSrc != nil {
		defer corrSrc.Close()
		canSeek = canSeek && corrSrc.Seekable()
		correction = decoder.NewStreamReader(client, corrSrc)
	}

	codec, err := p.backend.Open(primary, correction, !canSeek)
	if err != nil {
		return fmt.Errorf("%s: open %s: %w", p.Name(), src.URI(), err)
	}
	defer codec.Close()

	return decoder.Run(client, codec, canSeek)
}

func (p *Plugin) FileDecode(client decoder.Client, path string) error {
	codec, err := p.backend.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%s: open %s: %w", p.Name(), path, err)
	}
	defer codec.Close()

	return decoder.Run(client, codec, true)
}

// ScanFile opens the codec, reports the duration and closes it again
// without unpacking any frames.
func (p *Plugin) ScanFile(path string, tags decoder.TagSink) bool {
	codec, err := p.backend.OpenFile(path)
	if err != nil {
		return false
	}
	defer codec.Close()

	if d := decoder.CodecDuration(codec); d.IsKnown() {
		tags.Duration(d)
	}
	return true
}
