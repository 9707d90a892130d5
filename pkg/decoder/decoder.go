// ABOUTME: Decoder plugin contract and consumer-facing surfaces
// ABOUTME: Commands, client callbacks, tag sink and plugin interface
package decoder

import (
	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// Command is a transport-control request issued by the consumer and
// polled by the decode loop. At most one command is outstanding at a
// time; the loop observes it at the next poll point, never mid-chunk.
type Command uint8

const (
	CommandNone Command = iota
	CommandStart
	CommandStop
	CommandSeek
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandSeek:
		return "seek"
	default:
		return "invalid"
	}
}

// Client is the consumer half of the decode protocol.
//
// Ready is called exactly once per decode, before the first SubmitData.
// SubmitData hands over one converted block and returns the next
// command to observe, making frame submission and command polling a
// single round-trip: there is no frame queue between the two sides.
type Client interface {
	// Ready announces the negotiated format, overall seekability and
	// the stream duration (audio.UnknownDuration when the length
	// cannot be determined).
	Ready(format audio.Format, seekable bool, duration audio.Duration)

	// GetCommand returns the currently outstanding command.
	GetCommand() Command

	// GetSeekFrame returns the seek target frame. Only valid while
	// GetCommand returns CommandSeek.
	GetSeekFrame() int64

	// CommandFinished acknowledges completion of the outstanding
	// command.
	CommandFinished()

	// SeekError rejects the outstanding seek; decoding continues from
	// the prior position.
	SeekError()

	// SubmitData delivers one block of converted samples together with
	// an instantaneous bitrate estimate in kbit/s, and returns the
	// next command. The data slice is only valid during the call.
	SubmitData(data []byte, bitrateKbps int) Command

	// OpenURI opens a secondary resource, e.g. a correction stream,
	// through the same acquisition path as the primary.
	OpenURI(uri string) (source.Source, error)
}

// TagSink collects metadata reported during a scan. It is write-only:
// the subsystem never reads it back.
type TagSink interface {
	// Duration reports the stream playing time when it is known.
	Duration(d audio.Duration)

	// Tag reports one metadata pair, e.g. ("ARTIST", "...").
	Tag(name, value string)
}

// Plugin is one codec behind the decoding subsystem.
//
// StreamDecode and FileDecode block until end of stream, a stop
// command or a fatal setup error; exactly one of them is invoked per
// request depending on how the resource was opened. ScanFile probes
// duration and tags without decoding any frames.
type Plugin interface {
	Name() string

	// Suffixes lists the file suffixes this plugin handles, without
	// the leading dot.
	Suffixes() []string

	// MimeTypes lists the MIME types this plugin handles.
	MimeTypes() []string

	// StreamDecode decodes from an already opened byte source.
	StreamDecode(client Client, src source.Source) error

	// FileDecode decodes from a local path.
	FileDecode(client Client, path string) error

	// ScanFile reports duration and tags to the sink. A false return
	// means the resource cannot be scanned.
	ScanFile(path string, tags TagSink) bool
}

// Initializer is implemented by plugins that need global setup. A
// failed Init keeps the plugin out of the registry.
type Initializer interface {
	Init() error
}

// Finisher is implemented by plugins holding global resources released
// when the registry closes.
type Finisher interface {
	Finish()
}
