// ABOUTME: Codec capability interface, format negotiation and decode loop
// ABOUTME: Converts unpacked 32-bit sample slots to the negotiated width
package decoder

import (
	"encoding/binary"
	"fmt"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
)

// Params reports the raw sample layout a codec handle produces.
type Params struct {
	SampleRate     int
	Channels       int
	BytesPerSample int

	// Float marks 32-bit IEEE float output and wins over every other
	// field during negotiation.
	Float bool

	// DirectStream marks 1-bit direct stream audio.
	DirectStream bool
}

// Codec is the per-stream handle the decode loop drives. Codec
// adapters unpack into a shared 32-bit sample space: narrower integer
// formats occupy the numeric range of their declared width, float
// samples carry their IEEE bit pattern.
type Codec interface {
	// Params reports the stream layout used for format negotiation.
	Params() Params

	// TotalFrames returns the stream length in frames, -1 when the
	// codec cannot determine it.
	TotalFrames() int64

	// Unpack decodes up to frames frames into dst, interleaved with
	// Params().Channels samples per frame, and returns the number of
	// frames produced. 0 means end of stream; I/O exhaustion
	// mid-stream is end of stream, not an error.
	Unpack(dst []int32, frames int) (int, error)

	// SeekFrame repositions decoding to an absolute frame offset.
	SeekFrame(frame int64) error

	// Bitrate returns the instantaneous bitrate in kbit/s, 0 when
	// unknown.
	Bitrate() int

	// Close releases the codec handle.
	Close() error
}

// NegotiateFormat maps codec-reported parameters onto a server format:
// float wins, then direct-stream, then the byte width. An unmapped
// width is rejected, which is fatal for the decode attempt.
func NegotiateFormat(p Params) (audio.Format, error) {
	sample := audio.SampleFormatUndefined
	switch {
	case p.Float:
		sample = audio.SampleFormatFloat32
	case p.DirectStream:
		sample = audio.SampleFormatDSD
	default:
		switch p.BytesPerSample {
		case 1:
			sample = audio.SampleFormatS8
		case 2:
			sample = audio.SampleFormatS16
		case 3:
			sample = audio.SampleFormatS24P32
		case 4:
			sample = audio.SampleFormatS32
		}
	}

	return audio.CheckFormat(p.SampleRate, sample, p.Channels)
}

// CodecDuration derives the stream duration from the codec's frame
// count, audio.UnknownDuration when the codec cannot count.
func CodecDuration(c Codec) audio.Duration {
	return audio.DurationFromFrames(c.TotalFrames(), c.Params().SampleRate)
}

// chunkSamples bounds decode-loop memory and command latency. Bigger
// chunks raise throughput but delay stop and seek handling; this is a
// tuning knob, not a correctness constraint.
const chunkSamples = 1024

// Run drives the ready -> decode -> finished state machine over an
// opened codec handle. It negotiates the format, announces the stream
// exactly once, then alternates unpacking with command polling until a
// stop command or end of stream. A failed or impossible seek is
// reported through SeekError and decoding continues; any other codec
// error after the ready notification is fatal.
//
// The caller keeps ownership of the codec handle and closes it on
// every exit path.
func Run(client Client, codec Codec, canSeek bool) error {
	format, err := NegotiateFormat(codec.Params())
	if err != nil {
		return fmt.Errorf("format rejected: %w", err)
	}

	client.Ready(format, canSeek, CodecDuration(codec))

	// Codecs deliver every width in 32-bit slots; conversion in
	// convertSamples only ever narrows, so out can never overflow.
	chunk := make([]int32, chunkSamples)
	out := make([]byte, chunkSamples*4)
	framesPerChunk := chunkSamples / format.Channels

	cmd := client.GetCommand()
	for cmd != CommandStop {
		if cmd == CommandSeek {
			if canSeek {
				if err := codec.SeekFrame(client.GetSeekFrame()); err == nil {
					client.CommandFinished()
				} else {
					client.SeekError()
				}
			} else {
				client.SeekError()
			}
		}

		frames, err := codec.Unpack(chunk, framesPerChunk)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		if frames == 0 {
			break
		}

		n := convertSamples(format.Sample, chunk[:frames*format.Channels], out)
		cmd = client.SubmitData(out[:n], codec.Bitrate())
	}

	return nil
}

// convertSamples rewrites samples from their 32-bit slots to the
// negotiated width. The sample count never changes, only the
// representation; dst must hold at least 4*len(src) bytes.
func convertSamples(sample audio.SampleFormat, src []int32, dst []byte) int {
	switch sample {
	case audio.SampleFormatS8, audio.SampleFormatDSD:
		for i, v := range src {
			dst[i] = byte(v)
		}
		return len(src)

	case audio.SampleFormatS16:
		for i, v := range src {
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(int16(v)))
		}
		return len(src) * 2

	default:
		// S24P32, S32 and Float32 already fill their slots.
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], uint32(v))
		}
		return len(src) * 4
	}
}
