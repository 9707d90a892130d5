// ABOUTME: Sample format and audio format definitions
// ABOUTME: Validates negotiated formats against server-wide bounds
package audio

import "fmt"

// SampleFormat identifies the in-memory representation of one sample.
type SampleFormat uint8

const (
	// SampleFormatUndefined marks a layout the server cannot express.
	SampleFormatUndefined SampleFormat = iota

	// SampleFormatS8 is signed 8-bit PCM.
	SampleFormatS8

	// SampleFormatS16 is signed 16-bit PCM, little-endian.
	SampleFormatS16

	// SampleFormatS24P32 is signed 24-bit PCM padded to 32-bit slots.
	SampleFormatS24P32

	// SampleFormatS32 is signed 32-bit PCM.
	SampleFormatS32

	// SampleFormatFloat32 is 32-bit IEEE float PCM.
	SampleFormatFloat32

	// SampleFormatDSD is 1-bit direct stream audio, packed 8 samples
	// per byte.
	SampleFormatDSD
)

// SampleSize returns the storage size of one sample in bytes.
func (f SampleFormat) SampleSize() int {
	switch f {
	case SampleFormatS8, SampleFormatDSD:
		return 1
	case SampleFormatS16:
		return 2
	case SampleFormatS24P32, SampleFormatS32, SampleFormatFloat32:
		return 4
	default:
		return 0
	}
}

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatS8:
		return "s8"
	case SampleFormatS16:
		return "s16"
	case SampleFormatS24P32:
		return "s24_p32"
	case SampleFormatS32:
		return "s32"
	case SampleFormatFloat32:
		return "f32"
	case SampleFormatDSD:
		return "dsd"
	default:
		return "undefined"
	}
}

// Server-wide bounds accepted for any negotiated format.
const (
	MinSampleRate = 1
	MaxSampleRate = 768000
	MaxChannels   = 8
)

// Format describes a fully negotiated audio stream format. All three
// fields must have passed CheckFormat before any frame is submitted.
type Format struct {
	SampleRate int
	Sample     SampleFormat
	Channels   int
}

// FrameSize returns the size in bytes of one frame, i.e. one sample
// per channel.
func (f Format) FrameSize() int {
	return f.Sample.SampleSize() * f.Channels
}

func (f Format) String() string {
	return fmt.Sprintf("%d:%s:%d", f.SampleRate, f.Sample, f.Channels)
}

// CheckFormat validates the triple against the server-wide bounds and
// returns the usable format. A rejection here is a fatal setup error
// for the decode attempt, never a per-frame condition.
func CheckFormat(sampleRate int, sample SampleFormat, channels int) (Format, error) {
	if sample == SampleFormatUndefined || sample.SampleSize() == 0 {
		return Format{}, fmt.Errorf("unsupported sample format")
	}
	if sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return Format{}, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels < 1 || channels > MaxChannels {
		return Format{}, fmt.Errorf("invalid channel count: %d", channels)
	}

	return Format{
		SampleRate: sampleRate,
		Sample:     sample,
		Channels:   channels,
	}, nil
}
