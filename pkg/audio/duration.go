// ABOUTME: Signed stream duration with an explicit unknown sentinel
// ABOUTME: Converts frame counts into playing time
package audio

import "time"

// Duration is the playing time of a stream. A negative value means the
// duration is unknown; zero is a verified empty stream, never a
// placeholder for "don't know".
type Duration time.Duration

// UnknownDuration marks streams whose length cannot be determined.
const UnknownDuration Duration = -1

// IsKnown reports whether d carries a real duration.
func (d Duration) IsKnown() bool {
	return d >= 0
}

// Std converts to a time.Duration. Only meaningful when IsKnown.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	if !d.IsKnown() {
		return "unknown"
	}
	return time.Duration(d).String()
}

// DurationFromFrames converts a frame count at the given sample rate
// into a Duration. A negative frame count means the codec could not
// determine the stream length and yields UnknownDuration.
func DurationFromFrames(frames int64, sampleRate int) Duration {
	if frames < 0 || sampleRate <= 0 {
		return UnknownDuration
	}
	return Duration(frames * int64(time.Second) / int64(sampleRate))
}

// FramesFromDuration converts playing time back into a frame count at
// the given sample rate.
func FramesFromDuration(d time.Duration, sampleRate int) int64 {
	if d < 0 || sampleRate <= 0 {
		return 0
	}
	return int64(d) * int64(sampleRate) / int64(time.Second)
}
