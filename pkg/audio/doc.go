// ABOUTME: Audio format package documentation
// ABOUTME: Sample formats, format validation and stream durations
// Package audio defines the normalized sample representations produced
// by the decoding subsystem.
//
// A decoder negotiates a Format (sample rate, sample format, channel
// count) once per stream; CheckFormat enforces the server-wide bounds
// before the first frame is submitted. Duration carries playing time
// with an explicit "unknown" sentinel distinct from a verified
// zero-length stream.
//
// Example:
//
//	format, err := audio.CheckFormat(44100, audio.SampleFormatS16, 2)
//	dur := audio.DurationFromFrames(441000, format.SampleRate) // 10s
package audio
