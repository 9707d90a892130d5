// ABOUTME: Tests for sample formats and format validation
// ABOUTME: Covers sizing, bounds checking and rejection cases
package audio

import "testing"

func TestSampleSize(t *testing.T) {
	tests := []struct {
		format SampleFormat
		size   int
	}{
		{SampleFormatS8, 1},
		{SampleFormatS16, 2},
		{SampleFormatS24P32, 4},
		{SampleFormatS32, 4},
		{SampleFormatFloat32, 4},
		{SampleFormatDSD, 1},
		{SampleFormatUndefined, 0},
	}

	for _, tt := range tests {
		if got := tt.format.SampleSize(); got != tt.size {
			t.Errorf("%s: expected size %d, got %d", tt.format, tt.size, got)
		}
	}
}

func TestCheckFormat(t *testing.T) {
	format, err := CheckFormat(44100, SampleFormatS16, 2)
	if err != nil {
		t.Fatalf("valid format rejected: %v", err)
	}
	if format.SampleRate != 44100 || format.Sample != SampleFormatS16 || format.Channels != 2 {
		t.Errorf("unexpected format: %v", format)
	}
	if format.FrameSize() != 4 {
		t.Errorf("expected frame size 4, got %d", format.FrameSize())
	}
}

func TestCheckFormatRejects(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		sample   SampleFormat
		channels int
	}{
		{"undefined sample format", 44100, SampleFormatUndefined, 2},
		{"zero sample rate", 0, SampleFormatS16, 2},
		{"negative sample rate", -1, SampleFormatS16, 2},
		{"sample rate too high", MaxSampleRate + 1, SampleFormatS16, 2},
		{"zero channels", 44100, SampleFormatS16, 0},
		{"too many channels", 44100, SampleFormatS16, MaxChannels + 1},
	}

	for _, tt := range tests {
		if _, err := CheckFormat(tt.rate, tt.sample, tt.channels); err == nil {
			t.Errorf("%s: expected rejection", tt.name)
		}
	}
}

func TestFormatString(t *testing.T) {
	format := Format{SampleRate: 48000, Sample: SampleFormatS24P32, Channels: 2}
	if got := format.String(); got != "48000:s24_p32:2" {
		t.Errorf("unexpected format string: %s", got)
	}
}
