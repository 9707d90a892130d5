// ABOUTME: Tests for the pure conversion helpers of the output sink
// ABOUTME: Device-touching paths are exercised manually, not here
package output

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
)

func TestFoldToS16Passthrough(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	out, err := FoldToS16(data, audio.SampleFormatS16)
	if err != nil {
		t.Fatal(err)
	}
	if &out[0] != &data[0] {
		t.Error("16-bit input must pass through without copying")
	}
}

func TestFoldToS16FromS8(t *testing.T) {
	out, err := FoldToS16([]byte{0x7F, 0x80}, audio.SampleFormatS8)
	if err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(out)); got != 0x7F00 {
		t.Errorf("expected 0x7F00, got %#x", got)
	}
	if got := int16(binary.LittleEndian.Uint16(out[2:])); got != -0x8000 {
		t.Errorf("expected -0x8000, got %#x", got)
	}
}

func TestFoldToS16FromS32(t *testing.T) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(int32(0x12340000)))
	out, err := FoldToS16(data, audio.SampleFormatS32)
	if err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(out)); got != 0x1234 {
		t.Errorf("expected 0x1234, got %#x", got)
	}
}

func TestFoldToS16FromS24(t *testing.T) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(int32(0x123456)))
	out, err := FoldToS16(data, audio.SampleFormatS24P32)
	if err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(out)); got != 0x1234 {
		t.Errorf("expected 0x1234, got %#x", got)
	}
}

func TestFoldToS16FromFloat(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, math.Float32bits(0.5))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(2.0)) // clips
	out, err := FoldToS16(data, audio.SampleFormatFloat32)
	if err != nil {
		t.Fatal(err)
	}
	if got := int16(binary.LittleEndian.Uint16(out)); got != 16383 {
		t.Errorf("expected 16383 for 0.5, got %d", got)
	}
	if got := int16(binary.LittleEndian.Uint16(out[2:])); got != 32767 {
		t.Errorf("expected clip to 32767, got %d", got)
	}
}

func TestFoldToS16RejectsDSD(t *testing.T) {
	if _, err := FoldToS16([]byte{0}, audio.SampleFormatDSD); err == nil {
		t.Error("expected rejection of direct stream data")
	}
}

func TestApplyVolume(t *testing.T) {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, uint16(int16(10000)))
	applyVolume(data, 50, false)
	if got := int16(binary.LittleEndian.Uint16(data)); got != 5000 {
		t.Errorf("expected 5000 at half volume, got %d", got)
	}

	applyVolume(data, 100, true)
	if got := int16(binary.LittleEndian.Uint16(data)); got != 0 {
		t.Errorf("expected silence when muted, got %d", got)
	}
}
