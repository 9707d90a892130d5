// ABOUTME: Oto-based playback sink for decoded sample blocks
// ABOUTME: Folds every negotiated format down to 16-bit for the device
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
)

// Output streams decoded blocks to the default audio device. The
// device runs 16-bit little-endian; FoldToS16 narrows whatever format
// the decode negotiated.
type Output struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format
	volume     int
	muted      bool
	ready      bool
}

func New() *Output {
	return &Output{volume: 100}
}

// Open initializes the device for the given stream format. The device
// context exists once per process, so a second open with a different
// format keeps the old device settings and logs the mismatch.
func (o *Output) Open(format audio.Format) error {
	if format.Sample == audio.SampleFormatDSD {
		return fmt.Errorf("cannot play %s on a PCM device", format)
	}

	if o.otoCtx != nil {
		if o.format.SampleRate != format.SampleRate || o.format.Channels != format.Channels {
			log.Printf("output: device stays at %s, stream is %s", o.format, format)
		}
		o.format = format
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.format = format
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true

	log.Printf("output: device open: %dHz, %d channels", format.SampleRate, format.Channels)
	return nil
}

// Write folds one decoded block to device format, applies volume and
// blocks until the device accepted it.
func (o *Output) Write(data []byte) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	folded, err := FoldToS16(data, o.format.Sample)
	if err != nil {
		return err
	}
	applyVolume(folded, o.volume, o.muted)

	if _, err := o.pipeWriter.Write(folded); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Close releases the device.
func (o *Output) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100).
func (o *Output) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
	log.Printf("output: volume set to %d", volume)
}

// SetMuted sets the mute state.
func (o *Output) SetMuted(muted bool) {
	o.muted = muted
	log.Printf("output: muted: %v", muted)
}

// GetVolume returns the current volume.
func (o *Output) GetVolume() int { return o.volume }

// IsMuted returns the mute state.
func (o *Output) IsMuted() bool { return o.muted }

// FoldToS16 rewrites a decoded block to interleaved signed 16-bit
// little-endian samples.
func FoldToS16(data []byte, sample audio.SampleFormat) ([]byte, error) {
	switch sample {
	case audio.SampleFormatS16:
		return data, nil

	case audio.SampleFormatS8:
		out := make([]byte, len(data)*2)
		for i, b := range data {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(int8(b))<<8))
		}
		return out, nil

	case audio.SampleFormatS24P32, audio.SampleFormatS32:
		shift := uint(16)
		if sample == audio.SampleFormatS24P32 {
			shift = 8
		}
		out := make([]byte, len(data)/2)
		for i := 0; i+4 <= len(data); i += 4 {
			v := int32(binary.LittleEndian.Uint32(data[i:]))
			binary.LittleEndian.PutUint16(out[i/2:], uint16(int16(v>>shift)))
		}
		return out, nil

	case audio.SampleFormatFloat32:
		out := make([]byte, len(data)/2)
		for i := 0; i+4 <= len(data); i += 4 {
			f := math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))
			if f > 1 {
				f = 1
			} else if f < -1 {
				f = -1
			}
			binary.LittleEndian.PutUint16(out[i/2:], uint16(int16(f*32767)))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("cannot fold %s to 16-bit", sample)
	}
}

// applyVolume scales 16-bit samples in place.
func applyVolume(data []byte, volume int, muted bool) {
	if !muted && volume == 100 {
		return
	}
	multiplier := 0.0
	if !muted {
		multiplier = float64(volume) / 100.0
	}
	for i := 0; i+2 <= len(data); i += 2 {
		v := int16(binary.LittleEndian.Uint16(data[i:]))
		binary.LittleEndian.PutUint16(data[i:], uint16(int16(float64(v)*multiplier)))
	}
}
