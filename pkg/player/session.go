// ABOUTME: Playback session bridging a consumer to the decoder plugins
// ABOUTME: Owns the command slot and fans decoded blocks out to callbacks
package player

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// Config holds session configuration. All callbacks are optional and
// run on the decoding goroutine.
type Config struct {
	// OnReady is called once per decode with the negotiated format,
	// seekability and duration.
	OnReady func(format audio.Format, seekable bool, duration audio.Duration)

	// OnData receives each decoded block together with the bitrate
	// estimate. The slice is only valid during the call.
	OnData func(data []byte, bitrateKbps int)

	// OnSeekDone is called when a requested seek completed.
	OnSeekDone func()

	// OnSeekError is called when a requested seek was rejected;
	// playback continues from the prior position.
	OnSeekError func()
}

// Session runs one decode at a time against a plugin registry. It is
// the consumer half of the decode protocol: Stop and Seek from any
// goroutine place a command in the single slot, the decoding goroutine
// polls it between blocks.
type Session struct {
	id       uuid.UUID
	registry *decoder.Registry
	config   Config

	mu        sync.Mutex
	cmd       decoder.Command
	seekFrame int64
	ready     bool
	seekable  bool
	format    audio.Format
	duration  audio.Duration
}

// NewSession creates a session over the given registry.
func NewSession(registry *decoder.Registry, config Config) *Session {
	return &Session{
		id:       uuid.New(),
		registry: registry,
		config:   config,
	}
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID { return s.id }

// PlayFile decodes a local file, blocking until end of stream, a stop
// or a fatal error.
func (s *Session) PlayFile(path string) error {
	s.reset()
	log.Printf("session %s: playing %s", s.id, path)
	return s.registry.DecodeFile(s, path)
}

// PlayURI opens the URI and decodes the stream, blocking like
// PlayFile. The MIME type may be empty.
func (s *Session) PlayURI(uri, mime string) error {
	s.reset()
	src, err := source.Open(uri)
	if err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	defer src.Close()

	log.Printf("session %s: playing %s", s.id, uri)
	return s.registry.DecodeStream(s, src, mime)
}

func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmd = decoder.CommandNone
	s.ready = false
	s.seekable = false
	s.format = audio.Format{}
	s.duration = audio.UnknownDuration
}

// Stop requests the running decode to end. It overrides any pending
// seek: there is one command slot and stop always wins.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmd = decoder.CommandStop
}

// Seek requests decoding to continue from the given frame. The
// request is rejected immediately when the stream announced itself as
// unseekable or a stop is already pending.
func (s *Session) Seek(frame int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready && !s.seekable {
		return errors.New("stream is not seekable")
	}
	if s.cmd == decoder.CommandStop {
		return errors.New("session is stopping")
	}
	s.cmd = decoder.CommandSeek
	s.seekFrame = frame
	return nil
}

// SeekTime requests a seek by playing time instead of frame count.
func (s *Session) SeekTime(d audio.Duration) error {
	s.mu.Lock()
	rate := s.format.SampleRate
	s.mu.Unlock()
	if rate <= 0 {
		return errors.New("stream format not announced yet")
	}
	return s.Seek(audio.FramesFromDuration(d.Std(), rate))
}

// Format returns the announced stream properties. Valid once OnReady
// has fired.
func (s *Session) Format() (audio.Format, bool, audio.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.format, s.seekable, s.duration
}

// Ready implements decoder.Client.
func (s *Session) Ready(format audio.Format, seekable bool, duration audio.Duration) {
	s.mu.Lock()
	s.ready = true
	s.format = format
	s.seekable = seekable
	s.duration = duration
	s.mu.Unlock()

	log.Printf("session %s: stream ready: %s seekable=%t duration=%s",
		s.id, format, seekable, duration)
	if s.config.OnReady != nil {
		s.config.OnReady(format, seekable, duration)
	}
}

// GetCommand implements decoder.Client.
func (s *Session) GetCommand() decoder.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd
}

// GetSeekFrame implements decoder.Client.
func (s *Session) GetSeekFrame() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seekFrame
}

// CommandFinished implements decoder.Client.
func (s *Session) CommandFinished() {
	s.mu.Lock()
	s.cmd = decoder.CommandNone
	s.mu.Unlock()

	if s.config.OnSeekDone != nil {
		s.config.OnSeekDone()
	}
}

// SeekError implements decoder.Client.
func (s *Session) SeekError() {
	s.mu.Lock()
	s.cmd = decoder.CommandNone
	s.mu.Unlock()

	log.Printf("session %s: seek rejected", s.id)
	if s.config.OnSeekError != nil {
		s.config.OnSeekError()
	}
}

// SubmitData implements decoder.Client.
func (s *Session) SubmitData(data []byte, bitrateKbps int) decoder.Command {
	if s.config.OnData != nil {
		s.config.OnData(data, bitrateKbps)
	}
	return s.GetCommand()
}

// OpenURI implements decoder.Client.
func (s *Session) OpenURI(uri string) (source.Source, error) {
	return source.Open(uri)
}
