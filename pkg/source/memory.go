// ABOUTME: In-memory byte source
// ABOUTME: Seekable buffer for tests and synthetic streams
package source

import (
	"bytes"
	"fmt"
	"io"
)

// Memory is a seekable byte source over a buffer.
type Memory struct {
	r   *bytes.Reader
	uri string
}

// NewMemory wraps data as a byte source identified by uri.
func NewMemory(uri string, data []byte) *Memory {
	return &Memory{r: bytes.NewReader(data), uri: uri}
}

func (s *Memory) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *Memory) URI() string { return s.uri }

func (s *Memory) Offset() int64 {
	return s.r.Size() - int64(s.r.Len())
}

func (s *Memory) Size() int64 { return s.r.Size() }
func (s *Memory) Seekable() bool { return true }

func (s *Memory) SeekTo(offset int64) error {
	if offset < 0 || offset > s.r.Size() {
		return fmt.Errorf("offset %d out of range", offset)
	}
	_, err := s.r.Seek(offset, io.SeekStart)
	return err
}

func (s *Memory) Close() error { return nil }
