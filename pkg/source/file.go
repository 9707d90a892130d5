// ABOUTME: Local file byte source
// ABOUTME: Seekable with the size taken from the filesystem
package source

import (
	"fmt"
	"io"
	"os"
)

type fileSource struct {
	f      *os.File
	uri    string
	size   int64
	offset int64
}

// OpenFile opens a local file as a seekable byte source.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	return &fileSource{f: f, uri: path, size: info.Size()}, nil
}

func (s *fileSource) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	s.offset += int64(n)
	return n, err
}

func (s *fileSource) URI() string { return s.uri }
func (s *fileSource) Offset() int64 { return s.offset }
func (s *fileSource) Size() int64 { return s.size }
func (s *fileSource) Seekable() bool { return true }

func (s *fileSource) SeekTo(offset int64) error {
	if _, err := s.f.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	s.offset = offset
	return nil
}

func (s *fileSource) Close() error { return s.f.Close() }
