// ABOUTME: HTTP byte source for remote resources
// ABOUTME: Sequential reads with the size taken from Content-Length
package source

import (
	"fmt"
	"io"
	"net/http"
)

type httpSource struct {
	body   io.ReadCloser
	uri    string
	size   int64
	offset int64
}

// OpenHTTP fetches uri and exposes the response body as a sequential
// byte source. The size is the Content-Length, SizeUnknown when the
// server does not report one (chunked or live streams).
func OpenHTTP(uri string) (Source, error) {
	resp, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", uri, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("cannot fetch %s: status %d", uri, resp.StatusCode)
	}

	size := resp.ContentLength
	if size < 0 {
		size = SizeUnknown
	}

	return &httpSource{body: resp.Body, uri: uri, size: size}, nil
}

func (s *httpSource) Read(p []byte) (int, error) {
	n, err := s.body.Read(p)
	s.offset += int64(n)
	return n, err
}

func (s *httpSource) URI() string { return s.uri }
func (s *httpSource) Offset() int64 { return s.offset }
func (s *httpSource) Size() int64 { return s.size }
func (s *httpSource) Seekable() bool { return false }

func (s *httpSource) SeekTo(offset int64) error {
	return fmt.Errorf("%s is not seekable", s.uri)
}

func (s *httpSource) Close() error { return s.body.Close() }
