// ABOUTME: Byte source abstraction over local and remote inputs
// ABOUTME: Open dispatches a URI to the matching implementation
package source

import (
	"io"
	"strings"
)

// SizeUnknown is returned by Size when the total length is not known,
// e.g. for live or chunked transports.
const SizeUnknown int64 = -1

// A Source is an opaque, possibly seekable byte stream feeding one
// decode. Sources are not safe for concurrent use: the decode owns the
// source exclusively for its whole lifetime and releases it on every
// exit path.
type Source interface {
	io.ReadCloser

	// URI returns the identity the source was opened from.
	URI() string

	// Offset returns the current read position in bytes.
	Offset() int64

	// Size returns the total length in bytes, or SizeUnknown.
	Size() int64

	// Seekable reports whether SeekTo can reposition the stream.
	Seekable() bool

	// SeekTo repositions the stream to an absolute byte offset.
	SeekTo(offset int64) error
}

// Open opens uri as a byte source. http:// and https:// URIs become
// remote sequential sources; everything else is treated as a local
// file path.
func Open(uri string) (Source, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return OpenHTTP(uri)
	}
	return OpenFile(uri)
}
