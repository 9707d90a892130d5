// ABOUTME: Stream reader adapter between byte sources and codec libraries
// ABOUTME: Read-until-full semantics with single-byte push-back
package decoder

import (
	"fmt"
	"io"

	"github.com/Resonate-Protocol/decode-go/pkg/source"
)

// StreamReader adapts one byte source to the callback set block codecs
// expect: bounded reads that block until the buffer is full, absolute
// and relative seeks, a single byte of push-back and a length query.
// It also implements io.Reader and io.Seeker so reader-based codec
// libraries consume the same adapter.
//
// A StreamReader borrows its source for the lifetime of one decode and
// does not close it.
type StreamReader struct {
	client  Client // may be nil; used to observe a stop while blocked
	src     source.Source
	pending int // pushed-back byte, -1 when the slot is empty
}

// NewStreamReader wraps src. client may be nil when no command
// interruption is wanted, e.g. during a scan.
func NewStreamReader(client Client, src source.Source) *StreamReader {
	return &StreamReader{client: client, src: src, pending: -1}
}

// ReadFull reads len(p) bytes unless the stream ends first. Codec
// libraries misbehave on short reads, so it keeps reading until the
// buffer is full, the data is genuinely exhausted, or a stop command
// arrives. The return value is short only in the latter two cases;
// a transport failing mid-stream counts as end of data, not an error.
func (r *StreamReader) ReadFull(p []byte) int {
	n := 0
	if r.pending >= 0 && len(p) > 0 {
		p[0] = byte(r.pending)
		r.pending = -1
		n = 1
	}

	for n < len(p) {
		if r.client != nil && r.client.GetCommand() == CommandStop {
			break
		}
		nn, err := r.src.Read(p[n:])
		n += nn
		if err != nil {
			break
		}
	}
	return n
}

// Read implements io.Reader with ordinary short-read semantics, still
// honoring a pending push-back byte.
func (r *StreamReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.pending >= 0 {
		p[0] = byte(r.pending)
		r.pending = -1
		return 1, nil
	}
	return r.src.Read(p)
}

// Position returns the byte source offset. A pending push-back byte
// does not rewind the reported position; codecs account for their own
// lookahead.
func (r *StreamReader) Position() int64 {
	return r.src.Offset()
}

// SeekAbsolute repositions the source. Failure is reported as a
// status, not an error: codec libraries expect a code here.
func (r *StreamReader) SeekAbsolute(pos int64) bool {
	if err := r.src.SeekTo(pos); err != nil {
		return false
	}
	r.pending = -1
	return true
}

// SeekRelative seeks by delta from whence (io.SeekStart,
// io.SeekCurrent or io.SeekEnd). An end-relative seek fails
// immediately when the total size is unknown.
func (r *StreamReader) SeekRelative(delta int64, whence int) bool {
	var offset int64
	switch whence {
	case io.SeekStart:
		offset = delta
	case io.SeekCurrent:
		offset = r.src.Offset() + delta
	case io.SeekEnd:
		size := r.src.Size()
		if size == source.SizeUnknown {
			return false
		}
		offset = size + delta
	default:
		return false
	}
	return r.SeekAbsolute(offset)
}

// Seek implements io.Seeker over the same source.
func (r *StreamReader) Seek(offset int64, whence int) (int64, error) {
	if !r.SeekRelative(offset, whence) {
		return 0, fmt.Errorf("seek to %d (whence %d) failed", offset, whence)
	}
	return r.src.Offset(), nil
}

// PushBack returns one byte to the front of the stream. Only a single
// byte of lookahead is guaranteed: pushing while a byte is already
// pending fails without disturbing the pending byte.
func (r *StreamReader) PushBack(b byte) bool {
	if r.pending >= 0 {
		return false
	}
	r.pending = int(b)
	return true
}

// Length returns the total stream size, or 0 when it is unknown —
// codec libraries treat 0 as "unknown", not "empty".
func (r *StreamReader) Length() int64 {
	size := r.src.Size()
	if size == source.SizeUnknown {
		return 0
	}
	return size
}

// Seekable reports whether the underlying source supports seeking.
func (r *StreamReader) Seekable() bool {
	return r.src.Seekable()
}
