// ABOUTME: Byte source package documentation
// ABOUTME: Local, remote and in-memory inputs behind one interface
// Package source abstracts the byte streams a decoder reads from.
//
// A Source is sequential-read always, seekable sometimes, and may or
// may not know its total size. Local files are seekable with a known
// size; HTTP resources are sequential with the size taken from
// Content-Length when the server provides one.
//
// Example:
//
//	src, err := source.Open("http://radio.example/stream.mp3")
//	defer src.Close()
package source
