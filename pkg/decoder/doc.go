// ABOUTME: Decoder package documentation
// ABOUTME: Plugin contract, command protocol and decode loop
// Package decoder hosts codec plugins behind one contract and drives
// the command-driven decode loop.
//
// A Plugin turns a byte source or local file into converted sample
// blocks pushed to a Client, which answers every submission with the
// next transport-control command (stop, seek). Codec libraries sit
// behind the Codec capability interface; Run drives any of them
// through format negotiation, the ready notification and the
// poll/decode/submit loop. StreamReader adapts a byte source to the
// read-until-full, push-back style I/O block codecs expect.
//
// Example:
//
//	registry := decoder.NewRegistry(mp3.New(), flac.New(), wav.New())
//	defer registry.Close()
//	err := registry.DecodeFile(client, "/music/track.mp3")
package decoder
