// ABOUTME: Player package documentation
// ABOUTME: Session API over the decoder plugin registry
// Package player provides the consumer side of a decode: a Session
// plays one resource at a time, forwards decoded blocks to callbacks
// and turns Stop and Seek calls into commands the decode loop polls.
//
// Example:
//
//	session := player.NewSession(registry, player.Config{
//		OnData: func(data []byte, bitrateKbps int) { sink.Write(data) },
//	})
//	err := session.PlayFile("/music/track.flac")
package player
