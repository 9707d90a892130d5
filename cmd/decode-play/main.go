// ABOUTME: Entry point for the local playback tool
// ABOUTME: Decodes a file or URL and plays it on the default device
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/decode-go/internal/output"
	"github.com/Resonate-Protocol/decode-go/internal/version"
	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/flac"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/mp3"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/pcm"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/wav"
	"github.com/Resonate-Protocol/decode-go/pkg/player"
)

var (
	mime        = flag.String("mime", "", "MIME type hint for URL streams")
	volume      = flag.Int("volume", 100, "Playback volume (0-100)")
	seekTo      = flag.Duration("seek", 0, "Seek to this position once playback starts")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s play %s\n", version.Product, version.Version)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: decode-play [flags] <file-or-url>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	target := flag.Arg(0)

	registry := decoder.NewRegistry(
		flac.New(),
		mp3.New(),
		wav.New(),
		pcm.New(),
		pcm.NewL16(),
	)
	defer registry.Close()

	sink := output.New()
	sink.SetVolume(*volume)
	defer sink.Close()

	var session *player.Session
	session = player.NewSession(registry, player.Config{
		OnReady: func(format audio.Format, seekable bool, duration audio.Duration) {
			if err := sink.Open(format); err != nil {
				log.Printf("output unavailable: %v", err)
				session.Stop()
				return
			}
			if *seekTo > 0 {
				if err := session.SeekTime(audio.Duration(*seekTo)); err != nil {
					log.Printf("seek to %s rejected: %v", *seekTo, err)
				}
			}
		},
		OnData: func(data []byte, bitrateKbps int) {
			if err := sink.Write(data); err != nil {
				log.Printf("playback failed: %v", err)
				session.Stop()
			}
		},
		OnSeekError: func() {
			log.Printf("seek rejected by the stream")
		},
	})

	// Ctrl-C stops the decode at the next block boundary.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("stopping")
		session.Stop()
	}()

	log.Printf("Starting %s play %s", version.Product, version.Version)

	var err error
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		err = session.PlayURI(target, *mime)
	} else {
		err = session.PlayFile(target)
	}
	if err != nil {
		log.Fatalf("playback error: %v", err)
	}

	// Let the device drain the last buffered block.
	time.Sleep(200 * time.Millisecond)
}
