// ABOUTME: Entry point for the metadata scan tool
// ABOUTME: Probes files for duration and tags without decoding audio
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Resonate-Protocol/decode-go/internal/version"
	"github.com/Resonate-Protocol/decode-go/pkg/audio"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/flac"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/mp3"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/pcm"
	"github.com/Resonate-Protocol/decode-go/pkg/decoder/wav"
)

var (
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// printSink writes scan results to stdout as they arrive.
type printSink struct {
	path string
}

func (s *printSink) Duration(d audio.Duration) {
	fmt.Printf("%s: duration=%s\n", s.path, d)
}

func (s *printSink) Tag(name, value string) {
	fmt.Printf("%s: %s=%s\n", s.path, name, value)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s scan %s\n", version.Product, version.Version)
		return
	}
	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: decode-scan [flags] file...\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	registry := decoder.NewRegistry(
		flac.New(),
		mp3.New(),
		wav.New(),
		pcm.New(),
	)
	defer registry.Close()

	failed := 0
	for _, path := range flag.Args() {
		if !registry.ScanFile(path, &printSink{path: path}) {
			log.Printf("cannot scan %s", path)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
