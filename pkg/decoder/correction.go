// ABOUTME: Correction stream pairing for hybrid lossy formats
// ABOUTME: Derives the companion URI and opens it without failing
package decoder

import "github.com/Resonate-Protocol/decode-go/pkg/source"

// CorrectionSuffix is appended to a primary URI to locate its
// correction companion (track.wv -> track.wvc).
const CorrectionSuffix = "c"

// CorrectionURI returns the conventional companion URI, or "" when the
// primary carries no usable identity.
func CorrectionURI(uri string) string {
	if uri == "" {
		return ""
	}
	return uri + CorrectionSuffix
}

// OpenCorrection tries to open the correction companion of uri through
// the client's acquisition path. Any failure is silent and yields nil:
// the format is valid without correction data, so a missing companion
// means "not available", never an error. The caller owns the returned
// source and must close it.
func OpenCorrection(client Client, uri string) source.Source {
	corrURI := CorrectionURI(uri)
	if corrURI == "" {
		return nil
	}

	src, err := client.OpenURI(corrURI)
	if err != nil {
		return nil
	}
	return src
}
