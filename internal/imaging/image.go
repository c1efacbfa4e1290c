// Package imaging prepares uploaded receipt photographs for OCR: validation,
// decoding, downscaling, grayscale conversion, contrast stretching and
// sharpening, plus a coarse quality grade used as a confidence signal.
package imaging

import "image"

// RawImage is an uploaded file before any processing. It lives for a single
// pipeline invocation.
type RawImage struct {
	Data     []byte
	Filename string
}

// NormalizedImage is the OCR-ready form: an owned 8-bit grayscale pixel
// buffer. Never mutated after creation.
type NormalizedImage struct {
	Gray   *image.Gray
	Width  int
	Height int
}

func newNormalizedImage(g *image.Gray) *NormalizedImage {
	b := g.Bounds()
	return &NormalizedImage{Gray: g, Width: b.Dx(), Height: b.Dy()}
}
