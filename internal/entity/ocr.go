package entity

import "time"

// OCRResult is the raw outcome of one provider extraction. Immutable once
// produced; a failed result (Success=false) short-circuits the pipeline.
type OCRResult struct {
	Text           string
	Confidence     float64 // 0..100
	ProcessingTime time.Duration
	Width          int
	Height         int
	Success        bool
	ErrorMessage   string
}
