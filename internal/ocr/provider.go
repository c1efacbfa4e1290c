// Package ocr abstracts text extraction behind a provider capability so the
// pipeline can fall back between engines. Providers self-report availability;
// a fatal engine error flips a provider to unavailable for the rest of the
// process lifetime.
package ocr

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
)

// Provider is the OCR capability: image in, raw text plus confidence out.
// Implementations must be safe for concurrent invocation; the availability
// flag is the only shared mutable state.
type Provider interface {
	Name() string
	IsAvailable() bool
	ExtractText(ctx context.Context, img *imaging.NormalizedImage) (entity.OCRResult, error)
}

// Selector picks the first available provider in registration order.
type Selector struct {
	providers []Provider
	logger    *slog.Logger
}

func NewSelector(logger *slog.Logger, providers ...Provider) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{providers: providers, logger: logger}
}

// Active returns the first available provider, or ErrNoProvider if none
// qualify. Selection re-runs on every call so a provider that flipped itself
// to unavailable mid-flight is skipped next time without retrying.
func (s *Selector) Active() (Provider, error) {
	for _, p := range s.providers {
		if p.IsAvailable() {
			return p, nil
		}
	}
	return nil, common.NewAppError("NO_PROVIDER", "no ocr provider available", common.ErrNoProvider)
}

// IsAvailable reports whether any registered provider can serve requests.
func (s *Selector) IsAvailable() bool {
	_, err := s.Active()
	return err == nil
}

// ActiveName returns the name of the provider that would serve the next
// request, or "" when none is available.
func (s *Selector) ActiveName() string {
	p, err := s.Active()
	if err != nil {
		return ""
	}
	return p.Name()
}
