package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
)

type fakeProvider struct {
	name      string
	available bool
}

func (p *fakeProvider) Name() string      { return p.name }
func (p *fakeProvider) IsAvailable() bool { return p.available }

func (p *fakeProvider) ExtractText(_ context.Context, _ *imaging.NormalizedImage) (entity.OCRResult, error) {
	return entity.OCRResult{Success: true}, nil
}

func TestSelectorActivePrefersRegistrationOrder(t *testing.T) {
	primary := &fakeProvider{name: "primary", available: true}
	fallback := &fakeProvider{name: "fallback", available: true}
	sel := NewSelector(nil, primary, fallback)

	p, err := sel.Active()
	if err != nil {
		t.Fatalf("Active() error: %v", err)
	}
	if p.Name() != "primary" {
		t.Errorf("active = %s, want primary", p.Name())
	}
	if got := sel.ActiveName(); got != "primary" {
		t.Errorf("ActiveName = %q, want primary", got)
	}
}

func TestSelectorFallsBackWhenPrimaryFlips(t *testing.T) {
	primary := &fakeProvider{name: "primary", available: true}
	fallback := &fakeProvider{name: "fallback", available: true}
	sel := NewSelector(nil, primary, fallback)

	primary.available = false
	p, err := sel.Active()
	if err != nil {
		t.Fatalf("Active() error: %v", err)
	}
	if p.Name() != "fallback" {
		t.Errorf("active = %s, want fallback after primary flip", p.Name())
	}
}

func TestSelectorNoProvider(t *testing.T) {
	sel := NewSelector(nil, &fakeProvider{name: "dead", available: false})

	if sel.IsAvailable() {
		t.Error("IsAvailable = true, want false")
	}
	if got := sel.ActiveName(); got != "" {
		t.Errorf("ActiveName = %q, want empty", got)
	}
	_, err := sel.Active()
	if !errors.Is(err, common.ErrNoProvider) {
		t.Errorf("error = %v, want ErrNoProvider in chain", err)
	}
	if !errors.Is(err, common.ErrOCRProcessing) {
		t.Errorf("error = %v, want ErrOCRProcessing in chain", err)
	}
}

func TestSelectorEmpty(t *testing.T) {
	sel := NewSelector(nil)
	if sel.IsAvailable() {
		t.Error("IsAvailable = true for empty selector, want false")
	}
}
