package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/otiai10/gosseract/v2"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
)

// charWhitelist restricts recognition to alphanumerics plus the punctuation
// and currency symbols receipts actually print. Cuts down on garbled output
// from decorative borders and logos.
const charWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	".,:;/-%()&@#*+='\"₹$€£¥ "

// GosseractProvider runs Tesseract in-process via gosseract.
type GosseractProvider struct {
	cfg         common.OCRConfig
	tessdataDir string
	logger      *slog.Logger

	unavailable atomic.Bool
	reason      atomic.Value // string
}

// NewGosseractProvider constructs the provider and runs a smoke-test
// extraction against a tiny synthetic image. The pass/fail result is cached
// as the initial availability.
func NewGosseractProvider(cfg common.OCRConfig, logger *slog.Logger) *GosseractProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	p := &GosseractProvider{
		cfg:         cfg,
		tessdataDir: ResolveTessdataDir(cfg.TessdataDir, logger),
		logger:      logger,
	}
	p.smokeTest()
	return p
}

func (p *GosseractProvider) Name() string { return "tesseract-native" }

func (p *GosseractProvider) IsAvailable() bool { return !p.unavailable.Load() }

// UnavailableReason returns the recorded reason after an availability flip.
func (p *GosseractProvider) UnavailableReason() string {
	if r, ok := p.reason.Load().(string); ok {
		return r
	}
	return ""
}

// markUnavailable flips the provider off for the rest of the process
// lifetime. The flip is atomic so concurrent Selector lookups observe it.
func (p *GosseractProvider) markUnavailable(reason string) {
	p.reason.Store(reason)
	p.unavailable.Store(true)
	p.logger.Error("ocr provider disabled", "provider", p.Name(), "reason", reason)
}

func (p *GosseractProvider) smokeTest() {
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	_, err := p.recognize(&imaging.NormalizedImage{Gray: img, Width: 32, Height: 32})
	if err != nil {
		p.markUnavailable(fmt.Sprintf("smoke test failed: %v", err))
		return
	}
	p.logger.Debug("ocr provider ready", "provider", p.Name(), "lang", p.cfg.TesseractLang)
}

// ExtractText OCRs a normalized image. A failed engine call flips the
// provider to unavailable and surfaces an OCR processing error.
func (p *GosseractProvider) ExtractText(ctx context.Context, img *imaging.NormalizedImage) (entity.OCRResult, error) {
	start := time.Now()
	if img == nil || img.Gray == nil {
		return entity.OCRResult{Success: false, ErrorMessage: "nil image"},
			common.ProcessingError("nil image")
	}
	if err := ctx.Err(); err != nil {
		return entity.OCRResult{Success: false, ErrorMessage: err.Error()}, err
	}
	if !p.IsAvailable() {
		return entity.OCRResult{Success: false, ErrorMessage: p.UnavailableReason()},
			common.ProcessingErrorf("provider %s unavailable: %s", p.Name(), p.UnavailableReason())
	}

	text, err := p.recognize(img)
	elapsed := time.Since(start)
	if err != nil {
		p.markUnavailable(fmt.Sprintf("engine error: %v", err))
		return entity.OCRResult{
			ProcessingTime: elapsed,
			Width:          img.Width,
			Height:         img.Height,
			Success:        false,
			ErrorMessage:   err.Error(),
		}, common.ProcessingErrorf("%s: %v", p.Name(), err)
	}

	text = NormalizeText(text)
	return entity.OCRResult{
		Text:           text,
		Confidence:     heuristicConfidence(text),
		ProcessingTime: elapsed,
		Width:          img.Width,
		Height:         img.Height,
		Success:        true,
	}, nil
}

// recognize does one engine round-trip. A fresh client per call keeps the
// provider safe for concurrent requests.
func (p *GosseractProvider) recognize(img *imaging.NormalizedImage) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Gray); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	client := gosseract.NewClient()
	defer func() {
		if cerr := client.Close(); cerr != nil {
			p.logger.Warn("closing gosseract client", "error", cerr)
		}
	}()

	if p.tessdataDir != "" {
		if err := client.SetTessdataPrefix(p.tessdataDir); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(p.cfg.TesseractLang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if p.cfg.PSM > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(p.cfg.PSM)); err != nil {
			return "", fmt.Errorf("set psm: %w", err)
		}
	}
	if err := client.SetWhitelist(charWhitelist); err != nil {
		return "", fmt.Errorf("set whitelist: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}
