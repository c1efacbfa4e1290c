package ocr

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
)

// CLIProvider shells out to the tesseract binary. Registered after the
// native provider so it only serves requests when the in-process engine is
// not linked in or has flipped itself off.
type CLIProvider struct {
	cfg         common.OCRConfig
	tessdataDir string
	runner      Runner
	logger      *slog.Logger

	unavailable atomic.Bool
	reason      atomic.Value // string
}

func NewCLIProvider(cfg common.OCRConfig, logger *slog.Logger) *CLIProvider {
	return newCLIProvider(cfg, execRunner{}, logger)
}

func newCLIProvider(cfg common.OCRConfig, runner Runner, logger *slog.Logger) *CLIProvider {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	p := &CLIProvider{
		cfg:         cfg,
		tessdataDir: ResolveTessdataDir(cfg.TessdataDir, logger),
		runner:      runner,
		logger:      logger,
	}
	p.smokeTest()
	return p
}

func (p *CLIProvider) Name() string { return "tesseract-cli" }

func (p *CLIProvider) IsAvailable() bool { return !p.unavailable.Load() }

// UnavailableReason returns the recorded reason after an availability flip.
func (p *CLIProvider) UnavailableReason() string {
	if r, ok := p.reason.Load().(string); ok {
		return r
	}
	return ""
}

func (p *CLIProvider) markUnavailable(reason string) {
	p.reason.Store(reason)
	p.unavailable.Store(true)
	p.logger.Error("ocr provider disabled", "provider", p.Name(), "reason", reason)
}

func (p *CLIProvider) smokeTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, _, err := p.runner.Run(ctx, p.cfg.Tesseract, "--version"); err != nil {
		p.markUnavailable(fmt.Sprintf("tesseract binary not runnable: %v", err))
		return
	}
	p.logger.Debug("ocr provider ready", "provider", p.Name(), "bin", p.cfg.Tesseract)
}

// ExtractText writes the image to a temp file and runs
// `tesseract <file> stdout -l <lang>`.
func (p *CLIProvider) ExtractText(ctx context.Context, img *imaging.NormalizedImage) (entity.OCRResult, error) {
	start := time.Now()
	if img == nil || img.Gray == nil {
		return entity.OCRResult{Success: false, ErrorMessage: "nil image"},
			common.ProcessingError("nil image")
	}
	if !p.IsAvailable() {
		return entity.OCRResult{Success: false, ErrorMessage: p.UnavailableReason()},
			common.ProcessingErrorf("provider %s unavailable: %s", p.Name(), p.UnavailableReason())
	}

	path, cleanup, err := p.writeTemp(img)
	if err != nil {
		return entity.OCRResult{Success: false, ErrorMessage: err.Error()},
			common.ProcessingErrorf("stage image: %v", err)
	}
	defer cleanup()

	args := []string{path, "stdout", "-l", p.cfg.TesseractLang}
	if p.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", p.cfg.PSM))
	}
	if p.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", p.cfg.OEM))
	}
	if p.tessdataDir != "" {
		args = append(args, "--tessdata-dir", p.tessdataDir)
	}

	out, errb, err := p.runner.Run(ctx, p.cfg.Tesseract, args...)
	elapsed := time.Since(start)
	if err != nil {
		p.markUnavailable(fmt.Sprintf("tesseract failed: %v: %s", err, truncate(string(errb), 512)))
		return entity.OCRResult{
			ProcessingTime: elapsed,
			Width:          img.Width,
			Height:         img.Height,
			Success:        false,
			ErrorMessage:   err.Error(),
		}, common.ProcessingErrorf("%s: %v", p.Name(), err)
	}

	text := NormalizeText(string(out))
	return entity.OCRResult{
		Text:           text,
		Confidence:     heuristicConfidence(text),
		ProcessingTime: elapsed,
		Width:          img.Width,
		Height:         img.Height,
		Success:        true,
	}, nil
}

func (p *CLIProvider) writeTemp(img *imaging.NormalizedImage) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "receipt-ocr-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	path := filepath.Join(tmpDir, "page.png")
	f, err := os.Create(path)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if err := png.Encode(f, img.Gray); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
