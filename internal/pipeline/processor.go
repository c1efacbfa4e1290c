// Package pipeline sequences normalize -> provider select -> field extract
// (and page merge for multi-photo receipts). It is the only entry point
// external collaborators call.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/receipt-ocr/constants"
	"github.com/joseph-ayodele/receipt-ocr/internal/common"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
	"github.com/joseph-ayodele/receipt-ocr/internal/extract"
	"github.com/joseph-ayodele/receipt-ocr/internal/imaging"
	"github.com/joseph-ayodele/receipt-ocr/internal/merge"
	"github.com/joseph-ayodele/receipt-ocr/internal/ocr"
)

// lowOCRConfidenceThreshold flags extractions worth a human look.
const lowOCRConfidenceThreshold = 40.0

// defaultPageParallelism bounds concurrent per-page OCR in ProcessMulti.
const defaultPageParallelism = 4

// Page is one photographed side of a (possibly multi-page) receipt.
type Page struct {
	Data     []byte
	Filename string
}

// Processor is the pipeline orchestrator.
type Processor struct {
	logger      *slog.Logger
	normalizer  *imaging.Normalizer
	selector    *ocr.Selector
	extractor   *extract.Extractor
	merger      *merge.Merger
	maxParallel int
}

func NewProcessor(
	logger *slog.Logger,
	normalizer *imaging.Normalizer,
	selector *ocr.Selector,
	extractor *extract.Extractor,
	merger *merge.Merger,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:      logger,
		normalizer:  normalizer,
		selector:    selector,
		extractor:   extractor,
		merger:      merger,
		maxParallel: defaultPageParallelism,
	}
}

// IsServiceAvailable reports whether any OCR provider can serve requests.
func (p *Processor) IsServiceAvailable() bool { return p.selector.IsAvailable() }

// ActiveProviderName names the provider that would serve the next request.
func (p *Processor) ActiveProviderName() string { return p.selector.ActiveName() }

// ProcessSingle runs the full pipeline for one image: normalize, OCR,
// extract fields, attach quality and timing.
func (p *Processor) ProcessSingle(ctx context.Context, data []byte, filename string) (*entity.ReceiptRecord, error) {
	start := time.Now()
	reqID := uuid.New()
	logger := p.logger.With("request_id", reqID, "filename", filename)

	img, err := p.normalizer.Normalize(imaging.RawImage{Data: data, Filename: filename})
	if err != nil {
		logger.Error("image normalization failed", "error", err)
		return nil, err
	}
	quality := imaging.AssessQuality(img)

	provider, err := p.selector.Active()
	if err != nil {
		logger.Error("no ocr provider available")
		return nil, err
	}

	res, err := provider.ExtractText(ctx, img)
	if err != nil {
		logger.Error("ocr extraction failed", "provider", provider.Name(), "error", err)
		return nil, err
	}
	if !res.Success {
		logger.Error("ocr returned failure", "provider", provider.Name(), "message", res.ErrorMessage)
		return nil, common.ProcessingErrorf("provider %s: %s", provider.Name(), res.ErrorMessage)
	}

	rec := p.extractor.Extract(res.Text)
	rec.ImageQuality = quality
	rec.ProcessingTime = time.Since(start)
	if quality == constants.QualityPoor {
		rec.Warnings = append(rec.Warnings, "poor image quality; extraction may be unreliable")
	}
	if res.Success && res.Confidence > 0 && res.Confidence < lowOCRConfidenceThreshold {
		rec.Warnings = append(rec.Warnings, "low OCR confidence")
	}

	logger.Info("receipt processed",
		"provider", provider.Name(),
		"quality", quality,
		"ocr_confidence", res.Confidence,
		"overall_confidence", rec.OverallConfidence,
		"duration_ms", rec.ProcessingTime.Milliseconds(),
	)
	return rec, nil
}

// ProcessMulti runs each page through the single-page pipeline (pages in
// parallel, no shared mutable state) and merges the ordered results. A page
// failure is recoverable; it is skipped with a warning unless no page
// succeeds at all.
func (p *Processor) ProcessMulti(ctx context.Context, pages []Page) (*entity.ReceiptRecord, error) {
	if len(pages) == 0 {
		return nil, common.ProcessingError("no pages supplied")
	}
	if len(pages) == 1 {
		return p.ProcessSingle(ctx, pages[0].Data, pages[0].Filename)
	}

	start := time.Now()
	results := make([]*entity.ReceiptRecord, len(pages))
	pageErrs := make([]error, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxParallel)
	for i, page := range pages {
		g.Go(func() error {
			rec, err := p.ProcessSingle(gctx, page.Data, page.Filename)
			if err != nil {
				// recoverable: recorded, merged later as a warning
				pageErrs[i] = err
				return nil
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Reduce in page order; the merger depends on it.
	var succeeded []*entity.ReceiptRecord
	var failWarnings []string
	for i, rec := range results {
		if rec != nil {
			succeeded = append(succeeded, rec)
			continue
		}
		p.logger.Warn("page failed; skipping", "page", i+1, "error", pageErrs[i])
		failWarnings = append(failWarnings, fmt.Sprintf("page %d failed: %v", i+1, pageErrs[i]))
	}
	if len(succeeded) == 0 {
		return nil, common.ProcessingError("no page succeeded")
	}

	merged := p.merger.Merge(succeeded)
	merged.Warnings = append(merged.Warnings, failWarnings...)
	merged.ProcessingTime = time.Since(start)

	p.logger.Info("multi-page receipt processed",
		"pages", len(pages),
		"succeeded", len(succeeded),
		"overall_confidence", merged.OverallConfidence,
		"duration_ms", merged.ProcessingTime.Milliseconds(),
	)
	return merged, nil
}
