// Package extract parses raw OCR text into typed receipt fields using
// ordered pattern families with per-field confidence scoring and fallback
// heuristics. Sub-extractors are independent: a failed parse degrades its own
// field to null, never the whole extraction.
package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/receipt-ocr/constants"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
)

// Empirical heuristics tuned to observed regional receipts; configurable,
// not load-bearing invariants.
const (
	DefaultPriceCeiling      = 50000.0 // guards against OCR digit concatenation
	DefaultHSNMatchTolerance = 1.0     // pending-total vs taxable-amount merge window
	DefaultMaxItems          = 20
)

// Config carries the tunable extraction heuristics.
type Config struct {
	PriceCeiling      float64
	HSNMatchTolerance float64
	MaxItems          int
}

// Extractor parses OCR text into receipt fields. Safe for concurrent use;
// all pattern tables are package-level immutable data.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PriceCeiling <= 0 {
		cfg.PriceCeiling = DefaultPriceCeiling
	}
	if cfg.HSNMatchTolerance <= 0 {
		cfg.HSNMatchTolerance = DefaultHSNMatchTolerance
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}
	return &Extractor{cfg: cfg, logger: logger, now: time.Now}
}

// Extract parses raw OCR text into a ReceiptRecord. Empty/blank text
// short-circuits to an empty record with a single warning and zero overall
// confidence.
func (e *Extractor) Extract(text string) *entity.ReceiptRecord {
	rec := &entity.ReceiptRecord{
		RawText:           text,
		CurrencyCode:      constants.CurrencyUSD,
		SuggestedCategory: constants.Uncategorized,
		Confidence:        map[string]entity.FieldConfidence{},
	}
	if strings.TrimSpace(text) == "" {
		rec.Warnings = append(rec.Warnings, "no usable text extracted from image")
		return rec
	}

	lines := strings.Split(text, "\n")
	conf := newConfidenceBuilder()

	merchant, level, reason := extractMerchant(lines)
	rec.MerchantName = merchant
	conf.set("merchant", level, reason)

	total, level, reason := extractTotal(text)
	rec.Total = total
	conf.set("amount", level, reason)

	date, level, reason, warns := extractDate(text, e.now())
	rec.TxDate = date
	conf.set("date", level, reason)
	rec.Warnings = append(rec.Warnings, warns...)

	if tax, level, reason := extractTax(text); tax != nil {
		rec.Tax = tax
		conf.set("tax", level, reason)
	}
	rec.Subtotal = extractSubtotal(text)

	if method, level, reason := extractPaymentMethod(text); method != "" {
		rec.PaymentMethod = method
		conf.set("payment_method", level, reason)
	}

	rec.CurrencyCode = extractCurrency(text)
	rec.Items = e.extractItems(lines)
	rec.SuggestedCategory = suggestCategory(rec.MerchantName, text)

	rec.Confidence = conf.build()
	rec.OverallConfidence = OverallConfidence(rec.Confidence)

	e.logger.Debug("fields extracted",
		"merchant", rec.MerchantName,
		"has_total", rec.Total != nil,
		"has_date", rec.TxDate != nil,
		"items", len(rec.Items),
		"currency", rec.CurrencyCode,
		"category", rec.SuggestedCategory,
		"overall_confidence", rec.OverallConfidence,
	)
	return rec
}

// confidenceBuilder collects per-field entries during one extraction call
// and hands back an immutable-by-convention map at the end, so no sub-
// extractor mutates another's entry.
type confidenceBuilder struct {
	m map[string]entity.FieldConfidence
}

func newConfidenceBuilder() *confidenceBuilder {
	return &confidenceBuilder{m: make(map[string]entity.FieldConfidence)}
}

func (b *confidenceBuilder) set(field string, level constants.ConfidenceLevel, reason string) {
	b.m[field] = entity.FieldConfidence{Level: level, Reason: reason, Score: level.Score()}
}

func (b *confidenceBuilder) build() map[string]entity.FieldConfidence {
	return b.m
}

// OverallConfidence is the weighted mean over present confidence entries,
// 0.0 for an empty map.
func OverallConfidence(conf map[string]entity.FieldConfidence) float64 {
	if len(conf) == 0 {
		return 0
	}
	var sum, weightSum float64
	for field, fc := range conf {
		w, ok := constants.FieldWeights[field]
		if !ok {
			w = constants.DefaultFieldWeight
		}
		sum += w * fc.Score
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}
