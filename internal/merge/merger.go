// Package merge combines per-page extraction results from a multi-photo
// receipt into one coherent record, resolving conflicts deterministically
// while iterating pages in order (page 1 is assumed to carry the header).
package merge

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/receipt-ocr/constants"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
	"github.com/joseph-ayodele/receipt-ocr/internal/extract"
)

// strongTotalLabels force a page's amount to confidence 1.0: a page whose
// text prints one of these carries the authoritative invoice total.
var strongTotalLabels = []string{"total invoice amount", "net payable", "total received amount"}

const defaultAmountScore = 0.5

// Merger reduces an ordered page-result list into a single record.
type Merger struct {
	logger *slog.Logger
}

func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{logger: logger}
}

// Merge applies the per-field rules over pages in order. The returned record
// owns a fresh confidence map and item list, never aliased to any page's.
func (m *Merger) Merge(pages []*entity.ReceiptRecord) *entity.ReceiptRecord {
	merged := &entity.ReceiptRecord{
		CurrencyCode:      constants.CurrencyINR,
		SuggestedCategory: constants.Uncategorized,
		Confidence:        make(map[string]entity.FieldConfidence),
	}
	if len(pages) == 0 {
		return merged
	}

	merged.Warnings = append(merged.Warnings,
		fmt.Sprintf("merged %d pages from multi-page receipt", len(pages)))

	var (
		bestAmountScore float64
		texts           []string
		items           []entity.ExpenseItem
		taxSum          float64
		taxSeen         bool
		confSum         float64
		currencyVotes   = make(map[string]int)
		currencyOrder   []string
		worstQuality    constants.ImageQuality
	)

	for i, page := range pages {
		pageNo := i + 1

		// Merchant: first non-blank wins, the header is on page 1.
		if merged.MerchantName == "" && strings.TrimSpace(page.MerchantName) != "" {
			merged.MerchantName = page.MerchantName
			copyEntry(merged.Confidence, page.Confidence, "merchant")
		}

		// Amount: keep the higher-confidence candidate; a strong total label
		// in the page text forces that page to 1.0, overriding prior picks.
		if page.Total != nil {
			score := defaultAmountScore
			if fc, ok := page.Confidence["amount"]; ok {
				score = fc.Score
			}
			if hasStrongTotalLabel(page.RawText) {
				score = 1.0
			}
			if merged.Total == nil || score > bestAmountScore {
				total := *page.Total
				merged.Total = &total
				bestAmountScore = score
				merged.Confidence["amount"] = entity.FieldConfidence{
					Level:  levelForScore(score),
					Reason: fmt.Sprintf("page %d amount", pageNo),
					Score:  score,
				}
			}
		}

		// First non-null wins.
		if merged.TxDate == nil && page.TxDate != nil {
			date := *page.TxDate
			merged.TxDate = &date
			copyEntry(merged.Confidence, page.Confidence, "date")
		}
		if merged.Subtotal == nil && page.Subtotal != nil {
			subtotal := *page.Subtotal
			merged.Subtotal = &subtotal
		}
		if merged.PaymentMethod == "" && page.PaymentMethod != "" {
			merged.PaymentMethod = page.PaymentMethod
			copyEntry(merged.Confidence, page.Confidence, "payment_method")
		}
		if merged.SuggestedCategory == constants.Uncategorized &&
			page.SuggestedCategory != "" && page.SuggestedCategory != constants.Uncategorized {
			merged.SuggestedCategory = page.SuggestedCategory
		}

		// Tax: summed, multi-page bills list GST lines per page section.
		if page.Tax != nil {
			taxSum += *page.Tax
			taxSeen = true
			copyEntry(merged.Confidence, page.Confidence, "tax")
		}

		items = append(items, page.Items...)

		if page.CurrencyCode != "" {
			if _, seen := currencyVotes[page.CurrencyCode]; !seen {
				currencyOrder = append(currencyOrder, page.CurrencyCode)
			}
			currencyVotes[page.CurrencyCode]++
		}

		if i == 0 || page.ImageQuality.Rank() < worstQuality.Rank() {
			worstQuality = page.ImageQuality
		}

		confSum += page.OverallConfidence
		merged.ProcessingTime += page.ProcessingTime
		texts = append(texts, fmt.Sprintf("--- PAGE %d ---\n%s", pageNo, page.RawText))

		for _, w := range page.Warnings {
			merged.Warnings = append(merged.Warnings, fmt.Sprintf("page %d: %s", pageNo, w))
		}
	}

	if taxSeen {
		merged.Tax = &taxSum
	}
	merged.Items = extract.DedupeItems(items, extract.DefaultMaxItems)
	merged.CurrencyCode = majorityCurrency(currencyVotes, currencyOrder)
	merged.ImageQuality = worstQuality
	merged.OverallConfidence = confSum / float64(len(pages))
	merged.RawText = strings.Join(texts, "\n")

	m.logger.Debug("pages merged",
		"pages", len(pages),
		"items", len(merged.Items),
		"currency", merged.CurrencyCode,
		"overall_confidence", merged.OverallConfidence,
	)
	return merged
}

func hasStrongTotalLabel(text string) bool {
	lower := strings.ToLower(text)
	for _, label := range strongTotalLabels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	return false
}

// majorityCurrency picks the most-voted code; ties break toward the code
// seen first in page order, default INR for an empty vote.
func majorityCurrency(votes map[string]int, order []string) string {
	best := ""
	bestVotes := 0
	for _, code := range order {
		if votes[code] > bestVotes {
			best = code
			bestVotes = votes[code]
		}
	}
	if best == "" {
		return constants.CurrencyINR
	}
	return best
}

func copyEntry(dst, src map[string]entity.FieldConfidence, field string) {
	if fc, ok := src[field]; ok {
		if _, exists := dst[field]; !exists {
			dst[field] = fc
		}
	}
}

func levelForScore(score float64) constants.ConfidenceLevel {
	switch {
	case score >= 0.8:
		return constants.ConfidenceHigh
	case score >= 0.5:
		return constants.ConfidenceMedium
	default:
		return constants.ConfidenceLow
	}
}
