package merge

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/joseph-ayodele/receipt-ocr/constants"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
)

func fptr(v float64) *float64 { return &v }

func page(mutate func(*entity.ReceiptRecord)) *entity.ReceiptRecord {
	p := &entity.ReceiptRecord{
		CurrencyCode:      constants.CurrencyINR,
		SuggestedCategory: constants.Uncategorized,
		ImageQuality:      constants.QualityGood,
		Confidence:        map[string]entity.FieldConfidence{},
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func TestMergeStrongLabelForcesAmount(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) {
			p.RawText = "STAR BAZAAR\nitem lines only"
		}),
		page(func(p *entity.ReceiptRecord) {
			p.RawText = "Net Payable: 500.00"
			p.Total = fptr(500.00)
			p.Confidence["amount"] = entity.FieldConfidence{
				Level: constants.ConfidenceMedium, Score: 0.6,
			}
		}),
	}
	merged := NewMerger(nil).Merge(pages)
	if merged.Total == nil || *merged.Total != 500.00 {
		t.Fatalf("total = %v, want 500.00", merged.Total)
	}
	fc := merged.Confidence["amount"]
	if fc.Score != 1.0 || fc.Level != constants.ConfidenceHigh {
		t.Errorf("amount confidence = %+v, want forced score 1.0 HIGH", fc)
	}
}

func TestMergeHigherConfidenceAmountWins(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) {
			p.Total = fptr(300.00)
			p.Confidence["amount"] = entity.FieldConfidence{
				Level: constants.ConfidenceMedium, Score: 0.6,
			}
		}),
		page(func(p *entity.ReceiptRecord) {
			p.Total = fptr(450.00)
			p.Confidence["amount"] = entity.FieldConfidence{
				Level: constants.ConfidenceHigh, Score: 0.9,
			}
		}),
	}
	merged := NewMerger(nil).Merge(pages)
	if merged.Total == nil || *merged.Total != 450.00 {
		t.Errorf("total = %v, want the higher-confidence 450.00", merged.Total)
	}
}

func TestMergeFirstNonNullFields(t *testing.T) {
	d1 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) {
			p.MerchantName = "STAR BAZAAR"
			p.TxDate = &d1
			p.PaymentMethod = constants.PaymentUPI
		}),
		page(func(p *entity.ReceiptRecord) {
			p.MerchantName = "SOMETHING ELSE"
			p.TxDate = &d2
			p.PaymentMethod = constants.PaymentCash
			p.Subtotal = fptr(75.00)
		}),
	}
	merged := NewMerger(nil).Merge(pages)
	if merged.MerchantName != "STAR BAZAAR" {
		t.Errorf("merchant = %q, want page 1 value", merged.MerchantName)
	}
	if merged.TxDate == nil || !merged.TxDate.Equal(d1) {
		t.Errorf("date = %v, want page 1 value", merged.TxDate)
	}
	if merged.PaymentMethod != constants.PaymentUPI {
		t.Errorf("payment = %q, want page 1 value", merged.PaymentMethod)
	}
	if merged.Subtotal == nil || *merged.Subtotal != 75.00 {
		t.Errorf("subtotal = %v, want first non-null 75.00", merged.Subtotal)
	}
}

func TestMergeTaxSummed(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.Tax = fptr(1.50) }),
		page(nil),
		page(func(p *entity.ReceiptRecord) { p.Tax = fptr(2.25) }),
	}
	merged := NewMerger(nil).Merge(pages)
	if merged.Tax == nil || math.Abs(*merged.Tax-3.75) > 1e-9 {
		t.Errorf("tax = %v, want 3.75", merged.Tax)
	}
}

func TestMergeTaxAbsentStaysNil(t *testing.T) {
	merged := NewMerger(nil).Merge([]*entity.ReceiptRecord{page(nil), page(nil)})
	if merged.Tax != nil {
		t.Errorf("tax = %v, want nil when no page has one", merged.Tax)
	}
}

func TestMergeItemsDeduplicatedAcrossPages(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) {
			p.Items = []entity.ExpenseItem{
				{Description: "Milk", Quantity: 1, TotalPrice: 45.00},
				{Description: "Bread", Quantity: 1, TotalPrice: 30.00},
			}
		}),
		page(func(p *entity.ReceiptRecord) {
			p.Items = []entity.ExpenseItem{
				{Description: "milk", Quantity: 1, TotalPrice: 45.00},
			}
		}),
	}
	merged := NewMerger(nil).Merge(pages)
	if len(merged.Items) != 2 {
		t.Fatalf("items = %+v, want 2 after cross-page dedup", merged.Items)
	}
}

func TestMergeCurrencyMajorityAndDefault(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.CurrencyCode = constants.CurrencyUSD }),
		page(func(p *entity.ReceiptRecord) { p.CurrencyCode = constants.CurrencyINR }),
		page(func(p *entity.ReceiptRecord) { p.CurrencyCode = constants.CurrencyINR }),
	}
	if got := NewMerger(nil).Merge(pages).CurrencyCode; got != constants.CurrencyINR {
		t.Errorf("currency = %s, want majority INR", got)
	}

	// Tie breaks toward the code seen first in page order.
	tied := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.CurrencyCode = constants.CurrencyUSD }),
		page(func(p *entity.ReceiptRecord) { p.CurrencyCode = constants.CurrencyINR }),
	}
	if got := NewMerger(nil).Merge(tied).CurrencyCode; got != constants.CurrencyUSD {
		t.Errorf("currency = %s, want first-seen USD on a tie", got)
	}

	none := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.CurrencyCode = "" }),
	}
	if got := NewMerger(nil).Merge(none).CurrencyCode; got != constants.CurrencyINR {
		t.Errorf("currency = %s, want INR default", got)
	}
}

func TestMergeWorstQualityWins(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.ImageQuality = constants.QualityGood }),
		page(func(p *entity.ReceiptRecord) { p.ImageQuality = constants.QualityPoor }),
		page(func(p *entity.ReceiptRecord) { p.ImageQuality = constants.QualityFair }),
	}
	if got := NewMerger(nil).Merge(pages).ImageQuality; got != constants.QualityPoor {
		t.Errorf("quality = %s, want POOR", got)
	}
}

func TestMergeWarningsAndRawText(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) {
			p.RawText = "page one text"
			p.Warnings = []string{"multiple dates found"}
		}),
		page(func(p *entity.ReceiptRecord) {
			p.RawText = "page two text"
		}),
	}
	merged := NewMerger(nil).Merge(pages)
	if len(merged.Warnings) != 2 {
		t.Fatalf("warnings = %v, want merge notice plus one page warning", merged.Warnings)
	}
	if !strings.Contains(merged.Warnings[0], "merged 2 pages") {
		t.Errorf("warnings[0] = %q, want merge notice first", merged.Warnings[0])
	}
	if merged.Warnings[1] != "page 1: multiple dates found" {
		t.Errorf("warnings[1] = %q, want page-prefixed warning", merged.Warnings[1])
	}
	if !strings.Contains(merged.RawText, "--- PAGE 1 ---\npage one text") ||
		!strings.Contains(merged.RawText, "--- PAGE 2 ---\npage two text") {
		t.Errorf("raw text missing page separators:\n%s", merged.RawText)
	}
}

func TestMergeOverallConfidenceAveraged(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.OverallConfidence = 0.9 }),
		page(func(p *entity.ReceiptRecord) { p.OverallConfidence = 0.3 }),
	}
	got := NewMerger(nil).Merge(pages).OverallConfidence
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("overall confidence = %v, want 0.6", got)
	}
}

func TestMergeProcessingTimeSummed(t *testing.T) {
	pages := []*entity.ReceiptRecord{
		page(func(p *entity.ReceiptRecord) { p.ProcessingTime = 100 * time.Millisecond }),
		page(func(p *entity.ReceiptRecord) { p.ProcessingTime = 250 * time.Millisecond }),
	}
	if got := NewMerger(nil).Merge(pages).ProcessingTime; got != 350*time.Millisecond {
		t.Errorf("processing time = %v, want 350ms", got)
	}
}
