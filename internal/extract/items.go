package extract

import (
	"fmt"
	"math"
	"strings"

	"github.com/joseph-ayodele/receipt-ocr/constants"
	"github.com/joseph-ayodele/receipt-ocr/internal/entity"
)

// pendingItem buffers a regional item-code line (code qty unit? unit_price
// total) while we wait for the description line that usually follows it.
type pendingItem struct {
	quantity  float64
	unitPrice float64
	total     float64
}

// extractItems harvests line items with four layered patterns per line,
// first match wins. Summary lines are excluded a priori by the skip list.
// Items are deduplicated by (lowercased description, 2-decimal-rounded
// total) and capped at maxItems.
func (e *Extractor) extractItems(lines []string) []entity.ExpenseItem {
	var items []entity.ExpenseItem
	var pending *pendingItem

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || itemSkipPattern.MatchString(line) {
			continue
		}

		// 1. Regional item-code line: buffers, never emits by itself.
		if m := itemCodeLine.FindStringSubmatch(line); m != nil {
			qty, okQ := parseAmount(m[2])
			unit, okU := parseAmount(m[3])
			total, okT := parseAmount(m[4])
			if okQ && okU && okT && unit <= e.cfg.PriceCeiling && total <= e.cfg.PriceCeiling {
				pending = &pendingItem{quantity: qty, unitPrice: unit, total: total}
			}
			continue
		}

		// 2. Description + 8-digit HSN code + taxable amount.
		if m := hsnLine.FindStringSubmatch(line); m != nil {
			desc := strings.TrimSpace(m[1])
			taxable, ok := parseAmount(m[3])
			if ok && taxable <= e.cfg.PriceCeiling && letterCount(desc) >= 2 {
				if pending != nil && math.Abs(pending.total-taxable) <= e.cfg.HSNMatchTolerance {
					unit := pending.unitPrice
					items = append(items, entity.ExpenseItem{
						Description: desc,
						Quantity:    pending.quantity,
						UnitPrice:   &unit,
						TotalPrice:  pending.total,
						Confidence:  constants.ConfidenceHigh,
					})
				} else {
					items = append(items, entity.ExpenseItem{
						Description: desc,
						Quantity:    1,
						TotalPrice:  taxable,
						Confidence:  constants.ConfidenceMedium,
					})
				}
			}
			pending = nil
			continue
		}

		// 3. Simple "description [xN] price" with an explicit marker.
		if m := simpleItemLine.FindStringSubmatch(line); m != nil {
			if item, ok := buildSimpleItem(m, e.cfg.PriceCeiling, constants.ConfidenceMedium); ok {
				items = append(items, item)
			}
			continue
		}

		// 4. Bare "description amount" fallback.
		if m := bareItemLine.FindStringSubmatch(line); m != nil {
			if item, ok := buildSimpleItem(m, e.cfg.PriceCeiling, constants.ConfidenceLow); ok {
				items = append(items, item)
			}
		}
	}

	return dedupeItems(items, e.cfg.MaxItems)
}

func buildSimpleItem(m []string, ceiling float64, level constants.ConfidenceLevel) (entity.ExpenseItem, bool) {
	desc := strings.TrimSpace(m[1])
	price, ok := parseAmount(m[3])
	if !ok || price > ceiling || letterCount(desc) < 2 {
		return entity.ExpenseItem{}, false
	}
	qty := 1.0
	if m[2] != "" {
		if q, ok := parseAmount(m[2]); ok && q > 0 {
			qty = q
		}
	}
	return entity.ExpenseItem{
		Description: desc,
		Quantity:    qty,
		TotalPrice:  price,
		Confidence:  level,
	}, true
}

// ItemKey is the dedup key shared by single-page extraction and the
// multi-page merger.
func ItemKey(item entity.ExpenseItem) string {
	return fmt.Sprintf("%s|%.2f", strings.ToLower(strings.TrimSpace(item.Description)), item.TotalPrice)
}

// DedupeItems collapses repeated OCR artifacts and caps the list.
func DedupeItems(items []entity.ExpenseItem, max int) []entity.ExpenseItem {
	return dedupeItems(items, max)
}

func dedupeItems(items []entity.ExpenseItem, max int) []entity.ExpenseItem {
	if max <= 0 {
		max = DefaultMaxItems
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]entity.ExpenseItem, 0, len(items))
	for _, item := range items {
		key := ItemKey(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		if len(out) == max {
			break
		}
	}
	return out
}
