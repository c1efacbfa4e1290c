package extract

import "github.com/joseph-ayodele/receipt-ocr/constants"

// extractTax tries GST component patterns before Western tax labels. Tax is
// an optional field: absence yields nil with no confidence entry at all,
// unlike amount/date/merchant.
func extractTax(text string) (*float64, constants.ConfidenceLevel, string) {
	for _, re := range taxPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1]); ok {
			return &v, constants.ConfidenceHigh, "matched tax label"
		}
	}
	return nil, "", ""
}

// extractSubtotal is a secondary field with no confidence tracking.
func extractSubtotal(text string) *float64 {
	for _, re := range subtotalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1]); ok {
			return &v
		}
	}
	return nil
}
