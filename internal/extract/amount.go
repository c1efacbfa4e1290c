package extract

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// extractTotal tries the ordered labeled-total patterns first; any hit is
// HIGH confidence. With no labeled total the maximum currency-looking token
// wins at MEDIUM (the total is usually the largest printed amount). No token
// at all yields nil at LOW.
func extractTotal(text string) (*float64, constants.ConfidenceLevel, string) {
	for _, re := range labeledTotalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, ok := parseAmount(m[1])
		if !ok {
			// garbled capture; keep trying lower-priority labels
			continue
		}
		return &v, constants.ConfidenceHigh, "matched labeled total"
	}

	var max float64
	found := false
	for _, m := range currencyTokenPattern.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		v, ok := parseAmount(raw)
		if !ok {
			continue
		}
		if !found || v > max {
			max = v
			found = true
		}
	}
	if found {
		return &max, constants.ConfidenceMedium, "largest currency amount in text"
	}
	return nil, constants.ConfidenceLow, "no amount found"
}

// parseAmount strips thousands separators and parses the remainder. A failed
// parse is recovered locally, never propagated.
func parseAmount(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
