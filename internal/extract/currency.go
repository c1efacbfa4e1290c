package extract

import (
	"strings"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// extractCurrency detects currency by symbol first, then regional keywords,
// and defaults to USD. A "$" with "Rs" elsewhere in the text is treated as a
// misread rupee glyph.
func extractCurrency(text string) string {
	switch {
	case strings.Contains(text, "₹"):
		return constants.CurrencyINR
	case strings.Contains(text, "$"):
		if rsWordPattern.MatchString(text) {
			return constants.CurrencyINR
		}
		return constants.CurrencyUSD
	case strings.Contains(text, "€"):
		return constants.CurrencyEUR
	case strings.Contains(text, "£"):
		return constants.CurrencyGBP
	case strings.Contains(text, "¥"):
		return constants.CurrencyJPY
	}
	if inrKeywordPattern.MatchString(text) {
		return constants.CurrencyINR
	}
	return constants.CurrencyUSD
}
