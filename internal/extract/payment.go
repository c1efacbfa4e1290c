package extract

import "github.com/joseph-ayodele/receipt-ocr/constants"

// extractPaymentMethod walks the ordered keyword table; table order is the
// priority, so specific rails (UPI apps, card networks) win over the generic
// "card"/"cash" entries.
func extractPaymentMethod(text string) (string, constants.ConfidenceLevel, string) {
	for _, rule := range paymentRules {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				return rule.label, constants.ConfidenceHigh, "matched payment keyword"
			}
		}
	}
	return "", "", ""
}
