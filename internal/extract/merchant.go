package extract

import (
	"strings"
	"unicode"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// extractMerchant runs the three-tier merchant strategy: known chain names,
// then legal-entity suffixes, then a filtered first-plausible-line fallback.
// It never invents a value: a miss returns "" with a LOW "not found" note.
func extractMerchant(lines []string) (string, constants.ConfidenceLevel, string) {
	// Tier 1: known regional chains.
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, chain := range knownMerchants {
			if strings.Contains(lower, chain) {
				cleaned := cleanMerchantLine(line)
				if len(cleaned) >= 5 && len(cleaned) <= 60 {
					return cleaned, constants.ConfidenceHigh, "matched known merchant pattern"
				}
			}
		}
	}

	// Tier 2: legal-entity suffix at line end.
	for _, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if len(lower) < 10 || isSkippedMerchantLine(lower) {
			continue
		}
		for _, suffix := range legalSuffixes {
			if strings.HasSuffix(strings.TrimRight(lower, ". "), suffix) {
				cleaned := cleanMerchantLine(line)
				if len(cleaned) >= 5 && len(cleaned) <= 60 {
					return cleaned, constants.ConfidenceHigh, "matched legal entity suffix"
				}
			}
		}
	}

	// Tier 3: first plausible header line.
	var candidates []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if trimmed == "" || isSkippedMerchantLine(lower) {
			continue
		}
		if numericOnlyLine.MatchString(trimmed) || priceOnlyLine.MatchString(trimmed) {
			continue
		}
		if leadingItemCode.MatchString(trimmed) {
			continue
		}
		if digitCount(trimmed) >= letterCount(trimmed) {
			continue
		}
		candidates = append(candidates, trimmed)
		if len(candidates) == 5 {
			break
		}
	}
	for _, cand := range candidates {
		cleaned := cleanMerchantLine(cand)
		if letterCount(cleaned) >= 3 && letterCount(cleaned) > digitCount(cleaned) && len(cleaned) <= 60 {
			return cleaned, constants.ConfidenceLow, "best-guess from header lines"
		}
	}

	return "", constants.ConfidenceLow, "merchant not found"
}

func isSkippedMerchantLine(lower string) bool {
	for _, w := range merchantSkipWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func cleanMerchantLine(line string) string {
	s := cleanSymbols.ReplaceAllString(line, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
