package ocr

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reCurrencySym = regexp.MustCompile(`[₹$€£¥]|(?i)\brs\.?|\binr\b`)
	reDecAmount   = regexp.MustCompile(`\b\d{1,3}(,\d{3})*\.\d{2}\b|\b\d+\.\d{2}\b`)
	reDateLike    = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	reTotalWord   = regexp.MustCompile(`(?i)\b(total|subtotal|sub-total|amount)\b`)
)

const garbleRatioCeiling = 0.10

// heuristicConfidence estimates OCR quality in 0..100 from decoded text
// characteristics: receipt artifacts (currency symbols, decimal amounts,
// date-ish substrings, total keywords) push the score up from a 50 base,
// while a high ratio of garbled characters pulls it down.
func heuristicConfidence(txt string) float64 {
	if strings.TrimSpace(txt) == "" {
		return 0
	}
	score := 50.0
	if reCurrencySym.MatchString(txt) {
		score += 12
	}
	if reDecAmount.MatchString(txt) {
		score += 12
	}
	if reDateLike.MatchString(txt) {
		score += 10
	}
	if reTotalWord.MatchString(txt) {
		score += 10
	}
	if garbleRatio(txt) > garbleRatioCeiling {
		score -= 20
	}
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return score
}

// garbleRatio is the fraction of non-whitespace characters that are not
// printable text a receipt legitimately carries.
func garbleRatio(txt string) float64 {
	total, garbled := 0, 0
	for _, r := range txt {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if !unicode.IsPrint(r) || r == unicode.ReplacementChar {
			garbled++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(garbled) / float64(total)
}
