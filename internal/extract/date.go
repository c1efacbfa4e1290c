package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// componentOrder tells the parser how to read a variant's capture groups.
type componentOrder int

const (
	orderDMY componentOrder = iota
	orderDMYShort
	orderYMD
	orderDTextMY
	orderTextMDY
)

type dateVariant struct {
	re    *regexp.Regexp
	order componentOrder
}

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// extractDate collects every syntactically valid date across all variants,
// keeps those inside [now-5y, now+1y], and picks the most recent when more
// than one distinct date survives (with a warning). Day-first formats are
// the regional default; when the parsed month exceeds 12 but the day does
// not, the two are swapped before validation.
func extractDate(text string, now time.Time) (*time.Time, constants.ConfidenceLevel, string, []string) {
	earliest := now.AddDate(-5, 0, 0)
	latest := now.AddDate(1, 0, 0)

	seen := make(map[string]struct{})
	var valid []time.Time
	for _, variant := range datePatterns {
		for _, m := range variant.re.FindAllStringSubmatch(text, -1) {
			t, ok := parseDateMatch(m, variant.order)
			if !ok {
				continue
			}
			if t.Before(earliest) || t.After(latest) {
				continue
			}
			key := t.Format("2006-01-02")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			valid = append(valid, t)
		}
	}

	switch len(valid) {
	case 0:
		return nil, constants.ConfidenceLow, "no valid date found", nil
	case 1:
		return &valid[0], constants.ConfidenceHigh, "single date match", nil
	default:
		best := valid[0]
		for _, t := range valid[1:] {
			if t.After(best) {
				best = t
			}
		}
		return &best, constants.ConfidenceMedium, "most recent of multiple dates",
			[]string{"multiple dates found; selected most recent"}
	}
}

func parseDateMatch(m []string, order componentOrder) (time.Time, bool) {
	var day, month, year int
	switch order {
	case orderDMY, orderDMYShort:
		day = atoi(m[1])
		month = atoi(m[2])
		year = atoi(m[3])
		if order == orderDMYShort {
			year += 2000
		}
		// ambiguous month/day swap: 03/15/2024 is month-first
		if month > 12 && day <= 12 {
			day, month = month, day
		}
	case orderYMD:
		year = atoi(m[1])
		month = atoi(m[2])
		day = atoi(m[3])
	case orderDTextMY:
		day = atoi(m[1])
		mon, ok := monthAbbrevs[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		month = int(mon)
		year = atoi(m[3])
	case orderTextMDY:
		mon, ok := monthAbbrevs[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, false
		}
		month = int(mon)
		day = atoi(m[2])
		year = atoi(m[3])
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject rollovers like Feb 30
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
