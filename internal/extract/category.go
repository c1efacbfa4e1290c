package extract

import (
	"strings"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// suggestCategory searches merchant plus full text against the ordered
// category keyword table. Order matters because keyword sets overlap; the
// first matching keyword's category wins, default Uncategorized.
func suggestCategory(merchant, text string) constants.Category {
	haystack := strings.ToLower(merchant + "\n" + text)
	for _, rule := range constants.CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(haystack, kw) {
				return rule.Category
			}
		}
	}
	return constants.Uncategorized
}
