package extract

import (
	"regexp"

	"github.com/joseph-ayodele/receipt-ocr/constants"
)

// Pattern tables are compiled once at package init and shared read-only by
// every extraction call.

// amt captures a currency amount with optional thousands separators.
const amt = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

// cur tolerates OCR-misread currency glyphs: ₹ commonly comes out as "%",
// "Rs" or a bare dot.
const cur = `(?:₹|rs\.?|inr|\$|€|£|%|\.)?\s*`

// labeledTotalPatterns is the ordered priority list for the printed total.
// Earlier labels are more authoritative on regional invoices.
var labeledTotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s+invoice\s+amount\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)total\s+received\s+amount\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)grand\s+total\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\btotal\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)net\s+(?:amount|payable)\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)amount\s+(?:payable|due|paid)\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)bill\s+amount\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)balance\s+due\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\b(?:balance|due)\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bpayment\s*:?\s*` + cur + amt),
}

// currencyTokenPattern finds any currency-looking token for the
// maximum-value fallback.
var currencyTokenPattern = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr|\$|€|£)\s*` + amt + `|\b(\d[\d,]*\.\d{2})\b`)

// Date variants, regional day-first formats prioritized.
var datePatterns = []dateVariant{
	{regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})\b`), orderDMY},
	{regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{2})\b`), orderDMYShort},
	{regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`), orderYMD},
	{regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+(\d{4})\b`), orderDTextMY},
	{regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`), orderTextMDY},
}

// taxPatterns covers regional GST components before Western tax labels.
var taxPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s+gst\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bgst\s*(?:@?\s*\d+(?:\.\d+)?\s*%)?\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bcgst\s*(?:@?\s*\d+(?:\.\d+)?\s*%)?\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bsgst\s*(?:@?\s*\d+(?:\.\d+)?\s*%)?\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bigst\s*(?:@?\s*\d+(?:\.\d+)?\s*%)?\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bcess\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)sales\s+tax\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bvat\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\bhst\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)\btax\s*:?\s*` + cur + amt),
}

var subtotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sub\s*-?\s*total\s*:?\s*` + cur + amt),
	regexp.MustCompile(`(?i)taxable\s+(?:amount|value)\s*:?\s*` + cur + amt),
}

// knownMerchants are regional chain names matched case-insensitively as
// substrings against every line.
var knownMerchants = []string{
	"star bazaar", "big bazaar", "d-mart", "dmart", "d mart", "reliance fresh",
	"reliance smart", "reliance retail", "more supermarket", "spencer", "easyday",
	"vishal mega mart", "nature's basket", "nilgiris", "metro cash", "spar",
	"walmart", "target", "costco", "tesco", "aldi", "lidl", "kroger", "safeway",
	"7-eleven", "big basket", "bigbasket",
}

// legalSuffixes mark lines that name a registered business.
var legalSuffixes = []string{"pvt ltd", "pvt. ltd", "private limited", "limited", "ltd"}

// merchantSkipWords disqualify a line from being the merchant: tax, invoice,
// payment and header boilerplate.
var merchantSkipWords = []string{
	"invoice", "receipt", "bill no", "bill#", "tax", "gst", "gstin", "cgst",
	"sgst", "igst", "cess", "fssai", "total", "subtotal", "amount", "payment",
	"paid", "cash", "card", "upi", "change", "customer", "cashier", "phone",
	"tel:", "www", "thank", "welcome", "date", "time",
}

// itemSkipPattern excludes summary/footer lines from item harvesting.
var itemSkipPattern = regexp.MustCompile(`(?i)\b(total|sub\s*-?\s*total|tax|gst|cgst|sgst|igst|cess|invoice|payment|paid|customer|cash|change|balance|due|tender)\b|\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`)

// Line-item patterns, layered; first match per line wins.
var (
	// itemCodeLine: 6-7 digit item code, qty, optional unit, unit price, total.
	// 8-digit codes are HSN tax-classification codes, not item codes.
	itemCodeLine = regexp.MustCompile(`^(\d{6,7})\s+(\d+(?:\.\d+)?)\s+(?:(?i:pcs|pc|kg|gm|g|ltr|l|ml|nos|no|ea|unit)\s+)?(\d+(?:\.\d{1,2})?)\s+(\d+(?:\.\d{1,2})?)\s*$`)

	// hsnLine: description, 8-digit HSN/SAC code, taxable amount.
	hsnLine = regexp.MustCompile(`^(.+?)\s+(\d{8})\s+(\d+(?:\.\d{1,2})?)\b`)

	// simpleItemLine: description, optional "x N" quantity, price with an
	// explicit currency glyph or quantity marker.
	simpleItemLine = regexp.MustCompile(`(?i)^([a-z][a-z0-9 .&'()/-]*[a-z)])\s+(?:x\s*(\d+)\s+)?(?:₹|rs\.?|\$|€|£)\s*(\d+(?:\.\d{1,2})?)\s*$`)

	// bareItemLine: description then a number, nothing else. Last resort.
	bareItemLine = regexp.MustCompile(`(?i)^([a-z][a-z0-9 .&'()/-]*[a-z)])\s+(?:x\s*(\d+)\s+)?(\d+(?:\.\d{1,2})?)\s*$`)
)

var (
	numericOnlyLine = regexp.MustCompile(`^[\d\s.,:/-]+$`)
	priceOnlyLine   = regexp.MustCompile(`(?i)^\s*(?:₹|rs\.?|\$|€|£)?\s*\d[\d,]*(?:\.\d{1,2})?\s*$`)
	leadingItemCode = regexp.MustCompile(`^\d{6,7}\s`)
	cleanSymbols    = regexp.MustCompile(`[^\pL\pN .&'-]+`)
	multiSpace      = regexp.MustCompile(`\s{2,}`)
)

// paymentRule is a compiled word-boundary matcher for one canonical label.
type paymentRule struct {
	label    string
	patterns []*regexp.Regexp
}

// paymentRules preserves the priority order of constants.PaymentRules.
// Word-boundary matching avoids false positives like "CASH" in "CASHIER".
var paymentRules = compilePaymentRules()

func compilePaymentRules() []paymentRule {
	rules := make([]paymentRule, 0, len(constants.PaymentRules))
	for _, r := range constants.PaymentRules {
		pr := paymentRule{label: r.Label}
		for _, kw := range r.Keywords {
			pr.patterns = append(pr.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		rules = append(rules, pr)
	}
	return rules
}

// inrKeywordPattern marks regional text that implies INR even without a ₹.
var inrKeywordPattern = regexp.MustCompile(`(?i)\brs\.?|\brupees?\b|\binr\b|\bpaisa\b|\bgst\b|\bcgst\b|\bsgst\b|\bigst\b|\bfssai\b`)

var rsWordPattern = regexp.MustCompile(`(?i)\brs\b`)
