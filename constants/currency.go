package constants

// ISO 4217 currency codes the extractor can emit.
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyJPY = "JPY"
)

// Canonical payment method labels.
const (
	PaymentUPI        = "UPI"
	PaymentCreditCard = "Credit Card"
	PaymentDebitCard  = "Debit Card"
	PaymentCard       = "Card"
	PaymentCash       = "Cash"
	PaymentNetBanking = "Net Banking"
	PaymentWallet     = "Wallet"
)

// PaymentKeywords pairs a canonical payment label with the receipt keywords
// that indicate it. Matched with word boundaries, never bare substrings, so
// "CASH" inside "CASHIER" does not count.
type PaymentKeywords struct {
	Label    string
	Keywords []string
}

// PaymentRules is the ordered payment-method table; earlier entries win.
var PaymentRules = []PaymentKeywords{
	{PaymentUPI, []string{"upi", "phonepe", "gpay", "google pay", "paytm upi", "bhim"}},
	{PaymentCreditCard, []string{"credit card", "visa", "mastercard", "amex", "rupay credit"}},
	{PaymentDebitCard, []string{"debit card", "rupay", "maestro"}},
	{PaymentNetBanking, []string{"net banking", "netbanking", "neft", "imps", "rtgs"}},
	{PaymentWallet, []string{"paytm", "wallet", "amazon pay", "mobikwik"}},
	{PaymentCard, []string{"card"}},
	{PaymentCash, []string{"cash", "cash tendered", "change due"}},
}
