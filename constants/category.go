package constants

// Category is a suggested expense category.
type Category string

const (
	Groceries      Category = "Groceries"
	FoodAndDining  Category = "Food & Dining"
	Transportation Category = "Transportation"
	Shopping       Category = "Shopping"
	Healthcare     Category = "Healthcare"
	Entertainment  Category = "Entertainment"
	Utilities      Category = "Utilities"
	Uncategorized  Category = "Uncategorized"
)

// CategoryKeywords pairs a category with the keywords that suggest it.
type CategoryKeywords struct {
	Category Category
	Keywords []string
}

// CategoryRules is the ordered category suggestion table. Order is semantic:
// keyword sets overlap (e.g. "banana" is a grocery before it is generic
// shopping), so earlier entries take priority.
var CategoryRules = []CategoryKeywords{
	{Groceries, []string{
		"grocery", "supermarket", "mart", "bazaar", "kirana", "fresh", "bigbasket",
		"dmart", "d-mart", "reliance fresh", "more supermarket", "vegetable", "fruit",
		"banana", "milk", "bread", "rice", "dal", "atta", "provision",
	}},
	{FoodAndDining, []string{
		"restaurant", "cafe", "coffee", "hotel", "dhaba", "swiggy", "zomato", "pizza",
		"burger", "biryani", "food", "kitchen", "bakery", "sweets", "juice", "bar",
		"mcdonald", "kfc", "domino", "subway", "starbucks",
	}},
	{Transportation, []string{
		"uber", "ola", "rapido", "taxi", "cab", "auto", "metro", "railway", "irctc",
		"redbus", "bus", "petrol", "diesel", "fuel", "hp ", "indian oil", "bharat petroleum",
		"toll", "parking", "fastag",
	}},
	{Shopping, []string{
		"amazon", "flipkart", "myntra", "ajio", "mall", "store", "retail", "fashion",
		"clothing", "apparel", "footwear", "electronics", "lifestyle", "westside",
	}},
	{Healthcare, []string{
		"pharmacy", "chemist", "medical", "medicine", "apollo", "medplus", "netmeds",
		"hospital", "clinic", "diagnostic", "lab", "doctor", "1mg", "pharmeasy",
	}},
	{Entertainment, []string{
		"movie", "cinema", "pvr", "inox", "bookmyshow", "netflix", "hotstar", "spotify",
		"game", "amusement", "theatre",
	}},
	{Utilities, []string{
		"electricity", "water bill", "gas", "broadband", "internet", "mobile recharge",
		"airtel", "jio", "vodafone", "bsnl", "tata power", "bescom", "postpaid", "prepaid",
	}},
}
