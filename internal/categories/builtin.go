package categories

import "strings"

// Keywords pairs a category with the words that select it.
type Keywords struct {
	Category Name
	Keywords []string
}

// builtinKeywords is evaluated in order; on equal keyword length the earlier
// entry wins.
var builtinKeywords = []Keywords{
	// personal
	{"Food", []string{"food", "meal", "eat out", "pad thai", "groceries", "restaurant", "burger king", "coffee", "probiotic drink", "baill pork rice", "sushi", "gill fish", "thai noodle"}},
	{"Grocery", []string{"grocery", "pork", "banana", "veggie", "vegetable", "vegetables", "orange", "garlic", "tomatoes", "veggies", "chicken", "beef", "fish", "milk", "yogurt", "cheese", "butter", "egg", "chocolate", "green tea", "rice", "noodle", "bread", "cake", "cookie", "chips", "herb thai", "thai herb", "chinese herb", "pineapple", "fruit", "watermelon", "mango", "coconut", "apple", "pear", "peach", "plum", "cherry", "strawberry", "blueberry", "raspberry", "blackberry"}},
	{"Rent", []string{"rent"}},
	{"Utilities", []string{"utilities", "kitchen equipment", "electric", "water", "internet", "phone"}},
	{"Transportation", []string{"transportation", "gas", "bus", "train", "taxi", "grab"}},
	{"Motorbike petrol", []string{"petrol", "gasoline", "bike", "bike petrol"}},
	{"Laundry", []string{"laundry", "dryer"}},
	{"Gym", []string{"gym", "utcc app tapup", "muaythai", "jujitsu", "fitness"}},
	{"iCloud", []string{"icloud"}},
	{"Entertainment", []string{"entertainment", "movie", "concert", "game", "hangout", "hang out", "drink"}},
	{"Shopping", []string{"shopping", "clothes", "electronics"}},
	{"Healthcare", []string{"healthcare", "pill", "medicine", "doctor", "pharmacy"}},
	{"Education", []string{"education", "book", "course"}},
	{"Insurance", []string{"insurance", "life insurance", "health insurance", "car insurance", "home insurance", "travel insurance"}},
	{"Personal interest", []string{"interest income", "bank interest", "interest"}},
	{"Shipping cost", []string{"shipping", "delivery", "kerry", "flash", "bolt", "grab"}},
	{"Family support", []string{"mom", "dad", "family", "brother", "sister", "parents"}},
	{"Job", []string{"part-time", "salary", "job", "freelance"}},
	{"Dividend", []string{"dividend"}},
	{OtherIncome, []string{"other income"}},
	{"Passive income", []string{"passive income"}},

	// business
	{"Business", []string{"business", "store", "shop", "client"}},
	{"Business utility", []string{"business utility", "business electric", "shop water", "store internet", "store phone"}},
	{"Employee salary", []string{"employee", "salary", "payroll", "staff salary"}},
	{"Business shipping cost", []string{"business delivery", "company shipping"}},
	{"Bank loan", []string{"loan", "bank loan"}},
	{"Business Bank loan", []string{"business loan", "store loan"}},
	{"Healthcare employee", []string{"medical staff", "clinic staff", "hospital payroll", "healthcare staff", "pill staff"}},
	{"Transportation fee employee", []string{"employee transport", "staff bus"}},

	// investment
	{"ETF", []string{"etf"}},
	{"Stock", []string{"stock"}},
	{"Global Stock", []string{"us stock", "global stock"}},
	{"Bond", []string{"bond"}},
	{"crypto", []string{"bitcoin", "ethereum", "solana", "dogecoin", "shiba inu", "ripple"}},

	// savings
	{"Emergency Fund", []string{"emergency"}},
	{"Long-Term saving", []string{"long term", "future saving"}},

	// tax: individual
	{"Personal income Tax", []string{"personal income tax", "pit", "personal income", "individual tax"}},
	{"Withholding tax (individual)", []string{"withholding tax", "wht", "withholding"}},
	{"Value Added Tax (individual)", []string{"vat", "value added tax"}},
	{"Stamp Duty (individual)", []string{"stamp duty", "stamp"}},

	// tax: business
	{"Business tax", []string{"business tax", "company tax", "corporate tax", "store tax", "shop tax"}},
	{"Business income Tax", []string{"business income tax", "bit", "business income"}},
	{"Business interest", []string{"business interest", "business interest income"}},
	{"Withholding tax (business)", []string{"withholding tax", "wht", "withholding", "shop withholding", "company withholding", "store withholding", "business withholding"}},
	{"Value Added Tax (business)", []string{"vat", "value added tax", "shop vat", "company vat", "store vat", "business vat"}},
	{"Stamp Duty (business)", []string{"stamp duty", "stamp"}},

	// other
	{"Dating", []string{"dating", "date"}},
	{"sex worker", []string{"escort", "red light", "sex worker"}},
	{OtherExpense, []string{"other expense"}},
}

// Builtin returns a copy of the built-in keyword table in evaluation order.
func Builtin() []Keywords {
	return cloneKeywords(builtinKeywords)
}

// IsBuiltin reports whether n appears in the built-in keyword or group tables.
func IsBuiltin(n Name) bool {
	for _, k := range builtinKeywords {
		if k.Category == n {
			return true
		}
	}
	for _, g := range unifiedGroups {
		for _, c := range g.Categories {
			if c == n {
				return true
			}
		}
	}
	return false
}

func cloneKeywords(in []Keywords) []Keywords {
	out := make([]Keywords, len(in))
	for i, k := range in {
		out[i] = Keywords{Category: k.Category, Keywords: append([]string(nil), k.Keywords...)}
	}
	return out
}

// NormalizeKeywords lower-cases, trims and de-duplicates keywords, keeping
// first occurrence order and dropping blanks.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
