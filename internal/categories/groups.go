package categories

import "strings"

// Group is a display grouping of categories, e.g. "Personal".
type Group struct {
	Label      string `json:"label"`
	Categories []Name `json:"categories"`
}

// Group labels.
const (
	GroupPersonal         = "Personal"
	GroupBusiness         = "Business"
	GroupInvestment       = "Investment"
	GroupInvestmentIncome = "Investment & Income"
	GroupSavings          = "Saving & Goals"
	GroupTaxIndividual    = "Tax: Individual"
	GroupTaxBusiness      = "Tax: Business"
	GroupOtherSpecial     = "Other / Special"
)

var unifiedGroups = []Group{
	{GroupPersonal, []Name{"Food", "Grocery", "Rent", "Utilities", "Transportation", "Motorbike petrol", "Laundry", "Gym", "iCloud", "Entertainment", "Shopping", "Healthcare", "Education", "Family support", "Insurance", "Personal interest", "Shipping cost", "family support", "Job", "Dividend", OtherIncome, "Passive income"}},
	{GroupBusiness, []Name{"Business", "Business utility", "Employee salary", "Business shipping cost", "Bank loan", "Healthcare employee", "Transportation fee employee"}},
	{GroupInvestment, []Name{"ETF", "Stock", "Global Stock", "Bond", "crypto"}},
	{GroupSavings, []Name{"Emergency Fund", "Long-Term saving"}},
	{GroupTaxIndividual, []Name{"Personal income Tax", "Personal interest", "Withholding tax (individual)", "Value Added Tax (individual)", "Stamp Duty (individual)"}},
	{GroupTaxBusiness, []Name{"Business income Tax", "Business interest", "Withholding tax (business)", "Value Added Tax (business)", "Stamp Duty (business)"}},
	{GroupOtherSpecial, []Name{"Dating", "sex worker", OtherExpense, OtherIncome}},
}

var expenseGroups = []Group{
	{GroupPersonal, []Name{"Food", "Grocery", "Rent", "Utilities", "Transportation", "Motorbike petrol", "Laundry", "Tap Up", "Gym", "iCloud", "Entertainment", "Shopping", "Healthcare", "Education", "Family support", "Insurance", "Personal interest", "Shipping cost", OtherExpense}},
	{GroupBusiness, []Name{"Office Supplies", "Software", "Marketing", "Travel", "Utilities (Business)", "Rent (Business)", "Salaries (Business)", "Consulting Fees", "Business Meals", "Transportation (Business)", "Other Business Expense"}},
	{GroupInvestment, []Name{"ETF", "Stock", "Global Stock", "Bond", "crypto"}},
	{GroupSavings, []Name{"Emergency Fund", "Long-Term saving"}},
	{GroupTaxIndividual, []Name{"Personal income Tax", "Withholding tax (individual)", "Value Added Tax (individual)", "Stamp Duty (individual)"}},
	{GroupTaxBusiness, []Name{"Business income Tax", "Business interest", "Withholding tax (business)", "Value Added Tax (business)", "Stamp Duty (business)"}},
	{GroupOtherSpecial, []Name{"Dating", "sex worker"}},
}

var incomeGroups = []Group{
	{GroupPersonal, []Name{"Family support", "Salary", "Freelance", "Interest", "Dividends", "Rental Income", OtherIncome}},
	{GroupBusiness, []Name{"Sales Revenue", "Service Revenue", "Investment Income (Business)", "Other Business Income"}},
	{GroupInvestment, []Name{"Investment Income (Personal)", "Dividends (Investment)", "Capital Gains"}},
	{GroupOtherSpecial, []Name{"Refunds", "Grants", "Inheritance", "Lottery Winnings"}},
}

// ExpenseGroups returns the expense-only group table offered when entering
// an expense by hand.
func ExpenseGroups() []Group { return cloneGroups(expenseGroups) }

// IncomeGroups returns the income-only group table.
func IncomeGroups() []Group { return cloneGroups(incomeGroups) }

// FindGroup looks a group up by label, ignoring surrounding whitespace.
func FindGroup(groups []Group, label string) (Group, bool) {
	label = strings.TrimSpace(label)
	for _, g := range groups {
		if strings.TrimSpace(g.Label) == label {
			return g, true
		}
	}
	return Group{}, false
}

// SubcategoriesOfGroups returns the union of the categories of every group
// whose label is listed. A custom category is added only when its name is
// already in that union, so custom names never widen a group.
func SubcategoriesOfGroups(labels []string, groups []Group, custom []Custom) map[Name]struct{} {
	wanted := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		wanted[strings.TrimSpace(l)] = struct{}{}
	}

	out := make(map[Name]struct{})
	for _, g := range groups {
		if _, ok := wanted[strings.TrimSpace(g.Label)]; !ok {
			continue
		}
		for _, c := range g.Categories {
			out[c] = struct{}{}
		}
	}
	for _, c := range custom {
		if _, ok := out[c.Name]; ok {
			out[c.Name] = struct{}{}
		}
	}
	return out
}

func cloneGroups(in []Group) []Group {
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = Group{Label: g.Label, Categories: append([]Name(nil), g.Categories...)}
	}
	return out
}
