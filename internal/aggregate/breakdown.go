package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

// Direction selects income (positive) or expense (negative) amounts.
type Direction string

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

func (d Direction) matches(tx models.Transaction) bool {
	if d == Income {
		return tx.IsIncome()
	}
	return tx.IsExpense()
}

// counts reports whether tx contributes to a breakdown in direction d.
// Rows flagged out of the summary, or whose category is excluded under the
// current custom set, never count.
func (d Direction) counts(tx models.Transaction, allowed map[categories.Name]struct{}, custom []categories.Custom) bool {
	if !d.matches(tx) {
		return false
	}
	if tx.ExcludeFromSummary || categories.IsExcluded(tx.Category, custom) {
		return false
	}
	_, ok := allowed[tx.Category]
	return ok
}

type CategoryTotal struct {
	Category categories.Name `json:"category"`
	Total    float64         `json:"total"`
}

// Breakdown sums absolute amounts per allowed category over the filtered
// transactions in direction d. Categories are listed in first-seen order.
func Breakdown(txs []models.Transaction, f Filter, d Direction, allowed map[categories.Name]struct{}, custom []categories.Custom) []CategoryTotal {
	var order []categories.Name
	totals := make(map[categories.Name]decimal.Decimal)
	for _, dt := range f.apply(txs) {
		tx := dt.tx
		if !d.counts(tx, allowed, custom) {
			continue
		}
		if _, ok := totals[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(decimal.NewFromFloat(tx.Amount).Abs())
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryTotal{Category: name, Total: totals[name].InexactFloat64()})
	}
	return out
}

// CarryOver is the year-to-date total before my: matching transactions in
// my's year with an earlier month. January is always zero.
func CarryOver(txs []models.Transaction, accountID string, my MonthYear, d Direction, allowed map[categories.Name]struct{}, custom []categories.Custom) float64 {
	sum := decimal.Zero
	for _, dt := range (Filter{AccountID: accountID}).apply(txs) {
		if dt.at.Year() != my.Year || dt.at.Month() >= my.Month {
			continue
		}
		if !d.counts(dt.tx, allowed, custom) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(dt.tx.Amount).Abs())
	}
	return sum.InexactFloat64()
}

// PreviousMonthTotal sums the matching transactions of the calendar month
// before my, wrapping to December of the prior year.
func PreviousMonthTotal(txs []models.Transaction, accountID string, my MonthYear, d Direction, allowed map[categories.Name]struct{}, custom []categories.Custom) float64 {
	sum := decimal.Zero
	for _, dt := range (Filter{AccountID: accountID, MonthYear: my.Previous()}).apply(txs) {
		if !d.counts(dt.tx, allowed, custom) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(dt.tx.Amount).Abs())
	}
	return sum.InexactFloat64()
}

// Preset names a breakdown shown on the dashboard. Allowed categories are
// the members of the groups named by Labels. Business presets also take in
// custom categories that read as business by name or keyword.
type Preset struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
	Labels    []string  `json:"labels"`
	Business  bool      `json:"business,omitempty"`
}

// Allowed resolves the preset's category set against reg's groups.
func (p Preset) Allowed(reg *categories.Registry, custom []categories.Custom) map[categories.Name]struct{} {
	out := reg.Subcategories(p.Labels, custom)
	if !p.Business {
		return out
	}
	for _, c := range custom {
		if c.IsOtherAccount {
			continue
		}
		if categories.IsBusiness(c.Name, custom) {
			out[c.Name] = struct{}{}
		}
	}
	return out
}

// Presets are the dashboard's fixed breakdowns. "Investment & Income" names
// no current group and resolves to nothing.
var Presets = []Preset{
	{Key: "expense", Direction: Expense, Labels: []string{categories.GroupPersonal, categories.GroupOtherSpecial}},
	{Key: "income", Direction: Income, Labels: []string{
		categories.GroupPersonal, categories.GroupOtherSpecial, categories.GroupTaxIndividual,
		categories.GroupInvestmentIncome, categories.GroupInvestment, categories.GroupSavings,
	}},
	{Key: "investment", Direction: Expense, Labels: []string{categories.GroupInvestmentIncome, categories.GroupInvestment}},
	{Key: "emergency", Direction: Expense, Labels: []string{categories.GroupSavings}},
	{Key: "personalTax", Direction: Expense, Labels: []string{categories.GroupTaxIndividual}},
	{Key: "businessTax", Direction: Expense, Labels: []string{categories.GroupTaxBusiness}},
	{Key: "businessIncome", Direction: Income, Labels: []string{categories.GroupBusiness, categories.GroupTaxBusiness}, Business: true},
	{Key: "businessExpense", Direction: Expense, Labels: []string{categories.GroupBusiness}, Business: true},
}
