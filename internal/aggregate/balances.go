package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

// MonthlyBalance is one month of non-excluded activity plus the running net
// across all earlier months.
type MonthlyBalance struct {
	MonthYear     MonthYear `json:"monthYear"`
	Income        float64   `json:"income"`
	Expenses      float64   `json:"expenses"`
	Net           float64   `json:"net"`
	CumulativeNet float64   `json:"cumulativeNet"`
}

// AvailableMonthYears lists every month holding a dated transaction, oldest
// first.
func AvailableMonthYears(txs []models.Transaction) []MonthYear {
	seen := make(map[MonthYear]struct{})
	for _, tx := range txs {
		if my, ok := MonthYearOf(tx); ok {
			seen[my] = struct{}{}
		}
	}
	out := make([]MonthYear, 0, len(seen))
	for my := range seen {
		out = append(out, my)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

type balanceSums struct {
	income, expenses, net decimal.Decimal
}

// MonthlyBalances buckets every dated transaction by month. Excluded
// categories still open a bucket but add nothing to it, so the cumulative
// walk covers every month with activity.
func MonthlyBalances(txs []models.Transaction, custom []categories.Custom) []MonthlyBalance {
	sums := make(map[MonthYear]*balanceSums)
	for _, tx := range txs {
		my, ok := MonthYearOf(tx)
		if !ok {
			continue
		}
		s, ok := sums[my]
		if !ok {
			s = &balanceSums{}
			sums[my] = s
		}
		if categories.IsExcluded(tx.Category, custom) {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount)
		switch {
		case tx.Amount > 0:
			s.income = s.income.Add(amount)
		case tx.Amount < 0:
			s.expenses = s.expenses.Add(amount.Abs())
		}
		s.net = s.net.Add(amount)
	}

	months := make([]MonthYear, 0, len(sums))
	for my := range sums {
		months = append(months, my)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	out := make([]MonthlyBalance, 0, len(months))
	cumulative := decimal.Zero
	for _, my := range months {
		s := sums[my]
		cumulative = cumulative.Add(s.net)
		out = append(out, MonthlyBalance{
			MonthYear:     my,
			Income:        s.income.InexactFloat64(),
			Expenses:      s.expenses.InexactFloat64(),
			Net:           s.net.InexactFloat64(),
			CumulativeNet: cumulative.InexactFloat64(),
		})
	}
	return out
}

// BalanceFor returns the entry for my, or a zero entry when the month has no
// activity.
func BalanceFor(balances []MonthlyBalance, my MonthYear) MonthlyBalance {
	for _, b := range balances {
		if b.MonthYear == my {
			return b
		}
	}
	return MonthlyBalance{MonthYear: my}
}
