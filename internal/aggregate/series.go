package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-backend/internal/models"
)

type DayBucket struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

// DaysIn returns the number of days in month of year.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DailyVolume builds one bucket per day of month in year, summing absolute
// amounts of the filtered transactions by day of month. Days without
// activity are present with zero.
func DailyVolume(txs []models.Transaction, f Filter, month time.Month, year int) []DayBucket {
	if month < time.January || month > time.December {
		return []DayBucket{}
	}
	days := DaysIn(month, year)
	sums := make([]decimal.Decimal, days+1)
	for _, dt := range f.apply(txs) {
		day := dt.at.Day()
		if day > days {
			continue
		}
		sums[day] = sums[day].Add(decimal.NewFromFloat(dt.tx.Amount).Abs())
	}

	out := make([]DayBucket, days)
	for i := range out {
		out[i] = DayBucket{Day: i + 1, Value: sums[i+1].InexactFloat64()}
	}
	return out
}

type TrendPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthlyTrend folds every transaction of every year onto twelve month
// buckets, January first. Expense is reported as a positive magnitude.
func MonthlyTrend(txs []models.Transaction) []TrendPoint {
	var income, expense [12]decimal.Decimal
	for _, tx := range txs {
		t, ok := parseDate(tx)
		if !ok {
			continue
		}
		i := int(t.Month()) - 1
		amount := decimal.NewFromFloat(tx.Amount)
		switch {
		case tx.Amount > 0:
			income[i] = income[i].Add(amount)
		case tx.Amount < 0:
			expense[i] = expense[i].Add(amount.Abs())
		}
	}

	out := make([]TrendPoint, 12)
	for i := range out {
		out[i] = TrendPoint{
			Month:   time.Month(i + 1).String(),
			Income:  income[i].InexactFloat64(),
			Expense: expense[i].InexactFloat64(),
		}
	}
	return out
}

type CurvePoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// SCurve sums signed amounts per "YYYY-MM" over the trailing years ending
// with now's year and returns the running total in key order. years below
// one is treated as one.
func SCurve(txs []models.Transaction, years int, now time.Time) []CurvePoint {
	if years < 1 {
		years = 1
	}
	endYear := now.Year()
	startYear := endYear - (years - 1)

	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		t, ok := parseDate(tx)
		if !ok || t.Year() < startYear || t.Year() > endYear {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
		totals[key] = totals[key].Add(decimal.NewFromFloat(tx.Amount))
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]CurvePoint, 0, len(keys))
	cumulative := decimal.Zero
	for _, k := range keys {
		cumulative = cumulative.Add(totals[k])
		out = append(out, CurvePoint{Month: k, Value: cumulative.InexactFloat64()})
	}
	return out
}
