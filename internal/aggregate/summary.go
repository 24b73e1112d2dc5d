package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

// Snapshot is a consistent view of one user's data for a single pass.
type Snapshot struct {
	Transactions []models.Transaction
	Custom       []categories.Custom
}

// Options selects what Summarize reports.
type Options struct {
	Filter      Filter
	SCurveYears int
	Now         time.Time
}

type BreakdownView struct {
	Key           string          `json:"key"`
	Direction     Direction       `json:"direction"`
	Items         []CategoryTotal `json:"items"`
	Total         float64         `json:"total"`
	CarryOver     float64         `json:"carryOver"`
	PreviousMonth float64         `json:"previousMonth"`
}

// Summary is everything the dashboard renders for one account and month.
type Summary struct {
	MonthYear           MonthYear        `json:"monthYear"`
	AccountID           string           `json:"accountId,omitempty"`
	AvailableMonthYears []MonthYear      `json:"availableMonthYears"`
	Selected            MonthlyBalance   `json:"selected"`
	NetBalance          float64          `json:"netBalance"`
	MonthlyBalances     []MonthlyBalance `json:"monthlyBalances"`
	Breakdowns          []BreakdownView  `json:"breakdowns"`
	DailyVolume         []DayBucket      `json:"dailyVolume"`
	MonthlyTrend        []TrendPoint     `json:"monthlyTrend"`
	SCurve              []CurvePoint     `json:"sCurve"`
}

// Engine assembles Summary values over a registry's group table.
type Engine struct {
	registry *categories.Registry
	presets  []Preset
}

func NewEngine(registry *categories.Registry) *Engine {
	return &Engine{registry: registry, presets: Presets}
}

// Summarize computes the dashboard for snap. When no month is selected the
// latest month with activity is used, or Now's month for an empty snapshot.
func (e *Engine) Summarize(snap Snapshot, opts Options) Summary {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	available := AvailableMonthYears(snap.Transactions)
	selected := opts.Filter.MonthYear
	if selected.IsZero() {
		if len(available) > 0 {
			selected = available[len(available)-1]
		} else {
			selected = MonthYear{Month: now.Month(), Year: now.Year()}
		}
	}
	filter := Filter{AccountID: opts.Filter.AccountID, MonthYear: selected}

	balances := MonthlyBalances(snap.Transactions, snap.Custom)
	current := BalanceFor(balances, selected)

	// the running total up to the selected month, carried into a month with
	// no bucket of its own
	net := 0.0
	for _, b := range balances {
		if selected.Before(b.MonthYear) {
			break
		}
		net = b.CumulativeNet
	}

	views := make([]BreakdownView, 0, len(e.presets))
	for _, p := range e.presets {
		allowed := p.Allowed(e.registry, snap.Custom)
		items := Breakdown(snap.Transactions, filter, p.Direction, allowed, snap.Custom)
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(decimal.NewFromFloat(it.Total))
		}
		views = append(views, BreakdownView{
			Key:           p.Key,
			Direction:     p.Direction,
			Items:         items,
			Total:         total.InexactFloat64(),
			CarryOver:     CarryOver(snap.Transactions, filter.AccountID, selected, p.Direction, allowed, snap.Custom),
			PreviousMonth: PreviousMonthTotal(snap.Transactions, filter.AccountID, selected, p.Direction, allowed, snap.Custom),
		})
	}

	return Summary{
		MonthYear:           selected,
		AccountID:           filter.AccountID,
		AvailableMonthYears: available,
		Selected:            current,
		NetBalance:          net,
		MonthlyBalances:     balances,
		Breakdowns:          views,
		DailyVolume:         DailyVolume(snap.Transactions, filter, selected.Month, now.Year()),
		MonthlyTrend:        MonthlyTrend(snap.Transactions),
		SCurve:              SCurve(snap.Transactions, opts.SCurveYears, now),
	}
}
