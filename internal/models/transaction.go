package models

import (
	"time"

	"github.com/GregMSThompson/expense-backend/internal/categories"
)

// DateLayout is the ISO-8601 layout transaction dates are stored in. The
// offset is kept so month and day bucketing follow the zone the date was
// recorded in.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Transaction is a single signed money movement: positive is income,
// negative is expense. Transactions with an empty Account belong to every
// account view.
type Transaction struct {
	ID                 string          `firestore:"id" json:"id"`
	Amount             float64         `firestore:"amount" json:"amount"`
	Category           categories.Name `firestore:"category" json:"category"`
	Description        string          `firestore:"description" json:"description"`
	Date               string          `firestore:"date" json:"date"`
	Account            string          `firestore:"account,omitempty" json:"account,omitempty"`
	ExcludeFromSummary bool            `firestore:"excludeFromSummary" json:"excludeFromSummary"`
	File               string          `firestore:"file,omitempty" json:"file,omitempty"`
	CreatedAt          time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `firestore:"updatedAt" json:"updatedAt"`
}

func (t Transaction) IsIncome() bool  { return t.Amount > 0 }
func (t Transaction) IsExpense() bool { return t.Amount < 0 }

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts DateLayout, any RFC 3339 timestamp, or a bare
// YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
