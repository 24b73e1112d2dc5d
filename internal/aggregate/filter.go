// Package aggregate computes dashboard figures from a snapshot of
// transactions. Every function is pure and treats an empty snapshot as
// zero-valued output.
package aggregate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/models"
)

// MonthYear is a calendar month bucket such as "March 2024".
type MonthYear struct {
	Month time.Month
	Year  int
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Before orders month-years chronologically.
func (m MonthYear) Before(o MonthYear) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Previous returns the preceding calendar month.
func (m MonthYear) Previous() MonthYear {
	if m.Month == time.January {
		return MonthYear{Month: time.December, Year: m.Year - 1}
	}
	return MonthYear{Month: m.Month - 1, Year: m.Year}
}

func (m MonthYear) IsZero() bool { return m.Month == 0 && m.Year == 0 }

// ParseMonthYear reads "Month YYYY", case-insensitive.
func ParseMonthYear(s string) (MonthYear, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return MonthYear{}, fmt.Errorf("invalid month-year %q", s)
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return MonthYear{}, fmt.Errorf("invalid year in %q", s)
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), fields[0]) {
			return MonthYear{Month: m, Year: year}, nil
		}
	}
	return MonthYear{}, fmt.Errorf("invalid month in %q", s)
}

// dated is a transaction whose date parsed.
type dated struct {
	tx models.Transaction
	at time.Time
}

// parseDate keeps the offset written in the stored string so month and day
// extraction follow it.
func parseDate(tx models.Transaction) (time.Time, bool) {
	if tx.Date == "" {
		return time.Time{}, false
	}
	t, err := models.ParseDate(tx.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthYearOf buckets a transaction. Missing or malformed dates report false.
func MonthYearOf(tx models.Transaction) (MonthYear, bool) {
	t, ok := parseDate(tx)
	if !ok {
		return MonthYear{}, false
	}
	return MonthYear{Month: t.Month(), Year: t.Year()}, true
}

// MatchesAccount reports whether tx shows under accountID. Transactions
// without an account show everywhere; an empty accountID selects all.
func MatchesAccount(tx models.Transaction, accountID string) bool {
	return accountID == "" || tx.Account == "" || tx.Account == accountID
}

// Filter is the account and month selection of a dashboard view.
type Filter struct {
	AccountID string
	MonthYear MonthYear
}

// apply keeps the dated transactions in the selected account and month, in
// input order. A zero MonthYear keeps every dated transaction.
func (f Filter) apply(txs []models.Transaction) []dated {
	var out []dated
	for _, tx := range txs {
		if !MatchesAccount(tx, f.AccountID) {
			continue
		}
		t, ok := parseDate(tx)
		if !ok {
			continue
		}
		if !f.MonthYear.IsZero() && (t.Month() != f.MonthYear.Month || t.Year() != f.MonthYear.Year) {
			continue
		}
		out = append(out, dated{tx: tx, at: t})
	}
	return out
}

func (m MonthYear) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return []byte{}, nil
	}
	return []byte(m.String()), nil
}

func (m *MonthYear) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*m = MonthYear{}
		return nil
	}
	parsed, err := ParseMonthYear(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
