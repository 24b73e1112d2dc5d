package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/expense-backend/internal/categories"
)

var fixedNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func newTextParser() *TextParser {
	return NewTextParser(categories.NewRegistry(), func() time.Time { return fixedNow })
}

func TestParseExpenseWithKeyword(t *testing.T) {
	got, err := newTextParser().Parse("Pad Thai 120 baht", nil)
	require.NoError(t, err)

	assert.Equal(t, -120.0, got.Amount)
	assert.Equal(t, categories.Name("Food"), got.Category)
	assert.Equal(t, "Pad Thai", got.Description)
	assert.False(t, got.ExcludeFromSummary)
	assert.Equal(t, "2024-03-10T09:30:00.000Z", got.Date)
	assert.Empty(t, got.ID)
}

func TestParseIncome(t *testing.T) {
	got, err := newTextParser().Parse("Got salary 50000", nil)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, got.Amount)
	assert.Equal(t, categories.Name("Job"), got.Category)
	assert.Equal(t, "Salary", got.Description)
}

func TestParseCashOverride(t *testing.T) {
	got, err := newTextParser().Parse("200 cash", nil)
	require.NoError(t, err)

	assert.Equal(t, -200.0, got.Amount)
	assert.Equal(t, categories.Cash, got.Category)
	assert.True(t, got.ExcludeFromSummary)
}

func TestParseTuremoneyOverride(t *testing.T) {
	got, err := newTextParser().Parse("top up 500 Turemoney", nil)
	require.NoError(t, err)

	assert.Equal(t, categories.Turemoney, got.Category)
	assert.True(t, got.ExcludeFromSummary)
}

func TestParseTapupSkipsOverride(t *testing.T) {
	got, err := newTextParser().Parse("Tapup 300 cash", nil)
	require.NoError(t, err)

	assert.NotEqual(t, categories.Cash, got.Category)
	assert.False(t, got.ExcludeFromSummary)
}

func TestParseNoAmount(t *testing.T) {
	for _, text := range []string{"coffee", "", "free lunch 0"} {
		_, err := newTextParser().Parse(text, nil)
		assert.ErrorIs(t, err, ErrNoAmount, text)
	}
}

func TestParseUsesFirstNumeral(t *testing.T) {
	got, err := newTextParser().Parse("coffee 45.50 then 99", nil)
	require.NoError(t, err)

	assert.Equal(t, -45.5, got.Amount)
	assert.Equal(t, "Coffee then 99", got.Description)
}

func TestParseFallbackCategory(t *testing.T) {
	p := newTextParser()

	expense, err := p.Parse("xyzzy 10", nil)
	require.NoError(t, err)
	assert.Equal(t, categories.OtherExpense, expense.Category)
	assert.Equal(t, "Xyzzy", expense.Description)

	income, err := p.Parse("received 10", nil)
	require.NoError(t, err)
	assert.Equal(t, categories.OtherIncome, income.Category)
	assert.Equal(t, string(categories.OtherIncome), income.Description)
}

func TestParseCustomCategoryWins(t *testing.T) {
	custom := []categories.Custom{{Name: "Side gig", Keywords: []string{"gig"}}}

	got, err := newTextParser().Parse("gig pad thai 90", custom)
	require.NoError(t, err)

	assert.Equal(t, categories.Name("Side gig"), got.Category)
}

func TestParseSignFollowsIncomeKeywords(t *testing.T) {
	p := newTextParser()
	cases := map[string]bool{
		"sell old bike 1500":     true,
		"family support 2000":    true,
		"bus 30":                 false,
		"interest income 12.5":   true,
		"electric bill 900 baht": false,
	}
	for text, income := range cases {
		got, err := p.Parse(text, nil)
		require.NoError(t, err, text)
		assert.Equal(t, income, got.Amount > 0, text)
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Lunch", cleanDescription("(lunch) 120 THB", "120"))
	assert.Equal(t, "Coffee", cleanDescription("coffee $4.50 usd", "4.50"))
	assert.Equal(t, "", cleanDescription("450 baht", "450"))
}
