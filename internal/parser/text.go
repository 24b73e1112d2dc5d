// Package parser turns free text and pasted statements into transactions.
// Nothing here performs I/O; callers persist and log the results.
package parser

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

// ErrNoAmount is returned when the text carries no non-zero numeral.
var ErrNoAmount = errs.NewValidationError("Could not find an amount in the text.")

var (
	amountRe       = regexp.MustCompile(`(\d+(\.\d+)?)`)
	incomeKeywords = []string{"income", "got", "received", "sell", "support"}
	stopWordRes    = buildStopWords(append([]string{"baht", "thb", "usd", "expen"}, incomeKeywords...))
	parensRe       = regexp.MustCompile(`[()]`)
)

func buildStopWords(words []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return out
}

// override settles the category from the cleaned description before any
// keyword lookup. The first rule whose match fires ends evaluation; a rule
// with an empty category means "no override, fall through to keywords".
type override struct {
	name     string
	match    func(desc string) bool
	category categories.Name
	exclude  bool
}

var overrides = []override{
	{name: "tapup", match: firstWordHasPrefixFold("tapup")},
	{name: "cash", match: hasSuffixFold("cash"), category: categories.Cash, exclude: true},
	{name: "turemoney", match: hasSuffixFold("turemoney"), category: categories.Turemoney, exclude: true},
}

func firstWordHasPrefixFold(prefix string) func(string) bool {
	return func(desc string) bool {
		first, _, _ := strings.Cut(desc, " ")
		return strings.HasPrefix(strings.ToLower(first), prefix)
	}
}

func hasSuffixFold(suffix string) func(string) bool {
	return func(desc string) bool {
		return strings.HasSuffix(strings.ToLower(desc), suffix)
	}
}

// TextParser parses one-line entries such as "Grocery 450 baht" or
// "Got salary 50000".
type TextParser struct {
	registry *categories.Registry
	now      func() time.Time
}

// NewTextParser uses now to stamp parsed transactions. The zone of the
// returned time is kept in the stored date.
func NewTextParser(registry *categories.Registry, now func() time.Time) *TextParser {
	if now == nil {
		now = time.Now
	}
	return &TextParser{registry: registry, now: now}
}

// Parse classifies text into a transaction candidate without an ID.
func (p *TextParser) Parse(text string, custom []categories.Custom) (models.Transaction, error) {
	lower := strings.ToLower(text)

	numeral := amountRe.FindString(lower)
	if numeral == "" {
		return models.Transaction{}, ErrNoAmount
	}
	amount, err := decimal.NewFromString(numeral)
	if err != nil || amount.IsZero() {
		return models.Transaction{}, ErrNoAmount
	}

	income := isIncome(lower)
	if !income {
		amount = amount.Neg()
	}

	description := cleanDescription(text, numeral)
	category, exclude := p.classify(lower, description, income, custom)
	if description == "" {
		description = string(category)
	}

	return models.Transaction{
		Amount:             amount.InexactFloat64(),
		Category:           category,
		Description:        description,
		Date:               models.FormatDate(p.now()),
		ExcludeFromSummary: exclude,
	}, nil
}

func (p *TextParser) classify(lower, description string, income bool, custom []categories.Custom) (categories.Name, bool) {
	for _, o := range overrides {
		if !o.match(description) {
			continue
		}
		if o.category != "" {
			return o.category, o.exclude
		}
		break
	}

	if name, ok := p.registry.Match(lower, custom); ok {
		return name, false
	}
	if income {
		return categories.OtherIncome, false
	}
	return categories.OtherExpense, false
}

func isIncome(lower string) bool {
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// cleanDescription drops the first occurrence of the numeral, stop words,
// currency signs and parentheses, then collapses whitespace and upper-cases
// the first letter.
func cleanDescription(text, numeral string) string {
	desc := strings.Replace(text, numeral, "", 1)
	for _, re := range stopWordRes {
		desc = re.ReplaceAllString(desc, "")
	}
	desc = strings.ReplaceAll(desc, "$", "")
	desc = parensRe.ReplaceAllString(desc, "")
	desc = strings.Join(strings.Fields(desc), " ")
	return capitalize(desc)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
