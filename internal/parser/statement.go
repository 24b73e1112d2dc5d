package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

var (
	monthYearRe = regexp.MustCompile(`(?i)^(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})$`)
	dateLineRe  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})$`)
	txLineRe    = regexp.MustCompile(`(?i)^\*?\s*([^\d\n]+)?\s*([$฿]?[\d,]+(?:\.\d{1,2})?)\s*(baht)?(.*)$`)
	incomeHint  = regexp.MustCompile(`(?i)income|from`)
	amountStrip = strings.NewReplacer("$", "", ",", "", "฿", "")
)

// SkipReason explains why a statement line produced no transaction.
type SkipReason string

const (
	SkipNoMatch       SkipReason = "no_match"
	SkipNoDate        SkipReason = "no_date"
	SkipInvalidAmount SkipReason = "invalid_amount"
	SkipInvalidDate   SkipReason = "invalid_date"
	SkipParseError    SkipReason = "parse_error"
)

type SkippedLine struct {
	Line   int        `json:"line"`
	Text   string     `json:"text"`
	Reason SkipReason `json:"reason"`
}

// StatementResult holds the transactions in source order and the lines that
// were dropped.
type StatementResult struct {
	Transactions []models.Transaction
	Skipped      []SkippedLine
}

// StatementParser walks statement text line by line, tracking the most
// recent month header and date line.
type StatementParser struct {
	text *TextParser
	loc  *time.Location
}

// NewStatementParser delegates per-line classification to text. Dates are
// midnight in loc.
func NewStatementParser(text *TextParser, loc *time.Location) *StatementParser {
	if loc == nil {
		loc = time.UTC
	}
	return &StatementParser{text: text, loc: loc}
}

type header struct {
	month time.Month
	year  int
}

// Parse never fails; unusable lines are reported in Skipped.
func (p *StatementParser) Parse(text, accountID string, custom []categories.Custom) StatementResult {
	var (
		res         StatementResult
		current     *header
		currentDate string
	)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1

		if m := monthYearRe.FindStringSubmatch(line); m != nil {
			month, _ := monthFromName(m[1])
			year, _ := strconv.Atoi(m[2])
			current = &header{month: month, year: year}
			continue
		}

		if m := dateLineRe.FindStringSubmatch(line); m != nil {
			date, ok := p.resolveDate(m[1], m[2], m[3], current)
			if !ok {
				res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipInvalidDate})
				continue
			}
			currentDate = models.FormatDate(date)
			continue
		}

		m := txLineRe.FindStringSubmatch(line)
		if m == nil {
			res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipNoMatch})
			continue
		}
		if currentDate == "" {
			res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipNoDate})
			continue
		}

		desc, amt, baht, trailing := strings.TrimSpace(m[1]), m[2], m[3], m[4]
		amount, err := decimal.NewFromString(amountStrip.Replace(amt))
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipInvalidAmount})
			continue
		}
		if baht != "" || !strings.Contains(line, "$") {
			amount = amount.Abs().Neg()
		}
		if incomeHint.MatchString(desc + " " + trailing) {
			amount = amount.Abs()
		}

		parsed, err := p.text.Parse(desc+" "+amount.Abs().String(), custom)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: SkipParseError})
			continue
		}
		parsed.Amount = amount.InexactFloat64()
		parsed.Date = currentDate
		parsed.Account = accountID
		res.Transactions = append(res.Transactions, parsed)
	}

	return res
}

// resolveDate builds midnight of the date line. A month header overrides the
// line's own month and year.
func (p *StatementParser) resolveDate(monthStr, dayStr, yearStr string, h *header) (time.Time, bool) {
	if len(yearStr) == 2 {
		yearStr = "20" + yearStr
	}
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(yearStr)
	if h != nil {
		month, year = int(h.month), h.year
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc), true
}

func monthFromName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}
