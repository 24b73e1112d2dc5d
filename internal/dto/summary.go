package dto

type SummaryQuery struct {
	AccountID   string
	MonthYear   string
	SCurveYears int
}
