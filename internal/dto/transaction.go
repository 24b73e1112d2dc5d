package dto

import (
	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/parser"
)

// TransactionQuery narrows a Firestore scan. Account and month filtering
// happen in memory because unassigned transactions match every account.
type TransactionQuery struct {
	Category *string
	OrderBy  string
	Desc     bool
	Limit    int
}

type QuickAddRequest struct {
	Text      string `json:"text"`
	AccountID string `json:"accountId,omitempty"`
	File      string `json:"file,omitempty"`
}

// CreateTransactionRequest is a manual entry. Type is "expense" or "income"
// and signs Amount, which is taken as a magnitude. Date is YYYY-MM-DD and
// Time is HH:MM; either defaults to the current moment.
type CreateTransactionRequest struct {
	Type        string          `json:"type"`
	Amount      float64         `json:"amount"`
	Category    categories.Name `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        *string         `json:"date,omitempty"`
	Time        *string         `json:"time,omitempty"`
	AccountID   string          `json:"accountId,omitempty"`
	File        string          `json:"file,omitempty"`
}

type ImportStatementRequest struct {
	Text      string `json:"text"`
	AccountID string `json:"accountId,omitempty"`
	File      string `json:"file,omitempty"`
}

type ImportStatementResponse struct {
	Imported     int                  `json:"imported"`
	Transactions []models.Transaction `json:"transactions"`
	Skipped      []parser.SkippedLine `json:"skipped,omitempty"`
}

// ListTransactionsQuery comes from query parameters. Category may be a group
// label or a category name.
type ListTransactionsQuery struct {
	AccountID string
	MonthYear string
	Category  string
}

// UpdateTransactionRequest carries the editable fields; nil keeps the stored
// value. Date is YYYY-MM-DD and Time is HH:MM.
type UpdateTransactionRequest struct {
	Amount      *float64         `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *categories.Name `json:"category,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Time        *string          `json:"time,omitempty"`
	AccountID   *string          `json:"accountId,omitempty"`
}
