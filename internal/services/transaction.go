package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/aggregate"
	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/parser"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

const (
	editDateLayout = "2006-01-02"
	editTimeLayout = "15:04"
)

// ErrNoStatementTransactions is returned when an import yields nothing.
var ErrNoStatementTransactions = errs.NewValidationError("Could not find any transactions in the PDF.")

type transactionStore interface {
	Create(ctx context.Context, uid string, tx *models.Transaction) error
	CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error
	Get(ctx context.Context, uid, id string) (*models.Transaction, error)
	Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error
	Update(ctx context.Context, uid string, tx *models.Transaction) error
	Delete(ctx context.Context, uid, id string) error
}

type customCategoryLister interface {
	List(ctx context.Context, uid string) ([]categories.Custom, error)
}

type transactionService struct {
	txs        transactionStore
	categories customCategoryLister
	registry   *categories.Registry
	text       *parser.TextParser
	statement  *parser.StatementParser
	loc        *time.Location
	now        func() time.Time
}

// NewTransactionService stamps quick-add entries with the current time in
// loc and resolves statement dates in loc.
func NewTransactionService(txs transactionStore, cats customCategoryLister, registry *categories.Registry, loc *time.Location) *transactionService {
	return newTransactionService(txs, cats, registry, loc, func() time.Time { return time.Now().In(loc) })
}

func newTransactionService(txs transactionStore, cats customCategoryLister, registry *categories.Registry, loc *time.Location, now func() time.Time) *transactionService {
	text := parser.NewTextParser(registry, now)
	return &transactionService{
		txs:        txs,
		categories: cats,
		registry:   registry,
		text:       text,
		statement:  parser.NewStatementParser(text, loc),
		loc:        loc,
		now:        now,
	}
}

func (s *transactionService) QuickAdd(ctx context.Context, uid string, req dto.QuickAddRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	custom, err := s.categories.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	tx, err := s.text.Parse(req.Text, custom)
	if err != nil {
		log.Info("quick add rejected", "reason", err.Error())
		return nil, err
	}
	tx.Account = req.AccountID
	tx.File = req.File

	if err := s.txs.Create(ctx, uid, &tx); err != nil {
		log.Error("failed to store transaction", "error", err)
		return nil, err
	}

	log.Info("transaction added", "transaction_id", tx.ID, "category", tx.Category, "exclude_from_summary", tx.ExcludeFromSummary)
	return &tx, nil
}

// CreateTransaction stores a hand-entered transaction. The category must be
// assignable and the amount is signed by the entry's direction.
func (s *transactionService) CreateTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	direction := aggregate.Direction(req.Type)
	if direction != aggregate.Expense && direction != aggregate.Income {
		return nil, errs.NewValidationError("type must be expense or income")
	}
	if req.Amount == 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, errs.NewValidationError("amount must be a non-zero number")
	}
	if req.Category == "" {
		return nil, errs.NewValidationError("category is required")
	}

	custom, err := s.categories.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !s.registry.Known(req.Category, custom) {
		return nil, errs.NewValidationError("unknown category: " + string(req.Category))
	}
	date, err := s.composeDate(models.FormatDate(s.now()), req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	amount := math.Abs(req.Amount)
	if direction == aggregate.Expense {
		amount = -amount
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = string(req.Category)
	}
	tx := models.Transaction{
		Amount:             amount,
		Category:           req.Category,
		Description:        description,
		Date:               date,
		Account:            req.AccountID,
		ExcludeFromSummary: categories.IsExcluded(req.Category, custom),
		File:               req.File,
	}

	if err := s.txs.Create(ctx, uid, &tx); err != nil {
		log.Error("failed to store transaction", "error", err)
		return nil, err
	}

	log.Info("transaction added", "transaction_id", tx.ID, "category", tx.Category, "income", tx.IsIncome(), "exclude_from_summary", tx.ExcludeFromSummary)
	return &tx, nil
}

func (s *transactionService) ImportStatement(ctx context.Context, uid string, req dto.ImportStatementRequest) (dto.ImportStatementResponse, error) {
	log := logger.FromContext(ctx)

	custom, err := s.categories.List(ctx, uid)
	if err != nil {
		return dto.ImportStatementResponse{}, err
	}

	res := s.statement.Parse(req.Text, req.AccountID, custom)
	if logger.IsDebugEnabled(ctx) {
		for _, sk := range res.Skipped {
			log.Debug("statement line skipped", "line", sk.Line, "reason", sk.Reason, "text", sk.Text)
		}
	}
	if len(res.Transactions) == 0 {
		log.Info("statement import found no transactions", "skipped", len(res.Skipped))
		return dto.ImportStatementResponse{}, ErrNoStatementTransactions
	}

	for i := range res.Transactions {
		res.Transactions[i].File = req.File
	}
	if err := s.txs.CreateBatch(ctx, uid, res.Transactions); err != nil {
		log.Error("failed to store statement transactions", "error", err, "count", len(res.Transactions))
		return dto.ImportStatementResponse{}, err
	}

	log.Info("statement imported", "imported", len(res.Transactions), "skipped", len(res.Skipped))
	return dto.ImportStatementResponse{
		Imported:     len(res.Transactions),
		Transactions: res.Transactions,
		Skipped:      res.Skipped,
	}, nil
}

// ListTransactions returns the account's transactions newest first,
// optionally narrowed to a month and to a category or group label.
func (s *transactionService) ListTransactions(ctx context.Context, uid string, q dto.ListTransactionsQuery) ([]models.Transaction, error) {
	var month aggregate.MonthYear
	if q.MonthYear != "" {
		my, err := aggregate.ParseMonthYear(q.MonthYear)
		if err != nil {
			return nil, errs.NewValidationError("month must look like \"March 2024\"")
		}
		month = my
	}

	var (
		query dto.TransactionQuery
		group map[categories.Name]struct{}
	)
	if q.Category != "" {
		if g, ok := categories.FindGroup(s.registry.Groups(), q.Category); ok {
			group = make(map[categories.Name]struct{}, len(g.Categories))
			for _, c := range g.Categories {
				group[c] = struct{}{}
			}
		} else {
			query.Category = &q.Category
		}
	}

	out := []models.Transaction{}
	err := s.txs.Query(ctx, uid, query, func(tx *models.Transaction) error {
		if !aggregate.MatchesAccount(*tx, q.AccountID) {
			return nil
		}
		if !month.IsZero() {
			if my, ok := aggregate.MonthYearOf(*tx); !ok || my != month {
				return nil
			}
		}
		if group != nil {
			if _, ok := group[tx.Category]; !ok {
				return nil
			}
		}
		out = append(out, *tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByDateDesc(out)
	return out, nil
}

// sortByDateDesc orders newest first; undated transactions go last.
func sortByDateDesc(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, aErr := models.ParseDate(txs[i].Date)
		b, bErr := models.ParseDate(txs[j].Date)
		switch {
		case aErr != nil:
			return false
		case bErr != nil:
			return true
		default:
			return a.After(b)
		}
	})
}

// UpdateTransaction builds a replacement for the stored transaction. The
// amount keeps its stored sign and excludeFromSummary follows the category.
func (s *transactionService) UpdateTransaction(ctx context.Context, uid, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	existing, err := s.txs.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	custom, err := s.categories.List(ctx, uid)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Amount != nil {
		if *req.Amount == 0 || math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
			return nil, errs.NewValidationError("amount must be a non-zero number")
		}
		updated.Amount = math.Abs(*req.Amount)
		if existing.Amount < 0 {
			updated.Amount = -updated.Amount
		}
	}
	if req.Category != nil {
		if !s.registry.Known(*req.Category, custom) {
			return nil, errs.NewValidationError("unknown category: " + string(*req.Category))
		}
		updated.Category = *req.Category
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if updated.Description == "" {
		updated.Description = string(updated.Category)
	}
	if req.AccountID != nil {
		updated.Account = *req.AccountID
	}
	if req.Date != nil || req.Time != nil {
		date, err := s.composeDate(existing.Date, req.Date, req.Time)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	updated.ExcludeFromSummary = categories.IsExcluded(updated.Category, custom)

	if err := s.txs.Update(ctx, uid, &updated); err != nil {
		log.Error("failed to update transaction", "transaction_id", id, "error", err)
		return nil, err
	}

	log.Info("transaction updated", "transaction_id", id, "category", updated.Category)
	return &updated, nil
}

// composeDate merges an edited date and time of day over the stored
// timestamp, in the service's location.
func (s *transactionService) composeDate(stored string, date, clock *string) (string, error) {
	base, err := models.ParseDate(stored)
	if err != nil {
		base = s.now()
	}
	base = base.In(s.loc)
	year, month, day := base.Date()
	hour, minute := base.Hour(), base.Minute()

	if date != nil {
		d, err := time.ParseInLocation(editDateLayout, *date, s.loc)
		if err != nil {
			return "", errs.NewValidationError("date must be YYYY-MM-DD")
		}
		year, month, day = d.Date()
	}
	if clock != nil {
		c, err := time.Parse(editTimeLayout, *clock)
		if err != nil {
			return "", errs.NewValidationError("time must be HH:MM")
		}
		hour, minute = c.Hour(), c.Minute()
	}
	return models.FormatDate(time.Date(year, month, day, hour, minute, 0, 0, s.loc)), nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, uid, id string) error {
	log := logger.FromContext(ctx)

	if _, err := s.txs.Get(ctx, uid, id); err != nil {
		return err
	}
	if err := s.txs.Delete(ctx, uid, id); err != nil {
		log.Error("failed to delete transaction", "transaction_id", id, "error", err)
		return err
	}
	log.Info("transaction deleted", "transaction_id", id)
	return nil
}
