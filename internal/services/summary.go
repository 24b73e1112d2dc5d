package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/expense-backend/internal/aggregate"
	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

const maxSCurveYears = 50

type transactionLister interface {
	List(ctx context.Context, uid string) ([]models.Transaction, error)
}

type summaryService struct {
	txs          transactionLister
	categories   customCategoryLister
	engine       *aggregate.Engine
	defaultYears int
	now          func() time.Time
}

func NewSummaryService(txs transactionLister, cats customCategoryLister, registry *categories.Registry, defaultYears int, loc *time.Location) *summaryService {
	return &summaryService{
		txs:          txs,
		categories:   cats,
		engine:       aggregate.NewEngine(registry),
		defaultYears: defaultYears,
		now:          func() time.Time { return time.Now().In(loc) },
	}
}

// GetSummary loads a snapshot of the user's transactions and categories and
// aggregates it for the requested account and month.
func (s *summaryService) GetSummary(ctx context.Context, uid string, q dto.SummaryQuery) (aggregate.Summary, error) {
	log := logger.FromContext(ctx)

	var month aggregate.MonthYear
	if q.MonthYear != "" {
		my, err := aggregate.ParseMonthYear(q.MonthYear)
		if err != nil {
			return aggregate.Summary{}, errs.NewValidationError("month must look like \"March 2024\"")
		}
		month = my
	}
	years := q.SCurveYears
	if years == 0 {
		years = s.defaultYears
	}
	if years < 1 || years > maxSCurveYears {
		return aggregate.Summary{}, errs.NewValidationError("years must be between 1 and 50")
	}

	snap, err := s.loadSnapshot(ctx, uid)
	if err != nil {
		log.Error("failed to load summary snapshot", "error", err)
		return aggregate.Summary{}, err
	}

	summary := s.engine.Summarize(snap, aggregate.Options{
		Filter:      aggregate.Filter{AccountID: q.AccountID, MonthYear: month},
		SCurveYears: years,
		Now:         s.now(),
	})

	log.Info("summary computed",
		"transactions", len(snap.Transactions),
		"month", summary.MonthYear.String(),
		"account", q.AccountID)
	return summary, nil
}

func (s *summaryService) loadSnapshot(ctx context.Context, uid string) (aggregate.Snapshot, error) {
	var snap aggregate.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.txs.List(gctx, uid)
		snap.Transactions = txs
		return err
	})
	g.Go(func() error {
		custom, err := s.categories.List(gctx, uid)
		snap.Custom = custom
		return err
	})
	if err := g.Wait(); err != nil {
		return aggregate.Snapshot{}, err
	}
	return snap, nil
}
