package services

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

type fakeTransactionStore struct {
	txs       []models.Transaction
	created   []models.Transaction
	updated   *models.Transaction
	deletedID string
	lastQuery dto.TransactionQuery
	nextID    int

	createErr error
	batchErr  error
	getErr    error
	queryErr  error
	updateErr error
	deleteErr error
}

func (f *fakeTransactionStore) Create(_ context.Context, _ string, tx *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	tx.ID = fmt.Sprintf("tx-%d", f.nextID)
	f.created = append(f.created, *tx)
	return nil
}

func (f *fakeTransactionStore) CreateBatch(_ context.Context, _ string, txs []models.Transaction) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for i := range txs {
		f.nextID++
		txs[i].ID = fmt.Sprintf("tx-%d", f.nextID)
	}
	f.created = append(f.created, txs...)
	return nil
}

func (f *fakeTransactionStore) Get(_ context.Context, _, id string) (*models.Transaction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, tx := range f.txs {
		if tx.ID == id {
			out := tx
			return &out, nil
		}
	}
	return nil, errs.NewNotFoundError("transaction not found")
}

func (f *fakeTransactionStore) Query(_ context.Context, _ string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	f.lastQuery = q
	if f.queryErr != nil {
		return f.queryErr
	}
	for _, tx := range f.txs {
		if q.Category != nil && string(tx.Category) != *q.Category {
			continue
		}
		tx := tx
		if err := handle(&tx); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTransactionStore) List(_ context.Context, _ string) ([]models.Transaction, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.txs, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, _ string, tx *models.Transaction) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	out := *tx
	f.updated = &out
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, _, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeCategoryStore struct {
	custom    []categories.Custom
	created   []categories.Custom
	updated   *categories.Custom
	deletedID string

	listErr   error
	createErr error
	getErr    error
	updateErr error
	deleteErr error
}

func (f *fakeCategoryStore) Create(_ context.Context, _ string, c *categories.Custom) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = "cat-new"
	f.created = append(f.created, *c)
	return nil
}

func (f *fakeCategoryStore) Get(_ context.Context, _, id string) (*categories.Custom, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, c := range f.custom {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, errs.NewNotFoundError("category not found")
}

func (f *fakeCategoryStore) List(_ context.Context, _ string) ([]categories.Custom, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.custom, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, _ string, c *categories.Custom) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	out := *c
	f.updated = &out
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, _, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}
