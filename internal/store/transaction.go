package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("transactions")
}

func (s *transactionStore) Create(ctx context.Context, uid string, tx *models.Transaction) error {
	now := time.Now()
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	tx.CreatedAt = now
	tx.UpdatedAt = now
	if _, err := s.txCollection(uid).Doc(tx.ID).Set(ctx, tx); err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// CreateBatch writes txs with a BulkWriter, assigning IDs in place.
func (s *transactionStore) CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(txs))
	now := time.Now()

	for i := range txs {
		t := &txs[i]
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		t.CreatedAt = now
		t.UpdatedAt = now

		job, err := bw.Create(s.txCollection(uid).Doc(t.ID), t)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to schedule transaction write", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			log.Error("failed to write transaction", "transaction_id", txs[i].ID, "error", err)
			return errs.NewDatabaseError("create", "failed to write transactions", err)
		}
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, id string) (*models.Transaction, error) {
	doc, err := s.txCollection(uid).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	var tx models.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	tx.ID = doc.Ref.ID
	return &tx, nil
}

// Query streams matching transactions to handle, stopping at the first
// error handle returns.
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	query := s.txCollection(uid).Query
	if q.Category != nil {
		query = query.Where("category", "==", *q.Category)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errs.NewDatabaseError("read", "failed to query transactions", err)
		}
		var tx models.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		tx.ID = doc.Ref.ID
		if err := handle(&tx); err != nil {
			return err
		}
	}
}

// List loads every transaction of the user.
func (s *transactionStore) List(ctx context.Context, uid string) ([]models.Transaction, error) {
	var out []models.Transaction
	err := s.Query(ctx, uid, dto.TransactionQuery{}, func(tx *models.Transaction) error {
		out = append(out, *tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *transactionStore) Update(ctx context.Context, uid string, tx *models.Transaction) error {
	tx.UpdatedAt = time.Now()
	if _, err := s.txCollection(uid).Doc(tx.ID).Set(ctx, tx); err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, uid, id string) error {
	if _, err := s.txCollection(uid).Doc(id).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}
