package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/errs"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("categories")
}

func (s *categoryStore) Create(ctx context.Context, uid string, c *categories.Custom) error {
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.collection(uid).Doc(c.ID).Create(ctx, c); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("category already exists")
		}
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) Get(ctx context.Context, uid, id string) (*categories.Custom, error) {
	doc, err := s.collection(uid).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get category", err)
	}
	var c categories.Custom
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// List returns the user's categories oldest first, so keyword ties resolve
// in creation order.
func (s *categoryStore) List(ctx context.Context, uid string) ([]categories.Custom, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	out := make([]categories.Custom, 0, len(docs))
	for _, d := range docs {
		var c categories.Custom
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		c.ID = d.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (s *categoryStore) Update(ctx context.Context, uid string, c *categories.Custom) error {
	c.UpdatedAt = time.Now()
	if _, err := s.collection(uid).Doc(c.ID).Set(ctx, c); err != nil {
		return errs.NewDatabaseError("update", "failed to update category", err)
	}
	return nil
}

func (s *categoryStore) Delete(ctx context.Context, uid, id string) error {
	if _, err := s.collection(uid).Doc(id).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}
