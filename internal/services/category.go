package services

import (
	"context"
	"strings"

	"github.com/GregMSThompson/expense-backend/internal/aggregate"
	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type categoryStore interface {
	Create(ctx context.Context, uid string, c *categories.Custom) error
	Get(ctx context.Context, uid, id string) (*categories.Custom, error)
	List(ctx context.Context, uid string) ([]categories.Custom, error)
	Update(ctx context.Context, uid string, c *categories.Custom) error
	Delete(ctx context.Context, uid, id string) error
}

type categoryService struct {
	store    categoryStore
	registry *categories.Registry
}

func NewCategoryService(store categoryStore, registry *categories.Registry) *categoryService {
	return &categoryService{store: store, registry: registry}
}

// ListCategories returns the user's custom categories, creating the
// other-account sentinel the first time it is missing.
func (s *categoryService) ListCategories(ctx context.Context, uid string) ([]categories.Custom, error) {
	log := logger.FromContext(ctx)

	custom, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if _, ok := categories.FindOtherAccount(custom); ok {
		return custom, nil
	}

	sentinel := &categories.Custom{
		Name:           categories.OtherAccountName,
		Keywords:       append([]string(nil), categories.OtherAccountKeywords...),
		IsOtherAccount: true,
	}
	if err := s.store.Create(ctx, uid, sentinel); err != nil {
		log.Error("failed to create other account category", "error", err)
		return nil, err
	}
	log.Info("other account category created", "category_id", sentinel.ID)
	return append(custom, *sentinel), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, uid string, req dto.CategoryRequest) (*categories.Custom, error) {
	log := logger.FromContext(ctx)

	name, keywords, err := validateCategory(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(existing, "", name, req.IsOtherAccount); err != nil {
		return nil, err
	}

	c := &categories.Custom{Name: name, Keywords: keywords, IsOtherAccount: req.IsOtherAccount}
	if err := s.store.Create(ctx, uid, c); err != nil {
		log.Error("failed to create category", "error", err)
		return nil, err
	}
	log.Info("category created", "category_id", c.ID, "name", c.Name, "keywords", len(c.Keywords))
	return c, nil
}

// UpdateCategory replaces name and keywords. The other-account flag is fixed
// at creation.
func (s *categoryService) UpdateCategory(ctx context.Context, uid, id string, req dto.CategoryRequest) (*categories.Custom, error) {
	log := logger.FromContext(ctx)

	c, err := s.store.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	name, keywords, err := validateCategory(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(existing, id, name, false); err != nil {
		return nil, err
	}

	c.Name = name
	c.Keywords = keywords
	if err := s.store.Update(ctx, uid, c); err != nil {
		log.Error("failed to update category", "category_id", id, "error", err)
		return nil, err
	}
	log.Info("category updated", "category_id", id, "name", name)
	return c, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, uid, id string) error {
	log := logger.FromContext(ctx)

	c, err := s.store.Get(ctx, uid, id)
	if err != nil {
		return err
	}
	if c.IsOtherAccount {
		return errs.NewValidationError("Cannot delete the Other Account category.")
	}
	if err := s.store.Delete(ctx, uid, id); err != nil {
		log.Error("failed to delete category", "category_id", id, "error", err)
		return err
	}
	log.Info("category deleted", "category_id", id, "name", c.Name)
	return nil
}

// CategoryOptions lists assignable category names and their groups. A kind
// of "expense" or "income" switches to that direction's manual-entry table;
// empty keeps the unified table.
func (s *categoryService) CategoryOptions(ctx context.Context, uid, kind string) (dto.CategoryOptionsResponse, error) {
	var groups []categories.Group
	switch aggregate.Direction(kind) {
	case "":
		groups = s.registry.Groups()
	case aggregate.Expense:
		groups = categories.ExpenseGroups()
	case aggregate.Income:
		groups = categories.IncomeGroups()
	default:
		return dto.CategoryOptionsResponse{}, errs.NewValidationError("type must be expense or income")
	}

	custom, err := s.store.List(ctx, uid)
	if err != nil {
		return dto.CategoryOptionsResponse{}, err
	}
	return dto.CategoryOptionsResponse{
		Options: categories.OptionsOf(groups, custom),
		Groups:  groups,
	}, nil
}

func validateCategory(req dto.CategoryRequest) (categories.Name, []string, error) {
	name := categories.Name(strings.TrimSpace(string(req.Name)))
	if name == "" {
		return "", nil, errs.NewValidationError("name is required")
	}
	if name.IsPassThrough() {
		return "", nil, errs.NewValidationError("name is reserved: " + string(name))
	}
	keywords := categories.NormalizeKeywords(req.Keywords)
	if len(keywords) == 0 {
		return "", nil, errs.NewValidationError("at least one keyword is required")
	}
	return name, keywords, nil
}

func checkConflicts(existing []categories.Custom, selfID string, name categories.Name, otherAccount bool) error {
	for _, c := range existing {
		if c.ID == selfID {
			continue
		}
		if strings.EqualFold(string(c.Name), string(name)) {
			return errs.NewAlreadyExistsError("category already exists: " + string(name))
		}
		if otherAccount && c.IsOtherAccount {
			return errs.NewAlreadyExistsError("an Other Account category already exists")
		}
	}
	return nil
}
