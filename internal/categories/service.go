package categories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cleared-dev/household/internal/events"
	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

// Service manages categories: unique descriptions and the in-use delete guard.
type Service struct {
	uow       store.UnitOfWork
	publisher events.Publisher
}

// NewService creates a category Service. publisher may be nil.
func NewService(uow store.UnitOfWork, publisher events.Publisher) *Service {
	return &Service{uow: uow, publisher: publisher}
}

// Create validates and stores a new category and returns its id.
func (s *Service) Create(ctx context.Context, description string, purpose model.CategoryPurpose) (int, error) {
	c, err := model.NewCategory(description, purpose)
	if err != nil {
		slog.WarnContext(ctx, "category rejected", "description", description, "error", err)
		return 0, err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := ensureUnique(ctx, tx, c.Description, 0); err != nil {
		slog.WarnContext(ctx, "category rejected", "description", c.Description, "error", err)
		return 0, err
	}

	id, err := tx.Categories().Add(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("adding category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "category created", "category_id", id, "purpose", c.Purpose)
	events.Emit(ctx, s.publisher, events.New(events.CategoryCreated, id, map[string]any{
		"description": c.Description,
		"purpose":     string(c.Purpose),
	}))
	return id, nil
}

// List returns all categories.
func (s *Service) List(ctx context.Context) ([]model.Category, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return tx.Categories().List(ctx)
}

// ListFor returns the categories a transaction of type t may use.
func (s *Service) ListFor(ctx context.Context, t model.TransactionType) ([]model.Category, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Category
	for _, c := range all {
		if c.Purpose.Accepts(t) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Get returns a category by id.
func (s *Service) Get(ctx context.Context, id int) (model.Category, bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return model.Category{}, false, err
	}
	defer tx.Rollback()

	c, err := tx.Categories().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Category{}, false, nil
	}
	if err != nil {
		return model.Category{}, false, err
	}
	return c, true, nil
}

// Update replaces description and purpose. It returns false when id is unknown.
func (s *Service) Update(ctx context.Context, id int, description string, purpose model.CategoryPurpose) (bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	c, err := tx.Categories().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := c.Update(description, purpose); err != nil {
		slog.WarnContext(ctx, "category update rejected", "category_id", id, "error", err)
		return false, err
	}
	if err := ensureUnique(ctx, tx, c.Description, id); err != nil {
		slog.WarnContext(ctx, "category update rejected", "category_id", id, "error", err)
		return false, err
	}

	if err := tx.Categories().Update(ctx, c); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "category updated", "category_id", id)
	events.Emit(ctx, s.publisher, events.New(events.CategoryUpdated, id, map[string]any{
		"description": c.Description,
		"purpose":     string(c.Purpose),
	}))
	return true, nil
}

// Delete removes a category. It returns false when id is unknown and a
// ConflictError while any transaction references the category.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Categories().Get(ctx, id); errors.Is(err, store.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	inUse, err := tx.Transactions().ExistsByCategory(ctx, id)
	if err != nil {
		return false, err
	}
	if inUse {
		err := model.ConflictError{Entity: "category", Description: "category in use"}
		slog.WarnContext(ctx, "category delete rejected", "category_id", id, "error", err)
		return false, err
	}

	if err := tx.Categories().Remove(ctx, id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "category deleted", "category_id", id)
	events.Emit(ctx, s.publisher, events.New(events.CategoryDeleted, id, nil))
	return true, nil
}

// Seed adds each category whose description is not taken yet and returns how
// many were added. All additions commit together.
func (s *Service) Seed(ctx context.Context, catalog []model.Category) (int, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var added []int
	for _, entry := range catalog {
		c, err := model.NewCategory(entry.Description, entry.Purpose)
		if err != nil {
			return 0, fmt.Errorf("seeding %q: %w", entry.Description, err)
		}
		taken, err := tx.Categories().DescriptionExists(ctx, c.Description, 0)
		if err != nil {
			return 0, err
		}
		if taken {
			continue
		}
		id, err := tx.Categories().Add(ctx, c)
		if err != nil {
			return 0, fmt.Errorf("seeding %q: %w", c.Description, err)
		}
		added = append(added, id)
	}

	if len(added) == 0 {
		return 0, nil
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	for _, id := range added {
		events.Emit(ctx, s.publisher, events.New(events.CategoryCreated, id, nil))
	}
	slog.InfoContext(ctx, "categories seeded", "count", len(added))
	return len(added), nil
}

func ensureUnique(ctx context.Context, tx store.Tx, description string, excludeID int) error {
	taken, err := tx.Categories().DescriptionExists(ctx, description, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return model.ConflictError{
			Entity:      "category",
			Description: fmt.Sprintf("description %q already exists", description),
		}
	}
	return nil
}
