// Package people manages the household members who own transactions.
package people

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cleared-dev/household/internal/events"
	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

// Service provides person use cases.
type Service struct {
	uow       store.UnitOfWork
	publisher events.Publisher
}

// NewService creates a person Service. publisher may be nil.
func NewService(uow store.UnitOfWork, publisher events.Publisher) *Service {
	return &Service{uow: uow, publisher: publisher}
}

// Create validates and stores a new person and returns the id.
func (s *Service) Create(ctx context.Context, name string, age int) (int, error) {
	p, err := model.NewPerson(name, age)
	if err != nil {
		slog.WarnContext(ctx, "person rejected", "error", err)
		return 0, err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	id, err := tx.People().Add(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("adding person: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "person created", "person_id", id)
	events.Emit(ctx, s.publisher, events.New(events.PersonCreated, id, map[string]any{"name": p.Name, "age": p.Age}))
	return id, nil
}

// List returns all people.
func (s *Service) List(ctx context.Context) ([]model.Person, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return tx.People().List(ctx)
}

// Get returns a person by id.
func (s *Service) Get(ctx context.Context, id int) (model.Person, bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return model.Person{}, false, err
	}
	defer tx.Rollback()

	p, err := tx.People().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Person{}, false, nil
	}
	if err != nil {
		return model.Person{}, false, err
	}
	return p, true, nil
}

// Update replaces name and age. It returns false when id is unknown.
func (s *Service) Update(ctx context.Context, id int, name string, age int) (bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	p, err := tx.People().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := p.Update(name, age); err != nil {
		slog.WarnContext(ctx, "person update rejected", "person_id", id, "error", err)
		return false, err
	}
	if err := tx.People().Update(ctx, p); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "person updated", "person_id", id)
	events.Emit(ctx, s.publisher, events.New(events.PersonUpdated, id, map[string]any{"name": p.Name, "age": p.Age}))
	return true, nil
}

// Delete removes a person and every transaction they own in one unit of work.
// It returns false when id is unknown.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.People().Get(ctx, id); errors.Is(err, store.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	removed, err := tx.Transactions().RemoveByPerson(ctx, id)
	if err != nil {
		return false, err
	}
	if err := tx.People().Remove(ctx, id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.InfoContext(ctx, "person deleted", "person_id", id, "transactions_removed", removed)
	events.Emit(ctx, s.publisher, events.New(events.PersonDeleted, id, map[string]any{"transactions_removed": removed}))
	return true, nil
}
