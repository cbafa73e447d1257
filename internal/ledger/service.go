// Package ledger records transactions and lists them with their person and
// category details.
package ledger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/household/internal/events"
	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

// Rule violations reported by Create.
const (
	MsgMinorIncome  = "minor cannot record income"
	MsgIncompatible = "category incompatible with transaction type"
)

// Service provides transaction use cases.
type Service struct {
	uow       store.UnitOfWork
	publisher events.Publisher
	now       func() time.Time
}

// NewService creates a ledger Service. publisher may be nil.
func NewService(uow store.UnitOfWork, publisher events.Publisher) *Service {
	return &Service{uow: uow, publisher: publisher, now: time.Now}
}

// CreateParams holds the input for a new transaction. A nil Date means now.
type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	Type        model.TransactionType
	CategoryID  int
	PersonID    int
	Date        *time.Time
}

// View is a transaction enriched with its category and person.
type View struct {
	ID                  int
	Description         string
	Amount              decimal.Decimal
	Type                model.TransactionType
	Date                time.Time
	CategoryID          int
	CategoryDescription string
	CategoryPurpose     model.CategoryPurpose
	PersonID            int
	PersonName          string
}

// Create checks, in order: the person exists, the category exists, a minor is
// not recording income, the category accepts the type, and the field
// invariants. The first failure is returned and nothing is written.
func (s *Service) Create(ctx context.Context, params CreateParams) (int, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	txn, err := s.check(ctx, tx, params)
	if err != nil {
		slog.WarnContext(ctx, "transaction rejected",
			"person_id", params.PersonID,
			"category_id", params.CategoryID,
			"type", params.Type,
			"error", err)
		return 0, err
	}

	id, err := tx.Transactions().Add(ctx, txn)
	if err != nil {
		return 0, fmt.Errorf("adding transaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "transaction created",
		"transaction_id", id,
		"person_id", txn.PersonID,
		"category_id", txn.CategoryID,
		"type", txn.Type,
		"amount", txn.Amount.String())
	events.Emit(ctx, s.publisher, events.New(events.TransactionCreated, id, map[string]any{
		"person_id":   txn.PersonID,
		"category_id": txn.CategoryID,
		"type":        string(txn.Type),
		"amount":      txn.Amount.String(),
	}))
	return id, nil
}

func (s *Service) check(ctx context.Context, tx store.Tx, params CreateParams) (model.Transaction, error) {
	person, err := tx.People().Get(ctx, params.PersonID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Transaction{}, model.NotFoundError{Entity: "person", ID: params.PersonID}
	}
	if err != nil {
		return model.Transaction{}, err
	}

	category, err := tx.Categories().Get(ctx, params.CategoryID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Transaction{}, model.NotFoundError{Entity: "category", ID: params.CategoryID}
	}
	if err != nil {
		return model.Transaction{}, err
	}

	if person.IsMinor() && params.Type == model.TypeIncome {
		return model.Transaction{}, model.ValidationError{Field: "type", Description: MsgMinorIncome}
	}
	if !category.Purpose.Accepts(params.Type) {
		return model.Transaction{}, model.ValidationError{Field: "category_id", Description: MsgIncompatible}
	}

	date := s.now()
	if params.Date != nil && !params.Date.IsZero() {
		date = *params.Date
	}
	return model.NewTransaction(params.Description, params.Amount, params.Type, category.ID, person.ID, date)
}

// List returns every transaction, most recent id first.
func (s *Service) List(ctx context.Context) ([]View, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txns, err := tx.Transactions().List(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := newLookup(ctx, tx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(txns))
	for _, t := range txns {
		views = append(views, lookup.view(t))
	}
	slices.SortFunc(views, func(a, b View) int { return cmp.Compare(b.ID, a.ID) })
	return views, nil
}

// Get returns one enriched transaction.
func (s *Service) Get(ctx context.Context, id int) (View, bool, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return View{}, false, err
	}
	defer tx.Rollback()

	t, err := tx.Transactions().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return View{}, false, nil
	}
	if err != nil {
		return View{}, false, err
	}
	lookup, err := newLookup(ctx, tx)
	if err != nil {
		return View{}, false, err
	}
	return lookup.view(t), true, nil
}

type lookup struct {
	people     map[int]model.Person
	categories map[int]model.Category
}

func newLookup(ctx context.Context, tx store.Tx) (lookup, error) {
	people, err := tx.People().List(ctx)
	if err != nil {
		return lookup{}, err
	}
	cats, err := tx.Categories().List(ctx)
	if err != nil {
		return lookup{}, err
	}
	l := lookup{
		people:     make(map[int]model.Person, len(people)),
		categories: make(map[int]model.Category, len(cats)),
	}
	for _, p := range people {
		l.people[p.ID] = p
	}
	for _, c := range cats {
		l.categories[c.ID] = c
	}
	return l, nil
}

func (l lookup) view(t model.Transaction) View {
	c := l.categories[t.CategoryID]
	return View{
		ID:                  t.ID,
		Description:         t.Description,
		Amount:              t.Amount,
		Type:                t.Type,
		Date:                t.Date,
		CategoryID:          t.CategoryID,
		CategoryDescription: c.Description,
		CategoryPurpose:     c.Purpose,
		PersonID:            t.PersonID,
		PersonName:          l.people[t.PersonID].Name,
	}
}
