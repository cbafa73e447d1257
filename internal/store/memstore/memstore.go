// Package memstore is an in-memory implementation of the store interfaces.
// Units of work are serialized: Begin blocks until the previous Tx commits or
// rolls back, and each Tx works on a private copy of the state.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

// ErrTxDone is returned when a finished Tx is used.
var ErrTxDone = errors.New("memstore: transaction already committed or rolled back")

type state struct {
	people       *table[model.Person]
	categories   *table[model.Category]
	transactions *table[model.Transaction]
}

func (s *state) clone() *state {
	return &state{
		people:       s.people.clone(),
		categories:   s.categories.clone(),
		transactions: s.transactions.clone(),
	}
}

// Store holds committed state.
type Store struct {
	mu      sync.Mutex
	state   *state
	commits int
}

var _ store.UnitOfWork = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{state: &state{
		people:       newTable[model.Person](),
		categories:   newTable[model.Category](),
		transactions: newTable[model.Transaction](),
	}}
}

// Begin locks the store and opens a Tx over a copy of the committed state.
func (s *Store) Begin(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	s.mu.Lock()
	return &tx{store: s, state: s.state.clone()}, nil
}

// Commits returns how many units of work have been committed.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

type tx struct {
	store *Store
	state *state
	done  bool
}

func (t *tx) People() store.PersonRepository            { return people{t} }
func (t *tx) Categories() store.CategoryRepository      { return categories{t} }
func (t *tx) Transactions() store.TransactionRepository { return transactions{t} }

func (t *tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.store.state = t.state
	t.store.commits++
	t.store.mu.Unlock()
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *tx) check(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	return ctx.Err()
}
