// Package store defines the repositories and unit of work the domain services
// depend on. Implementations live in the memstore and sqlite subpackages.
package store

import (
	"context"
	"errors"

	"github.com/cleared-dev/household/internal/model"
)

// ErrNotFound is returned by Get when no row has the requested id.
var ErrNotFound = errors.New("not found")

// UnitOfWork opens transactional scopes.
type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx groups repository mutations that are applied together on Commit.
// Reads through a Tx see its own pending writes. Rollback after Commit is a
// no-op so callers can always defer it.
type Tx interface {
	People() PersonRepository
	Categories() CategoryRepository
	Transactions() TransactionRepository
	Commit() error
	Rollback() error
}

// PersonRepository stores people.
type PersonRepository interface {
	Get(ctx context.Context, id int) (model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
	Add(ctx context.Context, p model.Person) (int, error)
	Update(ctx context.Context, p model.Person) error
	Remove(ctx context.Context, id int) error
}

// CategoryRepository stores categories.
type CategoryRepository interface {
	Get(ctx context.Context, id int) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Add(ctx context.Context, c model.Category) (int, error)
	Update(ctx context.Context, c model.Category) error
	Remove(ctx context.Context, id int) error
	// DescriptionExists compares trimmed, case-folded descriptions and ignores
	// the category with excludeID (0 excludes nothing).
	DescriptionExists(ctx context.Context, description string, excludeID int) (bool, error)
}

// TransactionRepository stores transactions.
type TransactionRepository interface {
	Get(ctx context.Context, id int) (model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
	ListByPerson(ctx context.Context, personID int) ([]model.Transaction, error)
	Add(ctx context.Context, t model.Transaction) (int, error)
	ExistsByCategory(ctx context.Context, categoryID int) (bool, error)
	// RemoveByPerson deletes every transaction owned by personID and returns
	// how many were removed.
	RemoveByPerson(ctx context.Context, personID int) (int, error)
}
