// Package storetest checks that a store.UnitOfWork implementation honors the
// repository contract the domain services rely on.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

// Factory returns a fresh, empty store.
type Factory func(t *testing.T) store.UnitOfWork

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("AddGetList", func(t *testing.T) { testAddGetList(t, newStore(t)) })
	t.Run("RollbackDiscards", func(t *testing.T) { testRollbackDiscards(t, newStore(t)) })
	t.Run("ReadYourWrites", func(t *testing.T) { testReadYourWrites(t, newStore(t)) })
	t.Run("IDsNotReused", func(t *testing.T) { testIDsNotReused(t, newStore(t)) })
	t.Run("UpdateRemove", func(t *testing.T) { testUpdateRemove(t, newStore(t)) })
	t.Run("DescriptionExists", func(t *testing.T) { testDescriptionExists(t, newStore(t)) })
	t.Run("TransactionQueries", func(t *testing.T) { testTransactionQueries(t, newStore(t)) })
	t.Run("RollbackAfterCommit", func(t *testing.T) { testRollbackAfterCommit(t, newStore(t)) })
}

func begin(t *testing.T, uow store.UnitOfWork) store.Tx {
	t.Helper()
	tx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func person(t *testing.T, name string, age int) model.Person {
	t.Helper()
	p, err := model.NewPerson(name, age)
	require.NoError(t, err)
	return p
}

func category(t *testing.T, desc string, purpose model.CategoryPurpose) model.Category {
	t.Helper()
	c, err := model.NewCategory(desc, purpose)
	require.NoError(t, err)
	return c
}

func txn(t *testing.T, desc, amount string, typ model.TransactionType, catID, personID int) model.Transaction {
	t.Helper()
	m, err := model.NewTransaction(desc, decimal.RequireFromString(amount), typ, catID, personID,
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return m
}

func testAddGetList(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	id1, err := tx.People().Add(ctx, person(t, "Ana", 30))
	require.NoError(t, err)
	id2, err := tx.People().Add(ctx, person(t, "Bruno", 12))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Positive(t, id1)
	assert.Greater(t, id2, id1)

	tx = begin(t, uow)
	defer tx.Rollback()

	got, err := tx.People().Get(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, model.Person{ID: id2, Name: "Bruno", Age: 12}, got)

	_, err = tx.People().Get(ctx, id2+100)
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err := tx.People().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, "Bruno", all[1].Name)
}

func testRollbackDiscards(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	_, err := tx.Categories().Add(ctx, category(t, "Rent", model.PurposeExpense))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	tx = begin(t, uow)
	defer tx.Rollback()
	all, err := tx.Categories().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testReadYourWrites(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	defer tx.Rollback()

	id, err := tx.Categories().Add(ctx, category(t, "Salary", model.PurposeIncome))
	require.NoError(t, err)

	got, err := tx.Categories().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Salary", got.Description)
	assert.Equal(t, model.PurposeIncome, got.Purpose)
}

func testIDsNotReused(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	first, err := tx.People().Add(ctx, person(t, "Ana", 30))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx = begin(t, uow)
	require.NoError(t, tx.People().Remove(ctx, first))
	require.NoError(t, tx.Commit())

	tx = begin(t, uow)
	second, err := tx.People().Add(ctx, person(t, "Bruno", 40))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Greater(t, second, first)
}

func testUpdateRemove(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	id, err := tx.Categories().Add(ctx, category(t, "Food", model.PurposeExpense))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx = begin(t, uow)
	c, err := tx.Categories().Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, c.Update("Groceries", model.PurposeBoth))
	require.NoError(t, tx.Categories().Update(ctx, c))
	require.NoError(t, tx.Commit())

	tx = begin(t, uow)
	got, err := tx.Categories().Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Description)
	assert.Equal(t, model.PurposeBoth, got.Purpose)

	require.NoError(t, tx.Categories().Remove(ctx, id))
	_, err = tx.Categories().Get(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, tx.Categories().Remove(ctx, id), store.ErrNotFound)
	assert.ErrorIs(t, tx.Categories().Update(ctx, got), store.ErrNotFound)
	require.NoError(t, tx.Commit())
}

func testDescriptionExists(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	defer tx.Rollback()

	id, err := tx.Categories().Add(ctx, category(t, "Groceries", model.PurposeExpense))
	require.NoError(t, err)

	exists, err := tx.Categories().DescriptionExists(ctx, "  gROCERIES ", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = tx.Categories().DescriptionExists(ctx, "groceries", id)
	require.NoError(t, err)
	assert.False(t, exists, "a category does not clash with itself")

	exists, err = tx.Categories().DescriptionExists(ctx, "Rent", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func testTransactionQueries(t *testing.T, uow store.UnitOfWork) {
	ctx := context.Background()
	tx := begin(t, uow)
	ana, err := tx.People().Add(ctx, person(t, "Ana", 30))
	require.NoError(t, err)
	bruno, err := tx.People().Add(ctx, person(t, "Bruno", 40))
	require.NoError(t, err)
	food, err := tx.Categories().Add(ctx, category(t, "Food", model.PurposeExpense))
	require.NoError(t, err)
	unused, err := tx.Categories().Add(ctx, category(t, "Travel", model.PurposeExpense))
	require.NoError(t, err)

	_, err = tx.Transactions().Add(ctx, txn(t, "Lunch", "12.50", model.TypeExpense, food, ana))
	require.NoError(t, err)
	_, err = tx.Transactions().Add(ctx, txn(t, "Dinner", "30.10", model.TypeExpense, food, ana))
	require.NoError(t, err)
	keep, err := tx.Transactions().Add(ctx, txn(t, "Snack", "3.99", model.TypeExpense, food, bruno))
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx = begin(t, uow)
	got, err := tx.Transactions().Get(ctx, keep)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("3.99")))
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.True(t, got.Date.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))

	byAna, err := tx.Transactions().ListByPerson(ctx, ana)
	require.NoError(t, err)
	assert.Len(t, byAna, 2)

	inUse, err := tx.Transactions().ExistsByCategory(ctx, food)
	require.NoError(t, err)
	assert.True(t, inUse)
	inUse, err = tx.Transactions().ExistsByCategory(ctx, unused)
	require.NoError(t, err)
	assert.False(t, inUse)

	n, err := tx.Transactions().RemoveByPerson(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, tx.Commit())

	tx = begin(t, uow)
	defer tx.Rollback()
	all, err := tx.Transactions().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep, all[0].ID)
}

func testRollbackAfterCommit(t *testing.T, uow store.UnitOfWork) {
	tx := begin(t, uow)
	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())
}
