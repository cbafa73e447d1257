package categories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/household/internal/events"
	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store/memstore"
)

func newTestService() (*Service, *memstore.Store, *events.Recorder) {
	st := memstore.New()
	rec := &events.Recorder{}
	return NewService(st, rec), st, rec
}

// addTransaction stores a person and a transaction on categoryID directly.
func addTransaction(t *testing.T, st *memstore.Store, categoryID int) {
	t.Helper()
	ctx := context.Background()
	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	p, _ := model.NewPerson("Ana", 30)
	pid, err := tx.People().Add(ctx, p)
	require.NoError(t, err)
	m, err := model.NewTransaction("Market", decimal.RequireFromString("10"), model.TypeExpense, categoryID, pid, time.Now())
	require.NoError(t, err)
	_, err = tx.Transactions().Add(ctx, m)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}

func TestCreate(t *testing.T) {
	svc, st, rec := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, "  Groceries ", model.PurposeExpense)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, 1, st.Commits())
	assert.Equal(t, []string{events.CategoryCreated}, rec.Names())

	c, ok, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Groceries", c.Description)
	assert.Equal(t, model.PurposeExpense, c.Purpose)
}

func TestCreate_InvalidPurpose(t *testing.T) {
	svc, st, _ := newTestService()

	_, err := svc.Create(context.Background(), "Groceries", model.CategoryPurpose("weekly"))
	var verr model.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "purpose", verr.Field)
	assert.Equal(t, 0, st.Commits())
}

func TestCreate_BlankDescription(t *testing.T) {
	svc, st, _ := newTestService()

	_, err := svc.Create(context.Background(), "   ", model.PurposeBoth)
	var verr model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "description", verr.Field)
	assert.Equal(t, 0, st.Commits())
}

func TestCreate_DuplicateDescription(t *testing.T) {
	tests := []string{"Groceries", "groceries", "  GROCERIES  "}
	for _, dup := range tests {
		t.Run(dup, func(t *testing.T) {
			svc, st, _ := newTestService()
			ctx := context.Background()

			_, err := svc.Create(ctx, "Groceries", model.PurposeExpense)
			require.NoError(t, err)

			_, err = svc.Create(ctx, dup, model.PurposeIncome)
			var cerr model.ConflictError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, 1, st.Commits(), "only the first create commits")

			all, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, st, rec := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, "Food", model.PurposeExpense)
	require.NoError(t, err)

	ok, err := svc.Update(ctx, id, "food", model.PurposeBoth)
	require.NoError(t, err, "a category may keep its own description")
	assert.True(t, ok)
	assert.Equal(t, 2, st.Commits())
	assert.Equal(t, []string{events.CategoryCreated, events.CategoryUpdated}, rec.Names())

	c, _, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "food", c.Description)
	assert.Equal(t, model.PurposeBoth, c.Purpose)
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, st, _ := newTestService()

	ok, err := svc.Update(context.Background(), 42, "Food", model.PurposeExpense)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, st.Commits())
}

func TestUpdate_Conflict(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Rent", model.PurposeExpense)
	require.NoError(t, err)
	id, err := svc.Create(ctx, "Food", model.PurposeExpense)
	require.NoError(t, err)

	_, err = svc.Update(ctx, id, " RENT", model.PurposeExpense)
	var cerr model.ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 2, st.Commits())

	c, _, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Food", c.Description)
}

func TestUpdate_Invalid(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, "Food", model.PurposeExpense)
	require.NoError(t, err)

	_, err = svc.Update(ctx, id, "", model.PurposeExpense)
	var verr model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, st.Commits())
}

func TestDelete(t *testing.T) {
	svc, st, rec := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, "Food", model.PurposeExpense)
	require.NoError(t, err)

	ok, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, st.Commits())
	assert.Contains(t, rec.Names(), events.CategoryDeleted)

	_, found, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, st.Commits())
}

func TestDelete_InUse(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, "Food", model.PurposeExpense)
	require.NoError(t, err)
	addTransaction(t, st, id)
	commits := st.Commits()

	ok, err := svc.Delete(ctx, id)
	var cerr model.ConflictError
	require.True(t, errors.As(err, &cerr), "got %v", err)
	assert.Contains(t, err.Error(), "in use")
	assert.False(t, ok)
	assert.Equal(t, commits, st.Commits())

	_, found, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, found, "category survives a rejected delete")

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()
	txns, err := tx.Transactions().List(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1, "transactions survive a rejected delete")
}

func TestListFor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Seed(ctx, DefaultCatalog())
	require.NoError(t, err)

	income, err := svc.ListFor(ctx, model.TypeIncome)
	require.NoError(t, err)
	for _, c := range income {
		assert.NotEqual(t, model.PurposeExpense, c.Purpose)
	}

	var names []string
	for _, c := range income {
		names = append(names, c.Description)
	}
	assert.ElementsMatch(t, []string{"Salary", "Allowance", "Gifts", "Other"}, names)
}

func TestSeed(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "groceries", model.PurposeExpense)
	require.NoError(t, err)

	n, err := svc.Seed(ctx, DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCatalog())-1, n, "existing description is skipped")
	assert.Equal(t, 2, st.Commits())

	n, err = svc.Seed(ctx, DefaultCatalog())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, st.Commits(), "nothing to add, nothing committed")
}

func TestDefaultCatalog_Valid(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range DefaultCatalog() {
		_, err := model.NewCategory(c.Description, c.Purpose)
		require.NoError(t, err, c.Description)
		key := model.DescriptionKey(c.Description)
		assert.False(t, seen[key], "duplicate %s", c.Description)
		seen[key] = true
	}
}
