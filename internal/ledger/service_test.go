package ledger

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

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	st  *memstore.Store
	svc *Service
	rec *events.Recorder
}

func newFixture() *fixture {
	st := memstore.New()
	rec := &events.Recorder{}
	svc := NewService(st, rec)
	svc.now = func() time.Time { return date(2025, 7, 1) }
	return &fixture{st: st, svc: svc, rec: rec}
}

func (f *fixture) person(t *testing.T, name string, age int) int {
	t.Helper()
	ctx := context.Background()
	tx, err := f.st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()
	p, err := model.NewPerson(name, age)
	require.NoError(t, err)
	id, err := tx.People().Add(ctx, p)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return id
}

func (f *fixture) category(t *testing.T, desc string, purpose model.CategoryPurpose) int {
	t.Helper()
	ctx := context.Background()
	tx, err := f.st.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()
	c, err := model.NewCategory(desc, purpose)
	require.NoError(t, err)
	id, err := tx.Categories().Add(ctx, c)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	return id
}

func TestCreate_AdultExpense(t *testing.T) {
	f := newFixture()
	adult := f.person(t, "Ana", 25)
	groceries := f.category(t, "Groceries", model.PurposeExpense)
	before := f.st.Commits()

	id, err := f.svc.Create(context.Background(), CreateParams{
		Description: "Weekly market",
		Amount:      dec("50.00"),
		Type:        model.TypeExpense,
		CategoryID:  groceries,
		PersonID:    adult,
	})
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, before+1, f.st.Commits())
	assert.Equal(t, []string{events.TransactionCreated}, f.rec.Names())

	v, ok, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, date(2025, 7, 1), v.Date, "date defaults to now")
	assert.True(t, v.Amount.Equal(dec("50")))
}

func TestCreate_ExplicitDate(t *testing.T) {
	f := newFixture()
	p := f.person(t, "Ana", 25)
	c := f.category(t, "Rent", model.PurposeExpense)
	when := date(2024, 12, 5)

	id, err := f.svc.Create(context.Background(), CreateParams{
		Description: "December rent", Amount: dec("1200"), Type: model.TypeExpense,
		CategoryID: c, PersonID: p, Date: &when,
	})
	require.NoError(t, err)

	v, _, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, when, v.Date)
}

func TestCreate_MinorIncome(t *testing.T) {
	f := newFixture()
	minor := f.person(t, "Bia", 16)
	allowance := f.category(t, "Allowance", model.PurposeIncome)
	before := f.st.Commits()

	_, err := f.svc.Create(context.Background(), CreateParams{
		Description: "Weekly allowance",
		Amount:      dec("10.00"),
		Type:        model.TypeIncome,
		CategoryID:  allowance,
		PersonID:    minor,
	})
	var verr model.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, err.Error(), "minor")
	assert.Equal(t, before, f.st.Commits(), "no commit on rejection")
	assert.Empty(t, f.rec.Names())
}

func TestCreate_MinorIncomeAnyPurpose(t *testing.T) {
	for _, purpose := range []model.CategoryPurpose{model.PurposeIncome, model.PurposeBoth, model.PurposeExpense} {
		t.Run(string(purpose), func(t *testing.T) {
			f := newFixture()
			for _, age := range []int{1, 12, 17} {
				minor := f.person(t, "Kid", age)
				cat := f.category(t, "Cat "+string(rune('A'+age)), purpose)

				_, err := f.svc.Create(context.Background(), CreateParams{
					Description: "Gift", Amount: dec("5"), Type: model.TypeIncome,
					CategoryID: cat, PersonID: minor,
				})
				require.Error(t, err)
				assert.Contains(t, err.Error(), MsgMinorIncome, "age %d", age)
			}
		})
	}
}

func TestCreate_MinorExpenseAllowed(t *testing.T) {
	f := newFixture()
	minor := f.person(t, "Bia", 16)
	snacks := f.category(t, "Snacks", model.PurposeExpense)

	_, err := f.svc.Create(context.Background(), CreateParams{
		Description: "Candy", Amount: dec("2.50"), Type: model.TypeExpense,
		CategoryID: snacks, PersonID: minor,
	})
	require.NoError(t, err)
}

func TestCreate_AdultAtEighteenMayRecordIncome(t *testing.T) {
	f := newFixture()
	p := f.person(t, "Caio", 18)
	salary := f.category(t, "Salary", model.PurposeIncome)

	_, err := f.svc.Create(context.Background(), CreateParams{
		Description: "First job", Amount: dec("900"), Type: model.TypeIncome,
		CategoryID: salary, PersonID: p,
	})
	require.NoError(t, err)
}

func TestCreate_Compatibility(t *testing.T) {
	tests := []struct {
		purpose model.CategoryPurpose
		typ     model.TransactionType
		ok      bool
	}{
		{model.PurposeBoth, model.TypeExpense, true},
		{model.PurposeBoth, model.TypeIncome, true},
		{model.PurposeExpense, model.TypeExpense, true},
		{model.PurposeExpense, model.TypeIncome, false},
		{model.PurposeIncome, model.TypeIncome, true},
		{model.PurposeIncome, model.TypeExpense, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.purpose)+"/"+string(tt.typ), func(t *testing.T) {
			f := newFixture()
			adult := f.person(t, "Ana", 30)
			cat := f.category(t, "Category", tt.purpose)
			before := f.st.Commits()

			_, err := f.svc.Create(context.Background(), CreateParams{
				Description: "Entry", Amount: dec("1"), Type: tt.typ,
				CategoryID: cat, PersonID: adult,
			})
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, before+1, f.st.Commits())
				return
			}
			var verr model.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, err.Error(), "incompatible")
			assert.Equal(t, before, f.st.Commits())
		})
	}
}

func TestCreate_FieldInvariants(t *testing.T) {
	tests := []struct {
		name   string
		desc   string
		amount string
		field  string
	}{
		{"zero amount", "Rent", "0", "amount"},
		{"negative amount", "Rent", "-10", "amount"},
		{"blank description", "   ", "10", "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			p := f.person(t, "Ana", 30)
			c := f.category(t, "Rent", model.PurposeExpense)
			before := f.st.Commits()

			_, err := f.svc.Create(context.Background(), CreateParams{
				Description: tt.desc, Amount: dec(tt.amount), Type: model.TypeExpense,
				CategoryID: c, PersonID: p,
			})
			var verr model.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, before, f.st.Commits())
		})
	}
}

// Each case violates several rules at once; the first rule in check order wins.
func TestCreate_ErrorPrecedence(t *testing.T) {
	f := newFixture()
	minor := f.person(t, "Bia", 16)
	adult := f.person(t, "Ana", 30)
	rent := f.category(t, "Rent", model.PurposeExpense)

	tests := []struct {
		name   string
		params CreateParams
		check  func(t *testing.T, err error)
	}{
		{
			name: "person before category",
			params: CreateParams{Description: "", Amount: dec("0"), Type: model.TypeIncome,
				CategoryID: 999, PersonID: 998},
			check: func(t *testing.T, err error) {
				var nf model.NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, "person", nf.Entity)
				assert.Equal(t, 998, nf.ID)
			},
		},
		{
			name: "category before rules",
			params: CreateParams{Description: "", Amount: dec("0"), Type: model.TypeIncome,
				CategoryID: 999, PersonID: minor},
			check: func(t *testing.T, err error) {
				var nf model.NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, "category", nf.Entity)
			},
		},
		{
			name: "age before compatibility",
			params: CreateParams{Description: "", Amount: dec("0"), Type: model.TypeIncome,
				CategoryID: rent, PersonID: minor},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, MsgMinorIncome)
			},
		},
		{
			name: "compatibility before fields",
			params: CreateParams{Description: "", Amount: dec("-1"), Type: model.TypeIncome,
				CategoryID: rent, PersonID: adult},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, MsgIncompatible)
			},
		},
		{
			name: "amount before description",
			params: CreateParams{Description: "", Amount: dec("-1"), Type: model.TypeExpense,
				CategoryID: rent, PersonID: adult},
			check: func(t *testing.T, err error) {
				var verr model.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "amount", verr.Field)
			},
		},
	}
	before := f.st.Commits()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.params)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
	assert.Equal(t, before, f.st.Commits())
}

func TestList_EnrichedAndNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ana := f.person(t, "Ana", 30)
	bruno := f.person(t, "Bruno", 45)
	food := f.category(t, "Food", model.PurposeExpense)
	salary := f.category(t, "Salary", model.PurposeIncome)

	first, err := f.svc.Create(ctx, CreateParams{Description: "Lunch", Amount: dec("12.5"), Type: model.TypeExpense, CategoryID: food, PersonID: ana})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, CreateParams{Description: "Pay", Amount: dec("3000"), Type: model.TypeIncome, CategoryID: salary, PersonID: bruno})
	require.NoError(t, err)
	third, err := f.svc.Create(ctx, CreateParams{Description: "Dinner", Amount: dec("40"), Type: model.TypeExpense, CategoryID: food, PersonID: bruno})
	require.NoError(t, err)

	views, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []int{third, second, first}, []int{views[0].ID, views[1].ID, views[2].ID})

	pay := views[1]
	assert.Equal(t, "Pay", pay.Description)
	assert.Equal(t, "Salary", pay.CategoryDescription)
	assert.Equal(t, model.PurposeIncome, pay.CategoryPurpose)
	assert.Equal(t, "Bruno", pay.PersonName)
	assert.Equal(t, bruno, pay.PersonID)

	again, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, views, again, "listing is idempotent")
}

func TestList_Empty(t *testing.T) {
	views, err := newFixture().svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGet_Unknown(t *testing.T) {
	_, ok, err := newFixture().svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
