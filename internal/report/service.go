// Package report aggregates transactions into per-person and household totals.
package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

// Totals is an income/expense/balance triple.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Income:  t.Income.Add(o.Income),
		Expense: t.Expense.Add(o.Expense),
		Balance: t.Balance.Add(o.Balance),
	}
}

// PersonTotals are the totals of one person.
type PersonTotals struct {
	PersonID   int
	PersonName string
	Totals
}

// Service computes reports.
type Service struct {
	uow store.UnitOfWork
}

// NewService creates a report Service.
func NewService(uow store.UnitOfWork) *Service {
	return &Service{uow: uow}
}

// TotalsByPerson returns one row per person, including people without
// transactions, and the grand total summed from those rows.
func (s *Service) TotalsByPerson(ctx context.Context) ([]PersonTotals, Totals, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	defer tx.Rollback()

	people, err := tx.People().List(ctx)
	if err != nil {
		return nil, Totals{}, err
	}

	rows := make([]PersonTotals, 0, len(people))
	for _, p := range people {
		txns, err := tx.Transactions().ListByPerson(ctx, p.ID)
		if err != nil {
			return nil, Totals{}, err
		}
		rows = append(rows, PersonTotals{PersonID: p.ID, PersonName: p.Name, Totals: Sum(txns)})
	}

	grand := Totals{Income: decimal.Zero, Expense: decimal.Zero, Balance: decimal.Zero}
	for _, r := range rows {
		grand = grand.Add(r.Totals)
	}
	return rows, grand, nil
}

// Sum totals a set of transactions by type.
func Sum(txns []model.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
		case model.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}
