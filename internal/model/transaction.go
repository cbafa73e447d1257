package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money in a transaction.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Valid reports whether t is a defined transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// ParseTransactionType parses a type name, ignoring case and surrounding space.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ValidationError{Field: "type", Description: fmt.Sprintf("unknown transaction type %q", s)}
	}
	return t, nil
}

// Transaction is a dated monetary record tied to one person and one category.
type Transaction struct {
	ID          int
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  int
	PersonID    int
	Date        time.Time
}

// NewTransaction checks the field invariants and builds a Transaction.
// Reference and eligibility checks belong to the caller.
func NewTransaction(description string, amount decimal.Decimal, typ TransactionType, categoryID, personID int, date time.Time) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ValidationError{Field: "amount", Description: "amount must be positive"}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Transaction{}, ValidationError{Field: "description", Description: "description is required"}
	}
	if !typ.Valid() {
		return Transaction{}, ValidationError{Field: "type", Description: fmt.Sprintf("unknown transaction type %q", typ)}
	}
	if categoryID <= 0 {
		return Transaction{}, ValidationError{Field: "category_id", Description: "invalid category id"}
	}
	if personID <= 0 {
		return Transaction{}, ValidationError{Field: "person_id", Description: "invalid person id"}
	}
	return Transaction{
		Description: description,
		Amount:      amount,
		Type:        typ,
		CategoryID:  categoryID,
		PersonID:    personID,
		Date:        date,
	}, nil
}
