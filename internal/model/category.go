package model

import (
	"fmt"
	"strings"
)

// CategoryPurpose restricts which transaction types may use a category.
type CategoryPurpose string

const (
	PurposeExpense CategoryPurpose = "expense"
	PurposeIncome  CategoryPurpose = "income"
	PurposeBoth    CategoryPurpose = "both"
)

// Valid reports whether p is one of the defined purposes.
func (p CategoryPurpose) Valid() bool {
	switch p {
	case PurposeExpense, PurposeIncome, PurposeBoth:
		return true
	}
	return false
}

// Accepts reports whether a transaction of type t may use a category with
// this purpose.
func (p CategoryPurpose) Accepts(t TransactionType) bool {
	switch p {
	case PurposeBoth:
		return t.Valid()
	case PurposeExpense:
		return t == TypeExpense
	case PurposeIncome:
		return t == TypeIncome
	}
	return false
}

// ParseCategoryPurpose parses a purpose name, ignoring case and surrounding space.
func ParseCategoryPurpose(s string) (CategoryPurpose, error) {
	p := CategoryPurpose(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ValidationError{Field: "purpose", Description: fmt.Sprintf("unknown purpose %q", s)}
	}
	return p, nil
}

// Category classifies transactions.
type Category struct {
	ID          int
	Description string
	Purpose     CategoryPurpose
}

// NewCategory validates and builds a Category.
func NewCategory(description string, purpose CategoryPurpose) (Category, error) {
	var c Category
	if err := c.Update(description, purpose); err != nil {
		return Category{}, err
	}
	return c, nil
}

// Update replaces description and purpose together after validating both.
func (c *Category) Update(description string, purpose CategoryPurpose) error {
	if !purpose.Valid() {
		return ValidationError{Field: "purpose", Description: fmt.Sprintf("unknown purpose %q", purpose)}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return ValidationError{Field: "description", Description: "description is required"}
	}
	c.Description = description
	c.Purpose = purpose
	return nil
}

// DescriptionKey normalizes a description for uniqueness comparisons.
func DescriptionKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
