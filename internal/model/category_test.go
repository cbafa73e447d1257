package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPurposeAccepts(t *testing.T) {
	tests := []struct {
		purpose CategoryPurpose
		typ     TransactionType
		want    bool
	}{
		{PurposeBoth, TypeExpense, true},
		{PurposeBoth, TypeIncome, true},
		{PurposeExpense, TypeExpense, true},
		{PurposeExpense, TypeIncome, false},
		{PurposeIncome, TypeIncome, true},
		{PurposeIncome, TypeExpense, false},
		{PurposeBoth, TransactionType("transfer"), false},
		{CategoryPurpose("other"), TypeExpense, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.purpose.Accepts(tt.typ), "%s accepts %s", tt.purpose, tt.typ)
	}
}

func TestParseCategoryPurpose(t *testing.T) {
	p, err := ParseCategoryPurpose(" Both ")
	require.NoError(t, err)
	assert.Equal(t, PurposeBoth, p)

	_, err = ParseCategoryPurpose("savings")
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "purpose", verr.Field)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Groceries ", PurposeExpense)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", c.Description)
	assert.Equal(t, PurposeExpense, c.Purpose)

	_, err = NewCategory("   ", PurposeExpense)
	assert.ErrorContains(t, err, "description is required")

	_, err = NewCategory("Rent", CategoryPurpose("monthly"))
	assert.ErrorContains(t, err, "unknown purpose")
}

func TestDescriptionKey(t *testing.T) {
	assert.Equal(t, "groceries", DescriptionKey("  GroCeries "))
	assert.Equal(t, DescriptionKey("Rent"), DescriptionKey("rent "))
}
