package categories

import "github.com/cleared-dev/household/internal/model"

// DefaultCatalog returns the categories seeded into a new household.
func DefaultCatalog() []model.Category {
	return []model.Category{
		{Description: "Groceries", Purpose: model.PurposeExpense},
		{Description: "Rent", Purpose: model.PurposeExpense},
		{Description: "Utilities", Purpose: model.PurposeExpense},
		{Description: "Transport", Purpose: model.PurposeExpense},
		{Description: "Health", Purpose: model.PurposeExpense},
		{Description: "Education", Purpose: model.PurposeExpense},
		{Description: "Leisure", Purpose: model.PurposeExpense},
		{Description: "Salary", Purpose: model.PurposeIncome},
		{Description: "Allowance", Purpose: model.PurposeIncome},
		{Description: "Gifts", Purpose: model.PurposeBoth},
		{Description: "Other", Purpose: model.PurposeBoth},
	}
}
