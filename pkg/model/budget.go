package model

import "cloud.google.com/go/civil"

type Budget struct {
	Id        string     `json:"id"`
	Amount    float64    `json:"amount"`
	StartDate civil.Date `json:"startDate"`
	EndDate   civil.Date `json:"endDate"`
	// CategoryId is nil for a general budget spanning all categories.
	CategoryId  *string `json:"categoryId,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

func BudgetId(b Budget) string {
	return b.Id
}

func (b Budget) IsGeneral() bool {
	return b.CategoryId == nil
}

func (b Budget) IsForCategory(categoryId string) bool {
	return b.CategoryId != nil && *b.CategoryId == categoryId
}

func (b Budget) IsActiveOn(date civil.Date) bool {
	return !b.StartDate.After(date) && !b.EndDate.Before(date)
}

// OverlapsRange reports whether the budget shares at least one day with [start, end].
func (b Budget) OverlapsRange(start, end civil.Date) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
