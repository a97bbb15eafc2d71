// Package query filters and orders in-memory snapshots of records.
package query

import (
	"cmp"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/yuuzu/spenderman/pkg/model"
)

type Predicate[T any] func(T) bool

// Where keeps the items matching every predicate. The result never aliases items.
func Where[T any](items []T, preds ...Predicate[T]) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			result = append(result, item)
		}
	}
	return result
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

func Not[T any](p Predicate[T]) Predicate[T] {
	return func(item T) bool {
		return !p(item)
	}
}

// InDateRange matches expenses dated within [start, end], both days inclusive.
func InDateRange(start, end civil.Date) Predicate[model.Expense] {
	return func(e model.Expense) bool {
		return e.OccursBetween(start, end)
	}
}

func ByCategory(categoryId string) Predicate[model.Expense] {
	return func(e model.Expense) bool {
		return e.Category == categoryId
	}
}

// WithAnyTag matches expenses carrying at least one of tags.
func WithAnyTag(tags []string) Predicate[model.Expense] {
	return func(e model.Expense) bool {
		return e.HasAnyTag(tags)
	}
}

func Income(e model.Expense) bool {
	return e.IsIncome
}

func Outcome(e model.Expense) bool {
	return !e.IsIncome
}

// BudgetOverlaps matches budgets sharing at least one day with [start, end].
func BudgetOverlaps(start, end civil.Date) Predicate[model.Budget] {
	return func(b model.Budget) bool {
		return b.OverlapsRange(start, end)
	}
}

func BudgetActiveOn(date civil.Date) Predicate[model.Budget] {
	return func(b model.Budget) bool {
		return b.IsActiveOn(date)
	}
}

func BudgetForCategory(categoryId string) Predicate[model.Budget] {
	return func(b model.Budget) bool {
		return b.IsForCategory(categoryId)
	}
}

func IncomeCategory(c model.Category) bool {
	return c.IsIncome
}

func ExpenseCategory(c model.Category) bool {
	return !c.IsIncome
}

// MostRecentFirst sorts a copy of expenses by date descending, equal dates by id.
func MostRecentFirst(expenses []model.Expense) []model.Expense {
	sorted := slices.Clone(expenses)
	slices.SortStableFunc(sorted, func(a, b model.Expense) int {
		switch {
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
		return cmp.Compare(a.Id, b.Id)
	})
	return sorted
}

// Take returns at most n leading items. n <= 0 yields an empty slice.
func Take[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}
	return slices.Clone(items[:n])
}
