package model

import (
	"slices"

	"cloud.google.com/go/civil"
)

type RecurringType string

const (
	RecurringNone    RecurringType = "NONE"
	RecurringDaily   RecurringType = "DAILY"
	RecurringWeekly  RecurringType = "WEEKLY"
	RecurringMonthly RecurringType = "MONTHLY"
	RecurringYearly  RecurringType = "YEARLY"
)

// Expense is a single money movement. IsIncome flips it from spending to income.
type Expense struct {
	Id          string         `json:"id"`
	Amount      float64        `json:"amount"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Date        civil.DateTime `json:"date"`
	IsIncome    bool           `json:"isIncome"`
	Tags        []string       `json:"tags"`
	// RecurringType is informational, nothing instantiates recurring expenses.
	RecurringType RecurringType `json:"recurringType"`
	PaymentMethod string        `json:"paymentMethod"`
}

func ExpenseId(e Expense) string {
	return e.Id
}

// OccursBetween reports whether the date part of the expense falls in [start, end].
func (e Expense) OccursBetween(start, end civil.Date) bool {
	d := e.Date.Date
	return !d.Before(start) && !d.After(end)
}

func (e Expense) HasAnyTag(tags []string) bool {
	for _, t := range e.Tags {
		if slices.Contains(tags, t) {
			return true
		}
	}
	return false
}

// SignedAmount is the contribution of the expense to a net balance.
func (e Expense) SignedAmount() float64 {
	if e.IsIncome {
		return e.Amount
	}
	return -e.Amount
}
