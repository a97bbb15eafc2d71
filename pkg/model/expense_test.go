package model

import (
	"encoding/json"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpense_OccursBetween(t *testing.T) {
	e := Expense{Date: civil.DateTime{Date: date(2024, 1, 31), Time: civil.Time{Hour: 23, Minute: 59}}}

	assert.True(t, e.OccursBetween(date(2024, 1, 1), date(2024, 1, 31)), "time of day must not push the expense out of its last day")
	assert.True(t, e.OccursBetween(date(2024, 1, 31), date(2024, 1, 31)))
	assert.False(t, e.OccursBetween(date(2024, 2, 1), date(2024, 2, 29)))
	assert.False(t, e.OccursBetween(date(2024, 1, 1), date(2024, 1, 30)))
}

func TestExpense_HasAnyTag(t *testing.T) {
	e := Expense{Tags: []string{"a", "b"}}

	assert.True(t, e.HasAnyTag([]string{"b", "z"}))
	assert.False(t, e.HasAnyTag([]string{"z"}))
	assert.False(t, e.HasAnyTag(nil))
	assert.False(t, Expense{}.HasAnyTag([]string{"a"}))
}

func TestExpense_SignedAmount(t *testing.T) {
	assert.Equal(t, 100.0, Expense{Amount: 100, IsIncome: true}.SignedAmount())
	assert.Equal(t, -40.0, Expense{Amount: 40}.SignedAmount())
}

func TestExpense_JSONKeepsEveryField(t *testing.T) {
	// given
	original := Expense{
		Id:            "exp1",
		Amount:        0.1 + 0.2,
		Category:      "cat1",
		Description:   "Lunch",
		Date:          civil.DateTime{Date: date(2024, 5, 17), Time: civil.Time{Hour: 12, Minute: 30, Second: 5}},
		IsIncome:      false,
		Tags:          []string{"tag1", "tag2"},
		RecurringType: RecurringMonthly,
		PaymentMethod: "pm1",
	}

	// when
	raw, err := json.Marshal(original)
	require.NoError(t, err)
	var decoded Expense
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// then
	assert.Equal(t, original, decoded)
	assert.Contains(t, string(raw), `"recurringType":"MONTHLY"`)
	assert.Contains(t, string(raw), `"date":"2024-05-17T12:30:05"`)
}
