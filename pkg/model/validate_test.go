package model

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestExpense_Validate(t *testing.T) {
	valid := Expense{Id: "e1", Amount: 12.5, Date: civil.DateTime{Date: date(2024, 5, 2)}}

	tests := []struct {
		name    string
		expense func(e Expense) Expense
		wantErr error
	}{
		{name: "valid expense", expense: func(e Expense) Expense { return e }},
		{name: "zero amount is allowed", expense: func(e Expense) Expense { e.Amount = 0; return e }},
		{name: "missing date", expense: func(e Expense) Expense { e.Date = civil.DateTime{}; return e }, wantErr: ErrInvalidDate},
		{name: "negative amount", expense: func(e Expense) Expense { e.Amount = -1; return e }, wantErr: ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense(valid).Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBudget_Validate(t *testing.T) {
	valid := Budget{Id: "b1", Amount: 100, StartDate: date(2024, 5, 1), EndDate: date(2024, 5, 31)}

	tests := []struct {
		name    string
		budget  func(b Budget) Budget
		wantErr error
	}{
		{name: "valid budget", budget: func(b Budget) Budget { return b }},
		{name: "single day budget", budget: func(b Budget) Budget { b.EndDate = b.StartDate; return b }},
		{name: "missing start date", budget: func(b Budget) Budget { b.StartDate = civil.Date{}; return b }, wantErr: ErrInvalidDate},
		{name: "missing end date", budget: func(b Budget) Budget { b.EndDate = civil.Date{}; return b }, wantErr: ErrInvalidDate},
		{name: "end before start", budget: func(b Budget) Budget { b.EndDate = civil.Date{Year: 2024, Month: time.April, Day: 30}; return b }, wantErr: ErrInvalidRange},
		{name: "negative amount", budget: func(b Budget) Budget { b.Amount = -10; return b }, wantErr: ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget(valid).Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
