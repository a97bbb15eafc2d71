package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDate    = errors.New("date is missing or invalid")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidRange   = errors.New("end date is before start date")
)

func (e Expense) Validate() error {
	if !e.Date.IsValid() {
		return fmt.Errorf("%w: date %q", ErrInvalidDate, e.Date.String())
	}
	return validateAmount(e.Amount)
}

func (b Budget) Validate() error {
	if !b.StartDate.IsValid() {
		return fmt.Errorf("%w: startDate %q", ErrInvalidDate, b.StartDate.String())
	}
	if !b.EndDate.IsValid() {
		return fmt.Errorf("%w: endDate %q", ErrInvalidDate, b.EndDate.String())
	}
	if b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidRange, b.StartDate, b.EndDate)
	}
	return validateAmount(b.Amount)
}

func validateAmount(amount float64) error {
	if amount < 0 || math.IsNaN(amount) {
		return fmt.Errorf("%w: got %v", ErrNegativeAmount, amount)
	}
	return nil
}
