package budget

import (
	"context"

	"github.com/yuuzu/spenderman/pkg/model"
)

type StubExpenseReader struct {
	expenses []model.Expense
}

func NewStubExpenseReader(expenses ...model.Expense) *StubExpenseReader {
	return &StubExpenseReader{expenses: expenses}
}

func (s *StubExpenseReader) GetAll(ctx context.Context) ([]model.Expense, error) {
	return s.expenses, nil
}

func (s *StubExpenseReader) Set(expenses ...model.Expense) {
	s.expenses = expenses
}

func (s *StubExpenseReader) Cleanup() {
	s.expenses = nil
}
