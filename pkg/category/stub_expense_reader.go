package category

import (
	"context"

	"github.com/yuuzu/spenderman/pkg/model"
)

type StubExpenseReader struct {
	Expenses []model.Expense
	Err      error
}

func (s *StubExpenseReader) GetAll(ctx context.Context) ([]model.Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Expenses, nil
}
