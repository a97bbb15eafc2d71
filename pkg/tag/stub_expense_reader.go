package tag

import (
	"context"

	"github.com/yuuzu/spenderman/pkg/model"
)

type StubExpenseReader struct {
	Expenses []model.Expense
	Err      error
}

func (s *StubExpenseReader) GetAll(ctx context.Context) ([]model.Expense, error) {
	return s.Expenses, s.Err
}

func (s *StubExpenseReader) GetById(ctx context.Context, id string) (model.Expense, bool, error) {
	if s.Err != nil {
		return model.Expense{}, false, s.Err
	}
	for _, e := range s.Expenses {
		if e.Id == id {
			return e, true, nil
		}
	}
	return model.Expense{}, false, nil
}
