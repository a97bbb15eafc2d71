package category

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/stats"
)

type ExpenseReader interface {
	GetAll(ctx context.Context) ([]model.Expense, error)
}

type CategoryService interface {
	// GetCategoryWithMostExpenses is the category used by the most spending records.
	GetCategoryWithMostExpenses(ctx context.Context) (model.Category, bool, error)
	GetCategoryWithMostIncome(ctx context.Context) (model.Category, bool, error)
}

type CategoryServiceImpl struct {
	repo     CategoryRepo
	expenses ExpenseReader
}

func NewCategoryServiceImpl(repo CategoryRepo, expenses ExpenseReader) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo, expenses: expenses}
}

func (s *CategoryServiceImpl) GetCategoryWithMostExpenses(ctx context.Context) (model.Category, bool, error) {
	return s.mostFrequent(ctx, false)
}

func (s *CategoryServiceImpl) GetCategoryWithMostIncome(ctx context.Context) (model.Category, bool, error) {
	return s.mostFrequent(ctx, true)
}

// mostFrequent reports absent when nothing matches or the winner is a dangling id.
func (s *CategoryServiceImpl) mostFrequent(ctx context.Context, income bool) (model.Category, bool, error) {
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return model.Category{}, false, err
	}
	id, ok := stats.MostFrequentCategory(expenses, income)
	if !ok {
		return model.Category{}, false, nil
	}
	category, found, err := s.repo.GetById(ctx, id)
	if err != nil {
		return model.Category{}, false, err
	}
	if !found {
		log.Debugf("most used category %s does not exist anymore", id)
	}
	return category, found, nil
}
