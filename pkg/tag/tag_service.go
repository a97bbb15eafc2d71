package tag

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/stats"
)

type ExpenseReader interface {
	GetAll(ctx context.Context) ([]model.Expense, error)
	GetById(ctx context.Context, id string) (model.Expense, bool, error)
}

type TagService interface {
	// GetTagsByExpenseId returns the tags of an expense in tag collection order,
	// empty when the expense does not exist.
	GetTagsByExpenseId(ctx context.Context, expenseId string) ([]model.Tag, error)
	// GetMostUsedTags ranks tags by the number of expenses carrying them.
	GetMostUsedTags(ctx context.Context, limit int) ([]model.Tag, error)
}

type TagServiceImpl struct {
	repo     TagRepo
	expenses ExpenseReader
}

func NewTagServiceImpl(repo TagRepo, expenses ExpenseReader) *TagServiceImpl {
	return &TagServiceImpl{repo: repo, expenses: expenses}
}

func (s *TagServiceImpl) GetTagsByExpenseId(ctx context.Context, expenseId string) ([]model.Tag, error) {
	expense, found, err := s.expenses.GetById(ctx, expenseId)
	if err != nil {
		return nil, fmt.Errorf("failed to read expense %s: %w", expenseId, err)
	}
	if !found {
		log.Debugf("expense %s not found, no tags", expenseId)
		return []model.Tag{}, nil
	}
	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return stats.ResolveTags(expense.Tags, tags), nil
}

func (s *TagServiceImpl) GetMostUsedTags(ctx context.Context, limit int) ([]model.Tag, error) {
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return stats.TopTags(expenses, tags, limit), nil
}
