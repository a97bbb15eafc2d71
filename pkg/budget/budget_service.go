package budget

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/stats"
)

type ExpenseReader interface {
	GetAll(ctx context.Context) ([]model.Expense, error)
}

type BudgetService interface {
	// GetBudgetProgress is the spent share of the budget in [0, 1], 0 for an unknown budget.
	GetBudgetProgress(ctx context.Context, budgetId string) (float64, error)
	GetBudgetStatus(ctx context.Context, budgetId string) (stats.BudgetStatus, bool, error)
}

type BudgetServiceImpl struct {
	repo     BudgetRepo
	expenses ExpenseReader
	policy   stats.ScopePolicy
}

func NewBudgetServiceImpl(repo BudgetRepo, expenses ExpenseReader, policy stats.ScopePolicy) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, expenses: expenses, policy: policy}
}

func (s *BudgetServiceImpl) GetBudgetProgress(ctx context.Context, budgetId string) (float64, error) {
	status, found, err := s.GetBudgetStatus(ctx, budgetId)
	if err != nil || !found {
		return 0, err
	}
	return status.Progress, nil
}

func (s *BudgetServiceImpl) GetBudgetStatus(ctx context.Context, budgetId string) (stats.BudgetStatus, bool, error) {
	b, found, err := s.repo.GetById(ctx, budgetId)
	if err != nil {
		return stats.BudgetStatus{}, false, fmt.Errorf("failed to read budget %s: %w", budgetId, err)
	}
	if !found {
		log.Debugf("budget %s not found, reporting no progress", budgetId)
		return stats.BudgetStatus{}, false, nil
	}
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return stats.BudgetStatus{}, false, fmt.Errorf("failed to read expenses: %w", err)
	}
	return stats.BudgetStatus{
		Budget:   b,
		Spent:    stats.OutcomeSum(stats.BudgetScope(b, expenses, s.policy)),
		Progress: stats.BudgetProgress(b, expenses, s.policy),
	}, true, nil
}
