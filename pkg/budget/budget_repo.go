package budget

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/query"
)

const Collection = "budget"

type BudgetRepo interface {
	record.Repository[model.Budget]
	// GetActiveBudgets returns budgets whose inclusive range contains date.
	GetActiveBudgets(ctx context.Context, date civil.Date) ([]model.Budget, error)
	GetBudgetsByCategory(ctx context.Context, categoryId string) ([]model.Budget, error)
	// GetBudgetsByDateRange returns budgets overlapping [start, end], not only those contained in it.
	GetBudgetsByDateRange(ctx context.Context, start, end civil.Date) ([]model.Budget, error)
}

type BudgetRepoImpl struct {
	*record.Store[model.Budget]
}

func NewBudgetRepo(store kv.Store, bus *event_bus.EventBus) *BudgetRepoImpl {
	return &BudgetRepoImpl{
		Store: record.NewStore(store, Collection, model.BudgetId, record.WithEventBus[model.Budget](bus)),
	}
}

func (r *BudgetRepoImpl) where(ctx context.Context, pred query.Predicate[model.Budget]) ([]model.Budget, error) {
	budgets, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Where(budgets, pred), nil
}

func (r *BudgetRepoImpl) GetActiveBudgets(ctx context.Context, date civil.Date) ([]model.Budget, error) {
	return r.where(ctx, query.BudgetActiveOn(date))
}

func (r *BudgetRepoImpl) GetBudgetsByCategory(ctx context.Context, categoryId string) ([]model.Budget, error) {
	return r.where(ctx, query.BudgetForCategory(categoryId))
}

func (r *BudgetRepoImpl) GetBudgetsByDateRange(ctx context.Context, start, end civil.Date) ([]model.Budget, error) {
	return r.where(ctx, query.BudgetOverlaps(start, end))
}
