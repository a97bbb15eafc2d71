package expense

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/query"
	"github.com/yuuzu/spenderman/pkg/stats"
)

const Collection = "expense"

type ExpenseRepo interface {
	record.Repository[model.Expense]
	GetByCategory(ctx context.Context, categoryId string) ([]model.Expense, error)
	GetByDateRange(ctx context.Context, start, end civil.Date) ([]model.Expense, error)
	// GetByTags returns expenses carrying at least one of tags.
	GetByTags(ctx context.Context, tags []string) ([]model.Expense, error)
	GetIncomeExpenses(ctx context.Context) ([]model.Expense, error)
	GetOutcomeExpenses(ctx context.Context) ([]model.Expense, error)
	// GetRecent returns up to limit expenses, newest date first.
	GetRecent(ctx context.Context, limit int) ([]model.Expense, error)
	GetTotalAmountByDateRange(ctx context.Context, start, end civil.Date) (float64, error)
	GetTotalIncomeByDateRange(ctx context.Context, start, end civil.Date) (float64, error)
	GetTotalOutcomeByDateRange(ctx context.Context, start, end civil.Date) (float64, error)
	GetTotalsByDateRange(ctx context.Context, start, end civil.Date) (stats.PeriodTotals, error)
}

type ExpenseRepoImpl struct {
	*record.Store[model.Expense]
}

func NewExpenseRepo(store kv.Store, bus *event_bus.EventBus) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{
		Store: record.NewStore(store, Collection, model.ExpenseId, record.WithEventBus[model.Expense](bus)),
	}
}

func (r *ExpenseRepoImpl) where(ctx context.Context, preds ...query.Predicate[model.Expense]) ([]model.Expense, error) {
	expenses, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Where(expenses, preds...), nil
}

func (r *ExpenseRepoImpl) GetByCategory(ctx context.Context, categoryId string) ([]model.Expense, error) {
	return r.where(ctx, query.ByCategory(categoryId))
}

func (r *ExpenseRepoImpl) GetByDateRange(ctx context.Context, start, end civil.Date) ([]model.Expense, error) {
	return r.where(ctx, query.InDateRange(start, end))
}

func (r *ExpenseRepoImpl) GetByTags(ctx context.Context, tags []string) ([]model.Expense, error) {
	return r.where(ctx, query.WithAnyTag(tags))
}

func (r *ExpenseRepoImpl) GetIncomeExpenses(ctx context.Context) ([]model.Expense, error) {
	return r.where(ctx, query.Income)
}

func (r *ExpenseRepoImpl) GetOutcomeExpenses(ctx context.Context) ([]model.Expense, error) {
	return r.where(ctx, query.Outcome)
}

func (r *ExpenseRepoImpl) GetRecent(ctx context.Context, limit int) ([]model.Expense, error) {
	expenses, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Take(query.MostRecentFirst(expenses), limit), nil
}

func (r *ExpenseRepoImpl) GetTotalAmountByDateRange(ctx context.Context, start, end civil.Date) (float64, error) {
	totals, err := r.GetTotalsByDateRange(ctx, start, end)
	return totals.Net, err
}

func (r *ExpenseRepoImpl) GetTotalIncomeByDateRange(ctx context.Context, start, end civil.Date) (float64, error) {
	totals, err := r.GetTotalsByDateRange(ctx, start, end)
	return totals.Income, err
}

func (r *ExpenseRepoImpl) GetTotalOutcomeByDateRange(ctx context.Context, start, end civil.Date) (float64, error) {
	totals, err := r.GetTotalsByDateRange(ctx, start, end)
	return totals.Outcome, err
}

func (r *ExpenseRepoImpl) GetTotalsByDateRange(ctx context.Context, start, end civil.Date) (stats.PeriodTotals, error) {
	expenses, err := r.GetAll(ctx)
	if err != nil {
		return stats.PeriodTotals{}, err
	}
	return stats.Totals(expenses, start, end), nil
}
