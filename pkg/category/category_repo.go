package category

import (
	"context"

	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/query"
)

const Collection = "category"

type CategoryRepo interface {
	record.Repository[model.Category]
	GetIncomeCategories(ctx context.Context) ([]model.Category, error)
	GetExpenseCategories(ctx context.Context) ([]model.Category, error)
}

type CategoryRepoImpl struct {
	*record.Store[model.Category]
}

func NewCategoryRepo(store kv.Store, bus *event_bus.EventBus) *CategoryRepoImpl {
	return &CategoryRepoImpl{
		Store: record.NewStore(store, Collection, model.CategoryId, record.WithEventBus[model.Category](bus)),
	}
}

func (r *CategoryRepoImpl) GetIncomeCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Where(categories, query.IncomeCategory), nil
}

func (r *CategoryRepoImpl) GetExpenseCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Where(categories, query.ExpenseCategory), nil
}
