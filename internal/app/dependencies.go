package app

import (
	"github.com/yuuzu/spenderman/internal/config"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/utils"
	"github.com/yuuzu/spenderman/pkg/budget"
	"github.com/yuuzu/spenderman/pkg/category"
	"github.com/yuuzu/spenderman/pkg/expense"
	"github.com/yuuzu/spenderman/pkg/payment_method"
	"github.com/yuuzu/spenderman/pkg/sample"
	"github.com/yuuzu/spenderman/pkg/settings"
	"github.com/yuuzu/spenderman/pkg/stats"
	"github.com/yuuzu/spenderman/pkg/tag"
)

// Dependencies holds all repositories, services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	ExpenseRepo    *expense.ExpenseRepoImpl
	ExpenseHandler *expense.ExpenseHandler

	CategoryRepo    *category.CategoryRepoImpl
	CategoryService *category.CategoryServiceImpl
	CategoryHandler *category.CategoryHandler

	BudgetRepo    *budget.BudgetRepoImpl
	BudgetService *budget.BudgetServiceImpl
	BudgetHandler *budget.BudgetHandler

	PaymentMethodRepo    *payment_method.PaymentMethodRepoImpl
	PaymentMethodHandler *payment_method.PaymentMethodHandler

	TagRepo    *tag.TagRepoImpl
	TagService *tag.TagServiceImpl
	TagHandler *tag.TagHandler

	SettingsRepo    *settings.SettingsRepoImpl
	SettingsHandler *settings.SettingsHandler

	StatsService       *stats.StatsServiceImpl
	CsvSummaryRenderer *stats.CsvSummaryRendererImpl
	StatsHandler       *stats.StatsHandler
}

func scopePolicy(cfg config.Budget) stats.ScopePolicy {
	if cfg.CategoryScopeIgnoresDates {
		return stats.CategoryScopeIgnoresDates
	}
	return stats.CategoryScopeWithinDates
}

// BuildDependencies initializes and wires all application services and handlers over one store.
func BuildDependencies(store kv.Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}
	policy := scopePolicy(cfg.Budget)

	deps.ExpenseRepo = expense.NewExpenseRepo(store, deps.EventBus)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseRepo)

	deps.CategoryRepo = category.NewCategoryRepo(store, deps.EventBus)
	deps.CategoryService = category.NewCategoryServiceImpl(deps.CategoryRepo, deps.ExpenseRepo)
	deps.CategoryHandler = category.NewCategoryHandler(deps.CategoryRepo, deps.CategoryService)

	deps.BudgetRepo = budget.NewBudgetRepo(store, deps.EventBus)
	deps.BudgetService = budget.NewBudgetServiceImpl(deps.BudgetRepo, deps.ExpenseRepo, policy)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetRepo, deps.BudgetService)

	deps.PaymentMethodRepo = payment_method.NewPaymentMethodRepo(store, deps.EventBus)
	deps.PaymentMethodHandler = payment_method.NewPaymentMethodHandler(deps.PaymentMethodRepo)

	deps.TagRepo = tag.NewTagRepo(store, deps.EventBus)
	deps.TagService = tag.NewTagServiceImpl(deps.TagRepo, deps.ExpenseRepo)
	deps.TagHandler = tag.NewTagHandler(deps.TagRepo, deps.TagService)

	deps.SettingsRepo = settings.NewSettingsRepo(store, deps.EventBus)
	deps.SettingsHandler = settings.NewSettingsHandler(deps.SettingsRepo)

	deps.StatsService = stats.NewStatsServiceImpl(deps.ExpenseRepo, deps.BudgetRepo, deps.CategoryRepo, deps.SettingsRepo, policy, cfg.Summary.RecentLimit)
	deps.CsvSummaryRenderer = stats.NewCsvSummaryRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvSummaryRenderer)

	return deps
}

// SampleRepositories exposes the record collections to the sample seeder.
func (d *Dependencies) SampleRepositories() sample.Repositories {
	return sample.Repositories{
		Categories:     d.CategoryRepo,
		PaymentMethods: d.PaymentMethodRepo,
		Tags:           d.TagRepo,
		Expenses:       d.ExpenseRepo,
		Budgets:        d.BudgetRepo,
	}
}
