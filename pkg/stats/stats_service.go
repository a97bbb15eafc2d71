package stats

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/utils"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/query"
)

const DefaultRecentLimit = 5

type ExpenseReader interface {
	GetAll(ctx context.Context) ([]model.Expense, error)
}

type BudgetReader interface {
	GetAll(ctx context.Context) ([]model.Budget, error)
}

type CategoryReader interface {
	GetAll(ctx context.Context) ([]model.Category, error)
}

type SettingsReader interface {
	GetSettings(ctx context.Context) (model.Settings, error)
}

type BudgetStatus struct {
	Budget   model.Budget
	Spent    float64
	Progress float64
	// AlertTriggered is set once Progress reaches the configured alert threshold.
	AlertTriggered bool
}

// MonthlySummary is the dashboard view of one calendar month.
type MonthlySummary struct {
	StartDate    civil.Date
	EndDate      civil.Date
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
	Budgets      []BudgetStatus
	Recent       []model.Expense
	Categories   []model.Category
	Currency     string
}

type StatsService interface {
	MonthlySummary(ctx context.Context, date civil.Date) (MonthlySummary, error)
	CurrentMonthSummary(ctx context.Context) (MonthlySummary, error)
}

type StatsServiceImpl struct {
	expenses    ExpenseReader
	budgets     BudgetReader
	categories  CategoryReader
	settings    SettingsReader
	policy      ScopePolicy
	recentLimit int
	clock       utils.Clock
}

func NewStatsServiceImpl(
	expenses ExpenseReader,
	budgets BudgetReader,
	categories CategoryReader,
	settings SettingsReader,
	policy ScopePolicy,
	recentLimit int,
) *StatsServiceImpl {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &StatsServiceImpl{
		expenses:    expenses,
		budgets:     budgets,
		categories:  categories,
		settings:    settings,
		policy:      policy,
		recentLimit: recentLimit,
		clock:       &utils.SystemClock{},
	}
}

// SetClock replaces the clock deciding the current month.
func (s *StatsServiceImpl) SetClock(clock utils.Clock) {
	s.clock = clock
}

func (s *StatsServiceImpl) CurrentMonthSummary(ctx context.Context) (MonthlySummary, error) {
	return s.MonthlySummary(ctx, utils.Today(s.clock))
}

// MonthlySummary totals the month containing date. Budgets are those active on
// date itself, recent transactions span every stored expense.
func (s *StatsServiceImpl) MonthlySummary(ctx context.Context, date civil.Date) (MonthlySummary, error) {
	expenses, err := s.expenses.GetAll(ctx)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to read expenses: %w", err)
	}
	budgets, err := s.budgets.GetAll(ctx)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to read budgets: %w", err)
	}
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to read categories: %w", err)
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to read settings: %w", err)
	}

	start, end := utils.MonthRange(date)
	totals := Totals(expenses, start, end)
	log.Debugf("Summary %s..%s: income %v, expense %v", start, end, totals.Income, totals.Outcome)

	active := query.Where(budgets, query.BudgetActiveOn(date))
	statuses := make([]BudgetStatus, 0, len(active))
	for _, b := range active {
		progress := BudgetProgress(b, expenses, s.policy)
		statuses = append(statuses, BudgetStatus{
			Budget:         b,
			Spent:          OutcomeSum(BudgetScope(b, expenses, s.policy)),
			Progress:       progress,
			AlertTriggered: progress > 0 && progress >= settings.BudgetAlertThreshold,
		})
	}

	return MonthlySummary{
		StartDate:    start,
		EndDate:      end,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Outcome,
		Balance:      totals.Income - totals.Outcome,
		Budgets:      statuses,
		Recent:       query.Take(query.MostRecentFirst(expenses), s.recentLimit),
		Categories:   categories,
		Currency:     settings.Currency,
	}, nil
}
