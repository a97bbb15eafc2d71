package stats

import (
	"context"

	"github.com/yuuzu/spenderman/pkg/model"
)

type expenseReaderStub struct {
	expenses []model.Expense
	err      error
}

func newExpenseReaderStub() *expenseReaderStub {
	return &expenseReaderStub{}
}

func (s *expenseReaderStub) GetAll(ctx context.Context) ([]model.Expense, error) {
	return s.expenses, s.err
}

func (s *expenseReaderStub) set(expenses ...model.Expense) {
	s.expenses = expenses
}

func (s *expenseReaderStub) reset() {
	s.expenses = nil
	s.err = nil
}

type budgetReaderStub struct {
	budgets []model.Budget
}

func newBudgetReaderStub() *budgetReaderStub {
	return &budgetReaderStub{}
}

func (s *budgetReaderStub) GetAll(ctx context.Context) ([]model.Budget, error) {
	return s.budgets, nil
}

func (s *budgetReaderStub) set(budgets ...model.Budget) {
	s.budgets = budgets
}

func (s *budgetReaderStub) reset() {
	s.budgets = nil
}

type categoryReaderStub struct {
	categories []model.Category
}

func (s *categoryReaderStub) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.categories, nil
}

type settingsReaderStub struct {
	settings model.Settings
}

func newSettingsReaderStub() *settingsReaderStub {
	return &settingsReaderStub{settings: model.DefaultSettings()}
}

func (s *settingsReaderStub) GetSettings(ctx context.Context) (model.Settings, error) {
	return s.settings, nil
}

func (s *settingsReaderStub) reset() {
	s.settings = model.DefaultSettings()
}
