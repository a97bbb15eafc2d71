// Package sample builds a demo data set around the current month.
package sample

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/internal/utils"
	"github.com/yuuzu/spenderman/pkg/model"
)

type Data struct {
	Categories     []model.Category
	PaymentMethods []model.PaymentMethod
	Tags           []model.Tag
	Expenses       []model.Expense
	Budgets        []model.Budget
}

// Repositories are the collections Seed writes into.
type Repositories struct {
	Categories     record.Repository[model.Category]
	PaymentMethods record.Repository[model.PaymentMethod]
	Tags           record.Repository[model.Tag]
	Expenses       record.Repository[model.Expense]
	Budgets        record.Repository[model.Budget]
}

// Generate returns the demo data for the month containing today. Expenses dated
// a few days back never leave the month, early in the month they land on its first day.
func Generate(today civil.Date) Data {
	start, end := utils.MonthRange(today)
	daysAgo := func(n int, hour, minute int) civil.DateTime {
		d := today.AddDays(-n)
		if d.Before(start) {
			d = start
		}
		return civil.DateTime{Date: d, Time: civil.Time{Hour: hour, Minute: minute}}
	}
	onDay := func(day, hour int) civil.DateTime {
		d := civil.Date{Year: start.Year, Month: start.Month, Day: min(day, end.Day)}
		return civil.DateTime{Date: d, Time: civil.Time{Hour: hour}}
	}
	categoryId := func(id string) *string { return &id }

	return Data{
		Categories: []model.Category{
			{Id: "cat1", Name: "Food", Color: "#4CAF50", Icon: "food", Budget: 500},
			{Id: "cat2", Name: "Shopping", Color: "#2196F3", Icon: "shopping", Budget: 300},
			{Id: "cat3", Name: "Transport", Color: "#FF9800", Icon: "transport", Budget: 200},
			{Id: "cat4", Name: "Home", Color: "#9C27B0", Icon: "home", Budget: 1000},
			{Id: "cat5", Name: "Salary", Color: "#4CAF50", Icon: "shopping", IsIncome: true},
			{Id: "cat6", Name: "Gifts", Color: "#E91E63", Icon: "shopping", IsIncome: true},
		},
		PaymentMethods: []model.PaymentMethod{
			{Id: "pm1", Name: "Cash", Icon: "cash", Color: "#4CAF50", IsDefault: true},
			{Id: "pm2", Name: "Credit Card", Icon: "credit_card", Color: "#2196F3"},
			{Id: "pm3", Name: "Bank Transfer", Icon: "bank", Color: "#FF9800"},
		},
		Tags: []model.Tag{
			{Id: "tag1", Name: "Personal", Color: "#4CAF50"},
			{Id: "tag2", Name: "Work", Color: "#2196F3"},
			{Id: "tag3", Name: "Family", Color: "#FF9800"},
			{Id: "tag4", Name: "Vacation", Color: "#9C27B0"},
		},
		Expenses: []model.Expense{
			{Id: "exp1", Amount: 25.5, Category: "cat1", Description: "Lunch at restaurant", Date: daysAgo(1, 12, 30), PaymentMethod: "pm1", Tags: []string{}, RecurringType: model.RecurringNone},
			{Id: "exp2", Amount: 150, Category: "cat2", Description: "New clothes", Date: daysAgo(2, 15, 45), PaymentMethod: "pm2", Tags: []string{"tag1"}, RecurringType: model.RecurringNone},
			{Id: "exp3", Amount: 35, Category: "cat3", Description: "Taxi ride", Date: daysAgo(3, 18, 20), PaymentMethod: "pm1", Tags: []string{}, RecurringType: model.RecurringNone},
			{Id: "exp4", Amount: 2500, Category: "cat5", Description: "Monthly salary", Date: onDay(1, 9), IsIncome: true, PaymentMethod: "pm3", Tags: []string{}, RecurringType: model.RecurringNone},
			{Id: "exp5", Amount: 500, Category: "cat4", Description: "Rent", Date: onDay(5, 10), PaymentMethod: "pm3", Tags: []string{}, RecurringType: model.RecurringMonthly},
			{Id: "exp6", Amount: 100, Category: "cat6", Description: "Birthday gift", Date: daysAgo(5, 14, 30), IsIncome: true, PaymentMethod: "pm1", Tags: []string{"tag3"}, RecurringType: model.RecurringNone},
		},
		Budgets: []model.Budget{
			{Id: "budget1", Amount: 500, StartDate: start, EndDate: end, CategoryId: categoryId("cat1"), Name: "Food Budget"},
			{Id: "budget2", Amount: 300, StartDate: start, EndDate: end, CategoryId: categoryId("cat2"), Name: "Shopping Budget"},
			{Id: "budget3", Amount: 2000, StartDate: start, EndDate: end, Name: "Monthly Budget"},
		},
	}
}

// IsEmpty reports whether none of the collections holds a record.
func IsEmpty(ctx context.Context, repos Repositories) (bool, error) {
	counts := []func() (int, error){
		count(ctx, repos.Categories),
		count(ctx, repos.PaymentMethods),
		count(ctx, repos.Tags),
		count(ctx, repos.Expenses),
		count(ctx, repos.Budgets),
	}
	for _, c := range counts {
		n, err := c()
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

func count[T any](ctx context.Context, repo record.Repository[T]) func() (int, error) {
	return func() (int, error) {
		items, err := repo.GetAll(ctx)
		return len(items), err
	}
}

// Populate adds every record of d, stopping at the first failure.
func (d Data) Populate(ctx context.Context, repos Repositories) error {
	if err := addAll(ctx, "category", repos.Categories, d.Categories, model.CategoryId); err != nil {
		return err
	}
	if err := addAll(ctx, "payment method", repos.PaymentMethods, d.PaymentMethods, model.PaymentMethodId); err != nil {
		return err
	}
	if err := addAll(ctx, "tag", repos.Tags, d.Tags, model.TagId); err != nil {
		return err
	}
	if err := addAll(ctx, "expense", repos.Expenses, d.Expenses, model.ExpenseId); err != nil {
		return err
	}
	return addAll(ctx, "budget", repos.Budgets, d.Budgets, model.BudgetId)
}

func addAll[T any](ctx context.Context, what string, repo record.Repository[T], items []T, idOf func(T) string) error {
	for _, item := range items {
		ok, err := repo.Add(ctx, item)
		if err != nil {
			return fmt.Errorf("failed to add sample %s %s: %w", what, idOf(item), err)
		}
		if !ok {
			return fmt.Errorf("sample %s %s was not added", what, idOf(item))
		}
	}
	log.Debugf("Added %d sample %s records", len(items), what)
	return nil
}

// Seed populates the repositories with the data of the current month unless
// any of them already holds records. It reports whether data was written.
func Seed(ctx context.Context, repos Repositories, clock utils.Clock) (bool, error) {
	empty, err := IsEmpty(ctx, repos)
	if err != nil {
		return false, err
	}
	if !empty {
		log.Info("Store already holds data, skipping sample seeding")
		return false, nil
	}
	today := utils.Today(clock)
	if err := Generate(today).Populate(ctx, repos); err != nil {
		return false, err
	}
	log.Infof("Seeded sample data for %s", today)
	return true, nil
}
