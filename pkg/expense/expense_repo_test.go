package expense

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/pkg/model"
)

func day(d int) civil.Date {
	return civil.Date{Year: 2024, Month: time.June, Day: d}
}

func at(d int) civil.DateTime {
	return civil.DateTime{Date: day(d), Time: civil.Time{Hour: 18, Minute: 30}}
}

func setup(t *testing.T, expenses ...model.Expense) (context.Context, *ExpenseRepoImpl) {
	t.Helper()
	ctx := context.Background()
	repo := NewExpenseRepo(kv.NewMemoryStore(), event_bus.NewEventBus())
	for _, e := range expenses {
		ok, err := repo.Add(ctx, e)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return ctx, repo
}

func expenseIds(expenses []model.Expense) []string {
	ids := make([]string, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.Id)
	}
	return ids
}

var fixtures = []model.Expense{
	{Id: "exp1", Amount: 25.5, Category: "cat1", Date: at(3), Tags: []string{}, RecurringType: model.RecurringNone, PaymentMethod: "pm1"},
	{Id: "exp2", Amount: 150, Category: "cat2", Date: at(8), Tags: []string{"tag1"}, RecurringType: model.RecurringNone},
	{Id: "exp3", Amount: 2500, Category: "cat5", Date: at(1), IsIncome: true, Tags: []string{}, RecurringType: model.RecurringMonthly},
	{Id: "exp4", Amount: 100, Category: "cat6", Date: at(20), IsIncome: true, Tags: []string{"tag3", "tag1"}},
}

func TestExpenseRepo_RoundTrip(t *testing.T) {
	// given
	ctx, repo := setup(t)
	original := fixtures[3]

	// when
	_, err := repo.Add(ctx, original)
	require.NoError(t, err)
	got, found, err := repo.GetById(ctx, original.Id)

	// then
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, original, got)
}

func TestExpenseRepo_Queries(t *testing.T) {
	ctx, repo := setup(t, fixtures...)

	t.Run("by category", func(t *testing.T) {
		got, err := repo.GetByCategory(ctx, "cat2")
		require.NoError(t, err)
		assert.Equal(t, []string{"exp2"}, expenseIds(got))
	})

	t.Run("by date range", func(t *testing.T) {
		got, err := repo.GetByDateRange(ctx, day(1), day(8))
		require.NoError(t, err)
		assert.Equal(t, []string{"exp1", "exp2", "exp3"}, expenseIds(got))
	})

	t.Run("by tags", func(t *testing.T) {
		got, err := repo.GetByTags(ctx, []string{"tag3", "tag9"})
		require.NoError(t, err)
		assert.Equal(t, []string{"exp4"}, expenseIds(got))
	})

	t.Run("income and outcome partition", func(t *testing.T) {
		income, err := repo.GetIncomeExpenses(ctx)
		require.NoError(t, err)
		outcome, err := repo.GetOutcomeExpenses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"exp3", "exp4"}, expenseIds(income))
		assert.Equal(t, []string{"exp1", "exp2"}, expenseIds(outcome))
	})

	t.Run("recent", func(t *testing.T) {
		got, err := repo.GetRecent(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"exp4", "exp2", "exp1"}, expenseIds(got))
	})
}

func TestExpenseRepo_Totals(t *testing.T) {
	t.Run("should apply the sign convention", func(t *testing.T) {
		// given
		ctx, repo := setup(t,
			model.Expense{Id: "in", Amount: 100, IsIncome: true, Date: at(10)},
			model.Expense{Id: "out", Amount: 40, Date: at(11)},
			model.Expense{Id: "outside", Amount: 999, Date: civil.DateTime{Date: civil.Date{Year: 2024, Month: time.July, Day: 1}}},
		)

		// when
		net, errNet := repo.GetTotalAmountByDateRange(ctx, day(1), day(30))
		income, errIncome := repo.GetTotalIncomeByDateRange(ctx, day(1), day(30))
		outcome, errOutcome := repo.GetTotalOutcomeByDateRange(ctx, day(1), day(30))

		// then
		require.NoError(t, errNet)
		require.NoError(t, errIncome)
		require.NoError(t, errOutcome)
		assert.Equal(t, 60.0, net)
		assert.Equal(t, 100.0, income)
		assert.Equal(t, 40.0, outcome)
	})

	t.Run("should be zero for an empty range", func(t *testing.T) {
		ctx, repo := setup(t, fixtures...)

		totals, err := repo.GetTotalsByDateRange(ctx, day(25), day(30))

		require.NoError(t, err)
		assert.Zero(t, totals.Net)
		assert.Zero(t, totals.Income)
		assert.Zero(t, totals.Outcome)
	})
}
