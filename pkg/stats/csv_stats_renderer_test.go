package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuuzu/spenderman/pkg/model"
)

func TestCsvSummaryRendererImpl_RenderSummary(t1 *testing.T) {
	rent := expenseOn("e3", "rent", 1000, day(time.May, 31))
	rent.Description = "Rent"
	salary := incomeOn("e1", "salary", 3000, day(time.May, 1))
	salary.Description = "Salary"

	tests := []struct {
		name    string
		summary MonthlySummary
		want    string
	}{
		{
			name: "RenderSummary with budgets and transactions",
			summary: MonthlySummary{
				StartDate:    day(time.May, 1),
				EndDate:      day(time.May, 31),
				Currency:     "USD",
				TotalIncome:  3000,
				TotalExpense: 1120.5,
				Balance:      1879.5,
				Budgets: []BudgetStatus{
					{Budget: model.Budget{Name: "Food", Amount: 500}, Spent: 120.5, Progress: 0.241},
				},
				Recent:     []model.Expense{rent, salary},
				Categories: []model.Category{{Id: "rent", Name: "Housing"}},
			},
			want: "Period,2024-05-01,2024-05-31\n" +
				"Currency,USD\n" +
				"Income,\"3,000.00\"\n" +
				"Expense,\"1,120.50\"\n" +
				"Balance,\"1,879.50\"\n" +
				"\n" +
				"Budget,Amount,Spent,Progress,Alert\n" +
				"Food,500.00,120.50,24.1%,false\n" +
				"\n" +
				"Date,Description,Category,Type,Amount\n" +
				"2024-05-31,Rent,Housing,expense,\"-1,000.00\"\n" +
				"2024-05-01,Salary,salary,income,\"3,000.00\"\n",
		},
		{
			name: "RenderSummary of an empty month",
			summary: MonthlySummary{
				StartDate: day(time.February, 1),
				EndDate:   day(time.February, 29),
				Currency:  "EUR",
			},
			want: "Period,2024-02-01,2024-02-29\n" +
				"Currency,EUR\n" +
				"Income,0.00\n" +
				"Expense,0.00\n" +
				"Balance,0.00\n" +
				"\n" +
				"Budget,Amount,Spent,Progress,Alert\n" +
				"\n" +
				"Date,Description,Category,Type,Amount\n",
		},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t1 *testing.T) {
			t := NewCsvSummaryRenderer()
			got, err := t.RenderSummary(tt.summary)
			require.NoError(t1, err)
			assert.Equal(t1, tt.want, got)
		})
	}
}
