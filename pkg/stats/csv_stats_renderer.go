package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/utils"
)

type SummaryRenderer interface {
	RenderSummary(summary MonthlySummary) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderSummary writes a totals block, a budgets block and a recent transactions
// block separated by empty rows.
func (t *CsvSummaryRendererImpl) RenderSummary(summary MonthlySummary) (string, error) {
	data := [][]string{
		{"Period", summary.StartDate.String(), summary.EndDate.String()},
		{"Currency", summary.Currency},
		{"Income", utils.FormatCurrency(summary.TotalIncome)},
		{"Expense", utils.FormatCurrency(summary.TotalExpense)},
		{"Balance", utils.FormatCurrency(summary.Balance)},
		{},
		{"Budget", "Amount", "Spent", "Progress", "Alert"},
	}
	for _, status := range summary.Budgets {
		data = append(data, []string{
			status.Budget.Name,
			utils.FormatCurrency(status.Budget.Amount),
			utils.FormatCurrency(status.Spent),
			strconv.FormatFloat(status.Progress*100, 'f', 1, 64) + "%",
			strconv.FormatBool(status.AlertTriggered),
		})
	}

	data = append(data, []string{}, []string{"Date", "Description", "Category", "Type", "Amount"})
	for _, e := range summary.Recent {
		kind := "expense"
		if e.IsIncome {
			kind = "income"
		}
		data = append(data, []string{
			e.Date.Date.String(),
			e.Description,
			categoryName(summary, e.Category),
			kind,
			utils.FormatCurrency(e.SignedAmount()),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

// categoryName falls back to the raw id for dangling references.
func categoryName(summary MonthlySummary, id string) string {
	for _, c := range summary.Categories {
		if c.Id == id {
			return c.Name
		}
	}
	return id
}
