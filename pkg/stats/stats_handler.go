package stats

import (
	"net/http"

	"cloud.google.com/go/civil"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/internal/utils"
	"github.com/yuuzu/spenderman/pkg/model"
)

type BudgetStatusDTO struct {
	Budget         model.Budget `json:"budget"`
	Spent          float64      `json:"spent"`
	Remaining      float64      `json:"remaining"`
	Progress       float64      `json:"progress"`
	AlertTriggered bool         `json:"alertTriggered"`
}

type MonthlySummaryDTO struct {
	StartDate    civil.Date        `json:"startDate"`
	EndDate      civil.Date        `json:"endDate"`
	Currency     string            `json:"currency"`
	TotalIncome  float64           `json:"totalIncome"`
	TotalExpense float64           `json:"totalExpense"`
	Balance      float64           `json:"balance"`
	Formatted    FormattedTotals   `json:"formatted"`
	Budgets      []BudgetStatusDTO `json:"budgets"`
	Recent       []model.Expense   `json:"recentTransactions"`
}

// FormattedTotals carries the totals ready for display in the summary currency.
type FormattedTotals struct {
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	Balance      string `json:"balance"`
}

type StatsHandler struct {
	statsService       StatsService
	csvSummaryRenderer SummaryRenderer
}

func NewStatsHandler(statsService StatsService, csvSummaryRenderer SummaryRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvSummaryRenderer}
}

// GetMonthlySummary godoc
// @Summary Monthly dashboard summary
// @Description Summarizes the month containing date, the current month when date is omitted.
// @Description Responds with CSV when the Accept header is text/csv.
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Param date query string false "Any day of the month, YYYY-MM-DD"
// @Success 200 {object} MonthlySummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/summary/monthly [get]
func (handler *StatsHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	date, present, err := rest.QueryDate(r, "date")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be formatted as YYYY-MM-DD")
		return
	}

	var summary MonthlySummary
	if present {
		summary, err = handler.statsService.MonthlySummary(r.Context(), date)
	} else {
		summary, err = handler.statsService.CurrentMonthSummary(r.Context())
	}
	if err != nil {
		log.Errorf("Failed to build monthly summary: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "failed to build summary", err.Error())
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvSummaryRenderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("Failed to write csv summary: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, NewMonthlySummaryDTO(summary))
}

// NewMonthlySummaryDTO shapes a summary for JSON output.
func NewMonthlySummaryDTO(summary MonthlySummary) MonthlySummaryDTO {
	budgets := make([]BudgetStatusDTO, 0, len(summary.Budgets))
	for _, status := range summary.Budgets {
		budgets = append(budgets, BudgetStatusDTO{
			Budget:         status.Budget,
			Spent:          status.Spent,
			Remaining:      status.Budget.Amount - status.Spent,
			Progress:       status.Progress,
			AlertTriggered: status.AlertTriggered,
		})
	}
	recent := summary.Recent
	if recent == nil {
		recent = []model.Expense{}
	}
	symbol := utils.CurrencySymbol(summary.Currency)
	return MonthlySummaryDTO{
		StartDate:    summary.StartDate,
		EndDate:      summary.EndDate,
		Currency:     summary.Currency,
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
		Formatted: FormattedTotals{
			TotalIncome:  utils.FormatCurrencyWithSymbol(summary.TotalIncome, symbol),
			TotalExpense: utils.FormatCurrencyWithSymbol(summary.TotalExpense, symbol),
			Balance:      utils.FormatCurrencyWithSymbol(summary.Balance, symbol),
		},
		Budgets: budgets,
		Recent:  recent,
	}
}
