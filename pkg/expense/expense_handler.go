package expense

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/pkg/model"
	"github.com/yuuzu/spenderman/pkg/query"
)

const defaultRecentLimit = 5

type ExpenseHandler struct {
	*rest.RecordHandler[model.Expense]
	repo ExpenseRepo
}

func NewExpenseHandler(repo ExpenseRepo) *ExpenseHandler {
	return &ExpenseHandler{
		RecordHandler: rest.NewRecordHandler[model.Expense](repo, Collection, model.ExpenseId, func(e model.Expense, id string) model.Expense {
			e.Id = id
			return e
		}),
		repo: repo,
	}
}

// List godoc
// @Summary List expenses
// @Description Filters combine with AND: from/to date range, category, tags (any of, comma separated) and income.
// @Tags Expense
// @Produce json
// @Success 200 {array} model.Expense
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expense [get]
func (handler *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	var preds []query.Predicate[model.Expense]

	start, end, hasRange, err := rest.QueryDateRange(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}
	if hasRange {
		preds = append(preds, query.InDateRange(start, end))
	}
	if category := r.URL.Query().Get("category"); category != "" {
		preds = append(preds, query.ByCategory(category))
	}
	if tags := r.URL.Query().Get("tags"); tags != "" {
		preds = append(preds, query.WithAnyTag(strings.Split(tags, ",")))
	}
	income, hasIncome, err := rest.QueryBool(r, "income")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income flag", err.Error())
		return
	}
	if hasIncome {
		if income {
			preds = append(preds, query.Income)
		} else {
			preds = append(preds, query.Outcome)
		}
	}

	log.Debugf("Listing expenses with %d filter(s)", len(preds))
	expenses, err := handler.repo.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to list expense", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, query.Where(expenses, preds...))
}

func (handler *ExpenseHandler) Totals(w http.ResponseWriter, r *http.Request) {
	start, end, hasRange, err := rest.QueryDateRange(r)
	if err != nil || !hasRange {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", "from and to must be given as YYYY-MM-DD")
		return
	}
	totals, err := handler.repo.GetTotalsByDateRange(r.Context(), start, end)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to compute totals", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, totals)
}

func (handler *ExpenseHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := rest.QueryInt(r, "limit", defaultRecentLimit)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid limit", err.Error())
		return
	}
	expenses, err := handler.repo.GetRecent(r.Context(), limit)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to list recent expenses", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, expenses)
}
