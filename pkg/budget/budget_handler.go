package budget

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/pkg/model"
)

type BudgetProgressDTO struct {
	BudgetId string  `json:"budgetId"`
	Amount   float64 `json:"amount"`
	Spent    float64 `json:"spent"`
	Progress float64 `json:"progress"`
}

type BudgetHandler struct {
	*rest.RecordHandler[model.Budget]
	repo    BudgetRepo
	service BudgetService
}

func NewBudgetHandler(repo BudgetRepo, service BudgetService) *BudgetHandler {
	return &BudgetHandler{
		RecordHandler: rest.NewRecordHandler[model.Budget](repo, Collection, model.BudgetId, func(b model.Budget, id string) model.Budget {
			b.Id = id
			return b
		}),
		repo:    repo,
		service: service,
	}
}

// List godoc
// @Summary List budgets
// @Description Optionally narrowed to budgets overlapping from/to or scoped to a category.
// @Tags Budget
// @Produce json
// @Success 200 {array} model.Budget
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget [get]
func (handler *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, hasRange, err := rest.QueryDateRange(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}
	category := r.URL.Query().Get("category")

	var budgets []model.Budget
	switch {
	case hasRange && category != "":
		rest.WriteError(w, http.StatusBadRequest, "Conflicting filters", "use either from/to or category")
		return
	case hasRange:
		budgets, err = handler.repo.GetBudgetsByDateRange(r.Context(), start, end)
	case category != "":
		budgets, err = handler.repo.GetBudgetsByCategory(r.Context(), category)
	default:
		budgets, err = handler.repo.GetAll(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to list budget", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, budgets)
}

func (handler *BudgetHandler) Active(w http.ResponseWriter, r *http.Request) {
	date, present, err := rest.QueryDate(r, "date")
	if err != nil || !present {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", "date must be formatted as YYYY-MM-DD")
		return
	}
	budgets, err := handler.repo.GetActiveBudgets(r.Context(), date)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to list budget", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, budgets)
}

func (handler *BudgetHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Debugf("Computing progress of budget %s", id)
	status, found, err := handler.service.GetBudgetStatus(r.Context(), id)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to compute progress", err.Error())
		return
	}
	if !found {
		rest.WriteError(w, http.StatusNotFound, "budget not found", id)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetProgressDTO{
		BudgetId: status.Budget.Id,
		Amount:   status.Budget.Amount,
		Spent:    status.Spent,
		Progress: status.Progress,
	})
}
