package category

import (
	"net/http"

	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/pkg/model"
)

type CategoryHandler struct {
	*rest.RecordHandler[model.Category]
	repo    CategoryRepo
	service CategoryService
}

func NewCategoryHandler(repo CategoryRepo, service CategoryService) *CategoryHandler {
	return &CategoryHandler{
		RecordHandler: rest.NewRecordHandler[model.Category](repo, Collection, model.CategoryId, func(c model.Category, id string) model.Category {
			c.Id = id
			return c
		}),
		repo:    repo,
		service: service,
	}
}

// List narrows to one side when the income query parameter is given.
func (handler *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	income, present, err := rest.QueryBool(r, "income")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income flag", err.Error())
		return
	}
	if !present {
		handler.RecordHandler.List(w, r)
		return
	}
	var categories []model.Category
	if income {
		categories, err = handler.repo.GetIncomeCategories(r.Context())
	} else {
		categories, err = handler.repo.GetExpenseCategories(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to list category", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, categories)
}

// Popular answers the category with the most records, spending unless income=true.
func (handler *CategoryHandler) Popular(w http.ResponseWriter, r *http.Request) {
	income, _, err := rest.QueryBool(r, "income")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income flag", err.Error())
		return
	}
	var category model.Category
	var found bool
	if income {
		category, found, err = handler.service.GetCategoryWithMostIncome(r.Context())
	} else {
		category, found, err = handler.service.GetCategoryWithMostExpenses(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to rank categories", err.Error())
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	rest.WriteJSON(w, http.StatusOK, category)
}
