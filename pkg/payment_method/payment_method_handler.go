package payment_method

import (
	"encoding/json"
	"net/http"

	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/pkg/model"
)

type DefaultPaymentMethodDTO struct {
	Id string `json:"id"`
}

type PaymentMethodHandler struct {
	*rest.RecordHandler[model.PaymentMethod]
	repo PaymentMethodRepo
}

func NewPaymentMethodHandler(repo PaymentMethodRepo) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		RecordHandler: rest.NewRecordHandler[model.PaymentMethod](repo, Collection, model.PaymentMethodId, func(m model.PaymentMethod, id string) model.PaymentMethod {
			m.Id = id
			return m
		}),
		repo: repo,
	}
}

// GetDefault godoc
// @Summary Get the default payment method
// @Tags PaymentMethod
// @Produce json
// @Success 200 {object} model.PaymentMethod
// @Success 204 "No default payment method"
// @Router /api/paymentmethod/default [get]
func (handler *PaymentMethodHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	method, found, err := handler.repo.GetDefaultPaymentMethod(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to read payment method", err.Error())
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	rest.WriteJSON(w, http.StatusOK, method)
}

// SetDefault godoc
// @Summary Set the default payment method
// @Tags PaymentMethod
// @Accept json
// @Param body body DefaultPaymentMethodDTO true "Payment method id"
// @Success 204
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/paymentmethod/default [put]
func (handler *PaymentMethodHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	var body DefaultPaymentMethodDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Id == "" {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", "id is required")
		return
	}
	ok, err := handler.repo.SetDefaultPaymentMethod(r.Context(), body.Id)
	if !record.Succeeded(ok, err) {
		rest.WriteError(w, http.StatusInternalServerError, "failed to set default payment method", record.Classify(ok, err).String())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
