package app

import (
	"net/http"

	"github.com/gorilla/mux"
)

type crudHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteAll(w http.ResponseWriter, r *http.Request)
}

// registerCrud must run after the collection specific routes so that
// paths like /api/budget/active are not taken for an id.
func registerCrud(r *mux.Router, path string, h crudHandler) {
	r.HandleFunc(path, h.List).Methods("GET")
	r.HandleFunc(path, h.Create).Methods("POST")
	r.HandleFunc(path, h.DeleteAll).Methods("DELETE")
	r.HandleFunc(path+"/{id}", h.Get).Methods("GET")
	r.HandleFunc(path+"/{id}", h.Update).Methods("PUT")
	r.HandleFunc(path+"/{id}", h.Delete).Methods("DELETE")
}

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Expenses
	r.HandleFunc("/api/expense/totals", deps.ExpenseHandler.Totals).Methods("GET")
	r.HandleFunc("/api/expense/recent", deps.ExpenseHandler.Recent).Methods("GET")
	r.HandleFunc("/api/expense/{id}/tags", deps.TagHandler.ByExpense).Methods("GET")
	registerCrud(r, "/api/expense", deps.ExpenseHandler)

	// Categories
	r.HandleFunc("/api/category/popular", deps.CategoryHandler.Popular).Methods("GET")
	registerCrud(r, "/api/category", deps.CategoryHandler)

	// Budgets
	r.HandleFunc("/api/budget/active", deps.BudgetHandler.Active).Methods("GET")
	r.HandleFunc("/api/budget/{id}/progress", deps.BudgetHandler.Progress).Methods("GET")
	registerCrud(r, "/api/budget", deps.BudgetHandler)

	// Payment methods
	r.HandleFunc("/api/paymentmethod/default", deps.PaymentMethodHandler.GetDefault).Methods("GET")
	r.HandleFunc("/api/paymentmethod/default", deps.PaymentMethodHandler.SetDefault).Methods("PUT")
	registerCrud(r, "/api/paymentmethod", deps.PaymentMethodHandler)

	// Tags
	r.HandleFunc("/api/tag/popular", deps.TagHandler.Popular).Methods("GET")
	registerCrud(r, "/api/tag", deps.TagHandler)

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.Get).Methods("GET")
	r.HandleFunc("/api/settings", deps.SettingsHandler.Put).Methods("PUT")
	r.HandleFunc("/api/settings", deps.SettingsHandler.Patch).Methods("PATCH")
	r.HandleFunc("/api/settings", deps.SettingsHandler.Reset).Methods("DELETE")

	// Summary
	r.HandleFunc("/api/summary/monthly", deps.StatsHandler.GetMonthlySummary).Methods("GET")
}
