package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yuuzu/spenderman/internal/rest"
	"github.com/yuuzu/spenderman/pkg/model"
)

// SettingsPatch lists the fields a PATCH may change. Absent fields are kept.
type SettingsPatch struct {
	Currency             *string  `json:"currency,omitempty"`
	Theme                *string  `json:"theme,omitempty"`
	Language             *string  `json:"language,omitempty"`
	NotificationsEnabled *bool    `json:"notificationsEnabled,omitempty"`
	BudgetAlertThreshold *float64 `json:"budgetAlertThreshold,omitempty"`
	DefaultView          *string  `json:"defaultView,omitempty"`
}

func (p SettingsPatch) apply(s *model.Settings) error {
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.Theme != nil {
		theme, err := model.ParseTheme(*p.Theme)
		if err != nil {
			return err
		}
		s.Theme = theme
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.BudgetAlertThreshold != nil {
		s.BudgetAlertThreshold = *p.BudgetAlertThreshold
	}
	if p.DefaultView != nil {
		view, err := model.ParseDefaultView(*p.DefaultView)
		if err != nil {
			return err
		}
		s.DefaultView = view
	}
	return nil
}

type invalidPatchError struct {
	err error
}

func (e invalidPatchError) Error() string {
	return e.err.Error()
}

type SettingsHandler struct {
	repo SettingsRepo
}

func NewSettingsHandler(repo SettingsRepo) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// Get godoc
// @Summary Get application settings
// @Description Returns the defaults, and stores them, when nothing was saved yet.
// @Tags Settings
// @Produce json
// @Success 200 {object} model.Settings
// @Router /api/settings [get]
func (handler *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := handler.repo.GetSettings(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "failed to read settings", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, settings)
}

// Put godoc
// @Summary Replace application settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body model.Settings true "Settings"
// @Success 200 {object} model.Settings
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/settings [put]
func (handler *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if _, err := model.ParseTheme(string(settings.Theme)); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid theme", err.Error())
		return
	}
	if _, err := model.ParseDefaultView(string(settings.DefaultView)); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid default view", err.Error())
		return
	}
	if _, err := handler.repo.UpdateSettings(r.Context(), settings); err != nil {
		handler.writeUpdateError(w, err)
		return
	}
	handler.Get(w, r)
}

func (handler *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	_, err := handler.repo.Modify(r.Context(), func(s *model.Settings) error {
		if err := patch.apply(s); err != nil {
			return invalidPatchError{err}
		}
		return nil
	})
	if err != nil {
		handler.writeUpdateError(w, err)
		return
	}
	handler.Get(w, r)
}

// Reset godoc
// @Summary Reset settings to defaults
// @Tags Settings
// @Success 200 {object} model.Settings
// @Router /api/settings [delete]
func (handler *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := handler.repo.ResetToDefaults(r.Context()); err != nil {
		handler.writeUpdateError(w, err)
		return
	}
	handler.Get(w, r)
}

func (handler *SettingsHandler) writeUpdateError(w http.ResponseWriter, err error) {
	var invalid invalidPatchError
	switch {
	case errors.Is(err, ErrInvalidThreshold), errors.As(err, &invalid):
		rest.WriteError(w, http.StatusBadRequest, "Invalid settings", err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, "failed to update settings", err.Error())
	}
}
