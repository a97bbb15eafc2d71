package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/event_bus"
	"github.com/yuuzu/spenderman/internal/kv"
	"github.com/yuuzu/spenderman/internal/record"
	"github.com/yuuzu/spenderman/pkg/model"
)

const Key = "app_settings"

var ErrInvalidThreshold = errors.New("budget alert threshold must be within [0, 1]")

type SettingsRepo interface {
	// GetSettings returns the stored settings, storing the defaults first when none exist.
	GetSettings(ctx context.Context) (model.Settings, error)
	UpdateSettings(ctx context.Context, settings model.Settings) (bool, error)
	UpdateCurrency(ctx context.Context, currency string) (bool, error)
	UpdateTheme(ctx context.Context, theme model.Theme) (bool, error)
	UpdateLanguage(ctx context.Context, language string) (bool, error)
	UpdateNotifications(ctx context.Context, enabled bool) (bool, error)
	UpdateBudgetAlertThreshold(ctx context.Context, threshold float64) (bool, error)
	UpdateDefaultView(ctx context.Context, view model.DefaultView) (bool, error)
	// Modify applies fn to the current settings as one read-modify-write.
	Modify(ctx context.Context, fn func(*model.Settings) error) (bool, error)
	ResetToDefaults(ctx context.Context) (bool, error)
}

type SettingsRepoImpl struct {
	kv  kv.Store
	bus *event_bus.EventBus
	// mu makes every read-modify-write of the record exclusive.
	mu sync.Mutex
}

func NewSettingsRepo(store kv.Store, bus *event_bus.EventBus) *SettingsRepoImpl {
	return &SettingsRepoImpl{kv: store, bus: bus}
}

func (r *SettingsRepoImpl) GetSettings(ctx context.Context) (model.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *SettingsRepoImpl) UpdateSettings(ctx context.Context, settings model.Settings) (bool, error) {
	if err := validate(settings); err != nil {
		return false, err
	}
	return r.write(ctx, func(ctx context.Context) (model.Settings, error) {
		return settings, r.save(ctx, settings)
	})
}

func (r *SettingsRepoImpl) UpdateCurrency(ctx context.Context, currency string) (bool, error) {
	return r.Modify(ctx, func(s *model.Settings) error {
		s.Currency = currency
		return nil
	})
}

func (r *SettingsRepoImpl) UpdateTheme(ctx context.Context, theme model.Theme) (bool, error) {
	return r.Modify(ctx, func(s *model.Settings) error {
		s.Theme = theme
		return nil
	})
}

func (r *SettingsRepoImpl) UpdateLanguage(ctx context.Context, language string) (bool, error) {
	return r.Modify(ctx, func(s *model.Settings) error {
		s.Language = language
		return nil
	})
}

func (r *SettingsRepoImpl) UpdateNotifications(ctx context.Context, enabled bool) (bool, error) {
	return r.Modify(ctx, func(s *model.Settings) error {
		s.NotificationsEnabled = enabled
		return nil
	})
}

func (r *SettingsRepoImpl) UpdateBudgetAlertThreshold(ctx context.Context, threshold float64) (bool, error) {
	return r.Modify(ctx, func(s *model.Settings) error {
		s.BudgetAlertThreshold = threshold
		return nil
	})
}

func (r *SettingsRepoImpl) UpdateDefaultView(ctx context.Context, view model.DefaultView) (bool, error) {
	return r.Modify(ctx, func(s *model.Settings) error {
		s.DefaultView = view
		return nil
	})
}

func (r *SettingsRepoImpl) Modify(ctx context.Context, fn func(*model.Settings) error) (bool, error) {
	return r.write(ctx, func(ctx context.Context) (model.Settings, error) {
		current, err := r.load(ctx)
		if err != nil {
			return model.Settings{}, err
		}
		if err := fn(&current); err != nil {
			return model.Settings{}, err
		}
		if err := validate(current); err != nil {
			return model.Settings{}, err
		}
		return current, r.save(ctx, current)
	})
}

func (r *SettingsRepoImpl) ResetToDefaults(ctx context.Context) (bool, error) {
	log.Info("Resetting settings to defaults")
	return r.write(ctx, func(ctx context.Context) (model.Settings, error) {
		defaults := model.DefaultSettings()
		return defaults, r.save(ctx, defaults)
	})
}

// write runs fn under the lock and publishes the stored record once it is released.
func (r *SettingsRepoImpl) write(ctx context.Context, fn func(ctx context.Context) (model.Settings, error)) (bool, error) {
	stored, err := func() (model.Settings, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		return fn(ctx)
	}()
	if err != nil {
		log.Errorf("failed to update settings: %v", err)
		return false, err
	}
	r.publish(ctx, stored)
	return true, nil
}

func (r *SettingsRepoImpl) load(ctx context.Context) (model.Settings, error) {
	raw, ok, err := r.kv.GetString(ctx, Key)
	if err != nil {
		return model.Settings{}, fmt.Errorf("%w: %w", record.ErrStorage, err)
	}
	if !ok {
		defaults := model.DefaultSettings()
		log.Debug("No settings stored, persisting defaults")
		if err := r.save(ctx, defaults); err != nil {
			return model.Settings{}, err
		}
		return defaults, nil
	}
	// Fields missing from an older record keep their default value.
	settings := model.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.Settings{}, fmt.Errorf("%w: cannot decode settings: %w", record.ErrCodec, err)
	}
	if err := validate(settings); err != nil {
		log.Warnf("Stored settings are out of range, clamping: %v", err)
		settings.BudgetAlertThreshold = clampThreshold(settings.BudgetAlertThreshold)
	}
	return settings, nil
}

func (r *SettingsRepoImpl) save(ctx context.Context, settings model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: cannot encode settings: %w", record.ErrCodec, err)
	}
	if err := r.kv.SetString(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("%w: %w", record.ErrStorage, err)
	}
	return nil
}

func (r *SettingsRepoImpl) publish(ctx context.Context, settings model.Settings) {
	if r.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.SettingsChangedEvent, event_bus.SettingsChanged{
		Currency:             settings.Currency,
		BudgetAlertThreshold: settings.BudgetAlertThreshold,
	})
	if err := r.bus.Publish(event); err != nil {
		log.Warnf("settings change handlers failed: %v", err)
	}
}

func validate(settings model.Settings) error {
	t := settings.BudgetAlertThreshold
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, t)
	}
	return nil
}

func clampThreshold(t float64) float64 {
	if math.IsNaN(t) {
		return model.DefaultSettings().BudgetAlertThreshold
	}
	return math.Min(math.Max(t, 0), 1)
}
