package model

import (
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
	ThemeSystem Theme = "SYSTEM"
)

type DefaultView string

const (
	ViewDaily   DefaultView = "DAILY"
	ViewWeekly  DefaultView = "WEEKLY"
	ViewMonthly DefaultView = "MONTHLY"
	ViewYearly  DefaultView = "YEARLY"
)

type Settings struct {
	Currency             string `json:"currency"`
	Theme                Theme  `json:"theme"`
	Language             string `json:"language"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	// BudgetAlertThreshold is the usage ratio in [0, 1] at which a budget warning is due.
	BudgetAlertThreshold float64     `json:"budgetAlertThreshold"`
	DefaultView          DefaultView `json:"defaultView"`
}

func DefaultSettings() Settings {
	return Settings{
		Currency:             "USD",
		Theme:                ThemeSystem,
		Language:             "en",
		NotificationsEnabled: true,
		BudgetAlertThreshold: 0.8,
		DefaultView:          ViewMonthly,
	}
}

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToUpper(s)); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

func ParseDefaultView(s string) (DefaultView, error) {
	switch v := DefaultView(strings.ToUpper(s)); v {
	case ViewDaily, ViewWeekly, ViewMonthly, ViewYearly:
		return v, nil
	}
	return "", fmt.Errorf("unknown default view %q", s)
}
