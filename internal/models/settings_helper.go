package models

import (
	"fmt"

	"github.com/fmeurer/tomate/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingWorkMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.WorkMin); err != nil {
				return Settings{}, fmt.Errorf("parsing work_min: %w", err)
			}
		case constants.SettingShortBreakMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.ShortBreakMin); err != nil {
				return Settings{}, fmt.Errorf("parsing short_break_min: %w", err)
			}
		case constants.SettingLongBreakMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.LongBreakMin); err != nil {
				return Settings{}, fmt.Errorf("parsing long_break_min: %w", err)
			}
		case constants.SettingLongBreakInterval:
			if _, err := fmt.Sscanf(value, "%d", &settings.LongBreakInterval); err != nil {
				return Settings{}, fmt.Errorf("parsing long_break_interval: %w", err)
			}
		case constants.SettingLongBreaksEnabled:
			settings.LongBreaksEnabled = value == "true"
		case constants.SettingPauseAllowed:
			settings.PauseAllowed = value == "true"
		case constants.SettingAutoStartNext:
			settings.AutoStartNext = value == "true"
		case constants.SettingAutoLogWork:
			settings.AutoLogWork = value == "true"
		case constants.SettingLogBreaks:
			settings.LogBreaks = value == "true"
		case constants.SettingLogOfflineExpiry:
			settings.LogOfflineExpiry = value == "true"
		case constants.SettingTickIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.TickIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing tick_interval_sec: %w", err)
			}
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingReminderIntervalMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderIntervalMin); err != nil {
				return Settings{}, fmt.Errorf("parsing reminder_interval_min: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingWorkMin:              fmt.Sprintf("%d", settings.WorkMin),
		constants.SettingShortBreakMin:        fmt.Sprintf("%d", settings.ShortBreakMin),
		constants.SettingLongBreakMin:         fmt.Sprintf("%d", settings.LongBreakMin),
		constants.SettingLongBreakInterval:    fmt.Sprintf("%d", settings.LongBreakInterval),
		constants.SettingLongBreaksEnabled:    fmt.Sprintf("%v", settings.LongBreaksEnabled),
		constants.SettingPauseAllowed:         fmt.Sprintf("%v", settings.PauseAllowed),
		constants.SettingAutoStartNext:        fmt.Sprintf("%v", settings.AutoStartNext),
		constants.SettingAutoLogWork:          fmt.Sprintf("%v", settings.AutoLogWork),
		constants.SettingLogBreaks:            fmt.Sprintf("%v", settings.LogBreaks),
		constants.SettingLogOfflineExpiry:     fmt.Sprintf("%v", settings.LogOfflineExpiry),
		constants.SettingTickIntervalSec:      fmt.Sprintf("%d", settings.TickIntervalSec),
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingReminderIntervalMin:  fmt.Sprintf("%d", settings.ReminderIntervalMin),
		constants.SettingTimezone:             settings.Timezone,
	}
}

// DefaultSettings returns the factory default settings.
func DefaultSettings() Settings {
	return Settings{
		WorkMin:              constants.DefaultWorkMin,
		ShortBreakMin:        constants.DefaultShortBreakMin,
		LongBreakMin:         constants.DefaultLongBreakMin,
		LongBreakInterval:    constants.DefaultLongBreakInterval,
		LongBreaksEnabled:    constants.DefaultLongBreaksEnabled,
		PauseAllowed:         constants.DefaultPauseAllowed,
		AutoStartNext:        constants.DefaultAutoStartNext,
		AutoLogWork:          constants.DefaultAutoLogWork,
		LogBreaks:            constants.DefaultLogBreaks,
		LogOfflineExpiry:     constants.DefaultLogOfflineExpiry,
		TickIntervalSec:      constants.DefaultTickIntervalSec,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		ReminderIntervalMin:  constants.DefaultReminderIntervalMin,
		Timezone:             constants.DefaultTimezone,
	}
}
