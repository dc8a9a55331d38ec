package repository

import (
	"database/sql"
	"strconv"

	"choreboard/internal/database"
	"choreboard/internal/models"
)

// Setting keys. Family name lives in the same key-value table as the
// behavior switches.
const (
	settingRequireApproval     = "require_approval"
	settingEnableGamification  = "enable_gamification"
	settingEnableNotifications = "enable_notifications"
	settingFamilyName          = "family_name"
)

// SettingsRepository stores the family-wide switches and display name
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a raw setting value; ok is false when the key is unset
func (r *SettingsRepository) GetSetting(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE name = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertKeyValue("settings")
	_, err := r.db.Exec(query, key, value)
	return err
}

// GetSettings assembles the Settings struct, falling back to defaults for
// keys that were never written
func (r *SettingsRepository) GetSettings() (models.Settings, error) {
	s := models.DefaultSettings()

	var err error
	if s.RequireApproval, err = r.boolSetting(settingRequireApproval, s.RequireApproval); err != nil {
		return s, err
	}
	if s.EnableGamification, err = r.boolSetting(settingEnableGamification, s.EnableGamification); err != nil {
		return s, err
	}
	if s.EnableNotifications, err = r.boolSetting(settingEnableNotifications, s.EnableNotifications); err != nil {
		return s, err
	}
	return s, nil
}

// SaveSettings persists all switches
func (r *SettingsRepository) SaveSettings(s models.Settings) error {
	if err := r.SetSetting(settingRequireApproval, strconv.FormatBool(s.RequireApproval)); err != nil {
		return err
	}
	if err := r.SetSetting(settingEnableGamification, strconv.FormatBool(s.EnableGamification)); err != nil {
		return err
	}
	return r.SetSetting(settingEnableNotifications, strconv.FormatBool(s.EnableNotifications))
}

// GetFamilyName returns the household display name, empty when unset
func (r *SettingsRepository) GetFamilyName() (string, error) {
	name, _, err := r.GetSetting(settingFamilyName)
	return name, err
}

// SetFamilyName updates the household display name
func (r *SettingsRepository) SetFamilyName(name string) error {
	return r.SetSetting(settingFamilyName, name)
}

func (r *SettingsRepository) boolSetting(key string, fallback bool) (bool, error) {
	value, ok, err := r.GetSetting(key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, nil
	}
	return parsed, nil
}
