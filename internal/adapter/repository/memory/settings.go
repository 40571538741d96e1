// Package memory implements repositories backed by Fyne preferences.
package memory

import (
	"encoding/json"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
)

const settingsKey = "settings.display"

// SettingsRepository implements ports.SettingsRepository using Fyne preferences.
// The whole DisplaySettings struct is stored as one JSON blob so fields can be
// added without a key migration.
//
// Thread-safe: All operations protected by sync.RWMutex.
type SettingsRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewSettingsRepository creates a new settings repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewSettingsRepository(prefs fyne.Preferences) *SettingsRepository {
	return &SettingsRepository{
		prefs: prefs,
	}
}

// SaveDisplaySettings persists the display settings.
func (r *SettingsRepository) SaveDisplaySettings(settings domain.DisplaySettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return domain.NewServiceError("SettingsRepository", "SaveDisplaySettings", "failed to marshal settings", err)
	}

	r.prefs.SetString(settingsKey, string(data))
	return nil
}

// LoadDisplaySettings retrieves the saved display settings, falling back to
// the defaults when nothing has been saved yet.
func (r *SettingsRepository) LoadDisplaySettings() (domain.DisplaySettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := r.prefs.String(settingsKey)
	if data == "" {
		return domain.DefaultDisplaySettings(), nil
	}

	var settings domain.DisplaySettings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return domain.DisplaySettings{}, domain.NewServiceError("SettingsRepository", "LoadDisplaySettings", "failed to unmarshal settings", err)
	}

	return settings, nil
}

// Clear removes all saved settings.
func (r *SettingsRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue(settingsKey)
	return nil
}

// Verify interface implementation
var _ ports.SettingsRepository = (*SettingsRepository)(nil)
