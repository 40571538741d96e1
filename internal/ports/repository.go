// Package ports define interfaces for dependency inversion.
package ports

import (
	"github.com/recwave/recwave/internal/domain"
)

// SettingsRepository persists waveform display settings between sessions.
type SettingsRepository interface {
	// SaveDisplaySettings stores the current display settings.
	SaveDisplaySettings(settings domain.DisplaySettings) error

	// LoadDisplaySettings returns the saved settings, or the defaults when
	// nothing has been saved yet.
	LoadDisplaySettings() (domain.DisplaySettings, error)

	// Clear removes all saved settings.
	Clear() error
}
