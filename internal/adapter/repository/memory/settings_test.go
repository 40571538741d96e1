package memory

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recwave/recwave/internal/domain"
)

// Helper to create a test settings repository
func newTestSettingsRepository() *SettingsRepository {
	app := test.NewApp()
	prefs := app.Preferences()

	return NewSettingsRepository(prefs)
}

func TestSettingsRepository_SaveAndLoad(t *testing.T) {
	repo := newTestSettingsRepository()

	settings := domain.DefaultDisplaySettings()
	settings.BarWidth = 5
	settings.Gap = 2
	settings.Speed = 1
	settings.PrimaryColor = "#ff0000"

	err := repo.SaveDisplaySettings(settings)
	require.NoError(t, err)

	loaded, err := repo.LoadDisplaySettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSettingsRepository_Load_Default(t *testing.T) {
	repo := newTestSettingsRepository()

	// Load when nothing saved - should return defaults
	loaded, err := repo.LoadDisplaySettings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplaySettings(), loaded)
}

func TestSettingsRepository_Save_OverwritesPrevious(t *testing.T) {
	repo := newTestSettingsRepository()

	first := domain.DefaultDisplaySettings()
	first.BarWidth = 4
	require.NoError(t, repo.SaveDisplaySettings(first))

	second := domain.DefaultDisplaySettings()
	second.BarWidth = 7
	second.AnimateCurrentPick = false
	require.NoError(t, repo.SaveDisplaySettings(second))

	loaded, err := repo.LoadDisplaySettings()
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestSettingsRepository_Clear(t *testing.T) {
	repo := newTestSettingsRepository()

	settings := domain.DefaultDisplaySettings()
	settings.OnlyRecording = true
	require.NoError(t, repo.SaveDisplaySettings(settings))

	err := repo.Clear()
	require.NoError(t, err)

	// Load should fall back to defaults again
	loaded, err := repo.LoadDisplaySettings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplaySettings(), loaded)
}
