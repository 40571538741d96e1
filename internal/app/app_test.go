package app

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() Config {
	config := DefaultConfig()
	config.UseMockAudio = true
	config.TestFyneApp = test.NewApp()
	return config
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication(newTestConfig())
	require.NoError(t, err)
	require.NotNil(t, app)

	// Verify all services were created
	recorder, playback := app.GetServices()
	assert.NotNil(t, recorder)
	assert.NotNil(t, playback)

	// Verify infrastructure was created
	assert.NotNil(t, app.GetEventBus())
	assert.NotNil(t, app.GetFyneApp())
	assert.NotNil(t, app.GetCoordinator())

	// Cleanup
	err = app.Shutdown()
	assert.NoError(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "com.recwave.app", config.AppID)
	assert.Equal(t, "RecWave", config.AppName)
	assert.Equal(t, 44100, config.SampleRate)
	assert.False(t, config.UseMockAudio)
}

func TestApplicationLifecycle(t *testing.T) {
	app, err := NewApplication(newTestConfig())
	require.NoError(t, err)

	// Run would normally block, but we're not calling it in test

	// Shutdown
	err = app.Shutdown()
	assert.NoError(t, err)

	// Shutdown again should not panic
	err = app.Shutdown()
	assert.NoError(t, err)
}

func TestApplicationRecordingRoundTrip(t *testing.T) {
	app, err := NewApplication(newTestConfig())
	require.NoError(t, err)
	defer func() {
		require.NoError(t, app.Shutdown())
	}()

	recorder, playback := app.GetServices()

	require.NoError(t, recorder.Start())
	require.NoError(t, recorder.Stop())

	// Stop publishes the buffer; the playback clock must have picked it up.
	buffer, err := recorder.LastRecording()
	require.NoError(t, err)
	assert.Equal(t, buffer.Duration(), playback.State().Duration)
}
