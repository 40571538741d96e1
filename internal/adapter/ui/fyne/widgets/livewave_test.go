package widgets

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recwave/recwave/internal/domain"
)

// fixedSource always reports the same amplitude.
type fixedSource struct {
	value float64
}

func (s fixedSource) Latest() (float64, bool) {
	return s.value, true
}

func newTestLiveWave(t *testing.T, settings domain.DisplaySettings) *LiveWave {
	t.Helper()
	test.NewApp()
	return NewLiveWave(settings)
}

func TestLiveWave_TickThrottle(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.Speed = 3

	live := newTestLiveWave(t, settings)
	live.SetSource(fixedSource{value: 0.5})
	live.SetStatus(domain.RecordingStreaming)

	accepted := 0
	for i := 0; i < 9; i++ {
		if live.Tick() {
			accepted++
		}
	}

	// Every third tick appends a pick.
	assert.Equal(t, 3, accepted)
	assert.Equal(t, 3, live.ring.Len())
}

func TestLiveWave_TickIgnoredOutsideStreaming(t *testing.T) {
	live := newTestLiveWave(t, domain.DefaultDisplaySettings())
	live.SetSource(fixedSource{value: 0.5})

	assert.False(t, live.Tick(), "idle must not accept ticks")

	live.SetStatus(domain.RecordingStreaming)
	live.SetStatus(domain.RecordingPaused)
	assert.False(t, live.Tick(), "paused must not accept ticks")
}

func TestLiveWave_EmptySourceAppendsSilence(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.Speed = 1

	live := newTestLiveWave(t, settings)
	live.SetStatus(domain.RecordingStreaming)

	require.True(t, live.Tick())

	last, ok := live.ring.Last()
	require.True(t, ok)
	assert.Equal(t, 0.0, last)
}

func TestLiveWave_DrawPlacesNewestPickAtRightEdge(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.Speed = 1
	settings.AnimateCurrentPick = false

	live := newTestLiveWave(t, settings)
	live.SetSource(fixedSource{value: 1.0})
	live.SetStatus(domain.RecordingStreaming)
	require.True(t, live.Tick())

	w, h := 100, 50
	img := live.draw(w, h).(*image.RGBA)

	palette := ParsePalette(settings)
	pitch := settings.BarWidth + settings.Gap

	// Center of the rightmost slot carries the pick
	assert.Equal(t, palette.Primary, img.RGBAAt(w-pitch+1, h/2))

	// The slot one pitch to the left is still background
	assert.Equal(t, palette.Background, img.RGBAAt(w-2*pitch+1, h/2))
}

func TestLiveWave_DrawIdleWithNoDataIsBackgroundOnly(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	live := newTestLiveWave(t, settings)

	w, h := 60, 40
	img := live.draw(w, h).(*image.RGBA)

	palette := ParsePalette(settings)
	for y := 0; y < h; y += 7 {
		for x := 0; x < w; x += 7 {
			assert.Equal(t, palette.Background, img.RGBAAt(x, y))
		}
	}
}

func TestLiveWave_RingCapacityTracksSurfaceWidth(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.Speed = 1

	live := newTestLiveWave(t, settings)
	live.SetSource(fixedSource{value: 0.4})
	live.SetStatus(domain.RecordingStreaming)

	for i := 0; i < 100; i++ {
		live.Tick()
	}

	pitch := settings.BarWidth + settings.Gap
	w := 80
	live.draw(w, 40)

	assert.Equal(t, w/pitch, live.ring.Capacity())
	assert.LessOrEqual(t, live.ring.Len(), w/pitch)
}

func TestLiveWave_FreshSessionStartsEmpty(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.Speed = 1

	live := newTestLiveWave(t, settings)
	live.SetSource(fixedSource{value: 0.8})
	live.SetStatus(domain.RecordingStreaming)
	require.True(t, live.Tick())
	live.SetStatus(domain.RecordingIdle)

	// Stopping retains picks for display
	assert.Equal(t, 1, live.ring.Len())

	// Starting a new session clears them
	live.SetStatus(domain.RecordingStreaming)
	assert.Equal(t, 0, live.ring.Len())
}
