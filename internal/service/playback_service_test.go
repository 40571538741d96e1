package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recwave/recwave/internal/adapter/eventbus"
	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/logger"
	"github.com/recwave/recwave/internal/testutil"
)

// Helper to create a test playback service
func newTestPlaybackService(t *testing.T) (*PlaybackService, *eventbus.SyncEventBus) {
	t.Helper()

	bus := eventbus.NewSyncEventBus()
	service := NewPlaybackService(logger.NewTestLogger(), bus)

	t.Cleanup(func() {
		require.NoError(t, service.Shutdown())
	})

	return service, bus
}

// Helper to create a one-second test recording
func oneSecondBuffer() domain.SampleBuffer {
	return domain.SampleBuffer{Samples: make([]float64, 8000), SampleRate: 8000}
}

func TestPlaybackService_LoadRecordingRewindsClock(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)

	service.LoadRecording(oneSecondBuffer())

	state := service.State()
	assert.Equal(t, time.Duration(0), state.Position)
	assert.Equal(t, time.Second, state.Duration)
	assert.False(t, service.IsPlaying())
}

func TestPlaybackService_PlayWithoutRecordingFails(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)

	assert.ErrorIs(t, service.Play(), domain.ErrNoRecording)
}

func TestPlaybackService_PlayAdvancesAndStopsAtEnd(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)

	// A very short recording so the clock reaches the end quickly.
	service.LoadRecording(domain.SampleBuffer{Samples: make([]float64, 2400), SampleRate: 8000})
	require.NoError(t, service.Play())
	assert.True(t, service.IsPlaying())

	require.Eventually(t, func() bool {
		return !service.IsPlaying()
	}, 2*time.Second, 10*time.Millisecond)

	// The clock clamps at the end instead of running past it.
	assert.Equal(t, service.State().Duration, service.State().Position)
}

func TestPlaybackService_PlayAtEndRewinds(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)

	service.LoadRecording(oneSecondBuffer())
	require.NoError(t, service.Seek(time.Second))
	require.NoError(t, service.Play())

	assert.Less(t, service.State().Position, time.Second)
	service.Pause()
}

func TestPlaybackService_SeekValidatesRange(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)

	assert.ErrorIs(t, service.Seek(time.Millisecond), domain.ErrNoRecording)

	service.LoadRecording(oneSecondBuffer())

	assert.ErrorIs(t, service.Seek(-time.Millisecond), domain.ErrInvalidPosition)
	assert.ErrorIs(t, service.Seek(time.Second+time.Millisecond), domain.ErrInvalidPosition)

	require.NoError(t, service.Seek(500*time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, service.State().Position)
}

func TestPlaybackService_SeekPublishesProgress(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, bus := newTestPlaybackService(t)
	service.LoadRecording(oneSecondBuffer())

	var progress domain.PlaybackProgressEvent
	bus.Subscribe(domain.EventPlaybackProgress, func(e domain.Event) {
		progress = e.(domain.PlaybackProgressEvent)
	})

	require.NoError(t, service.Seek(250*time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, progress.State.Position)
}

func TestPlaybackService_AppliesSeekRequestedEvents(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, bus := newTestPlaybackService(t)
	service.LoadRecording(oneSecondBuffer())

	// Scrubbing the static waveform publishes a seek request.
	bus.Publish(domain.NewSeekRequestedEvent(300 * time.Millisecond))

	assert.Equal(t, 300*time.Millisecond, service.State().Position)
}

func TestPlaybackService_StopRewindsWithoutForgetting(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)
	service.LoadRecording(oneSecondBuffer())

	require.NoError(t, service.Seek(400*time.Millisecond))
	service.Stop()

	state := service.State()
	assert.Equal(t, time.Duration(0), state.Position)
	assert.Equal(t, time.Second, state.Duration)
}

func TestPlaybackService_ClearForgetsRecording(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _ := newTestPlaybackService(t)
	service.LoadRecording(oneSecondBuffer())

	service.Clear()

	assert.Equal(t, domain.PlaybackState{}, service.State())
	assert.ErrorIs(t, service.Play(), domain.ErrNoRecording)
}
