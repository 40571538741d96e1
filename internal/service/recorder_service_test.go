package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recwave/recwave/internal/adapter/audio/mock"
	"github.com/recwave/recwave/internal/adapter/eventbus"
	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/logger"
	"github.com/recwave/recwave/internal/testutil"
)

// Helper to create a test recorder service
func newTestRecorderService(t *testing.T) (*RecorderService, *mock.Recorder, *eventbus.SyncEventBus) {
	t.Helper()

	recorder := mock.NewRecorder(8000)
	bus := eventbus.NewSyncEventBus()
	service := NewRecorderService(logger.NewTestLogger(), recorder, bus)

	t.Cleanup(func() {
		require.NoError(t, service.Shutdown())
	})

	return service, recorder, bus
}

// eventCollector records published event types in order.
type eventCollector struct {
	mu    sync.Mutex
	types []domain.EventType
}

func (c *eventCollector) watch(bus *eventbus.SyncEventBus, types ...domain.EventType) {
	for _, eventType := range types {
		bus.Subscribe(eventType, func(e domain.Event) {
			c.mu.Lock()
			c.types = append(c.types, e.Type())
			c.mu.Unlock()
		})
	}
}

func (c *eventCollector) seen() []domain.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.EventType, len(c.types))
	copy(out, c.types)
	return out
}

func TestRecorderService_StartTransitionsToStreaming(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _, bus := newTestRecorderService(t)

	collector := &eventCollector{}
	collector.watch(bus, domain.EventRecordingStarted)

	require.NoError(t, service.Start())
	assert.Equal(t, domain.RecordingStreaming, service.Status())
	assert.Equal(t, []domain.EventType{domain.EventRecordingStarted}, collector.seen())
}

func TestRecorderService_StartWhileStreamingFails(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _, _ := newTestRecorderService(t)

	require.NoError(t, service.Start())
	assert.ErrorIs(t, service.Start(), domain.ErrRecorderBusy)
}

func TestRecorderService_PauseResumeCycle(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _, bus := newTestRecorderService(t)

	collector := &eventCollector{}
	collector.watch(bus, domain.EventRecordingPaused, domain.EventRecordingResumed)

	// Pause before starting is invalid
	assert.ErrorIs(t, service.Pause(), domain.ErrNotRecording)

	require.NoError(t, service.Start())
	require.NoError(t, service.Pause())
	assert.Equal(t, domain.RecordingPaused, service.Status())

	// Pausing twice is invalid, as is resuming while streaming
	assert.ErrorIs(t, service.Pause(), domain.ErrNotRecording)

	require.NoError(t, service.Resume())
	assert.Equal(t, domain.RecordingStreaming, service.Status())
	assert.ErrorIs(t, service.Resume(), domain.ErrNotPaused)

	assert.Equal(t, []domain.EventType{
		domain.EventRecordingPaused,
		domain.EventRecordingResumed,
	}, collector.seen())
}

func TestRecorderService_StopPublishesBuffer(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, recorder, bus := newTestRecorderService(t)

	var stopped domain.RecordingStoppedEvent
	bus.Subscribe(domain.EventRecordingStopped, func(e domain.Event) {
		stopped = e.(domain.RecordingStoppedEvent)
	})

	require.NoError(t, service.Start())
	recorder.Feed([]float64{0.1, -0.4, 0.9, 0.2})
	require.NoError(t, service.Stop())

	assert.Equal(t, domain.RecordingIdle, service.Status())
	assert.GreaterOrEqual(t, len(stopped.Buffer.Samples), 4)
	assert.Equal(t, 8000, stopped.Buffer.SampleRate)

	last, err := service.LastRecording()
	require.NoError(t, err)
	assert.Equal(t, stopped.Buffer.Samples, last.Samples)
}

func TestRecorderService_StopWithoutStartFails(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, _, _ := newTestRecorderService(t)

	assert.ErrorIs(t, service.Stop(), domain.ErrNotRecording)
	_, err := service.LastRecording()
	assert.ErrorIs(t, err, domain.ErrNoRecording)
}

func TestRecorderService_ClearDiscardsSessionAndRecording(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, recorder, bus := newTestRecorderService(t)

	collector := &eventCollector{}
	collector.watch(bus, domain.EventRecordingCleared)

	require.NoError(t, service.Start())
	recorder.Feed([]float64{0.5, 0.5})
	require.NoError(t, service.Clear())

	assert.Equal(t, domain.RecordingIdle, service.Status())
	assert.Equal(t, []domain.EventType{domain.EventRecordingCleared}, collector.seen())

	_, err := service.LastRecording()
	assert.ErrorIs(t, err, domain.ErrNoRecording)
}

func TestRecorderService_AmplitudesReflectCapture(t *testing.T) {
	t.Cleanup(func() { testutil.VerifyNoLeaks(t) })

	service, recorder, _ := newTestRecorderService(t)

	_, ok := service.Amplitudes().Latest()
	assert.False(t, ok, "no amplitude before capture")

	require.NoError(t, service.Start())
	recorder.Feed([]float64{0.2, -0.7, 0.3})

	require.Eventually(t, func() bool {
		value, ok := service.Amplitudes().Latest()
		return ok && value > 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, service.Stop())
}
