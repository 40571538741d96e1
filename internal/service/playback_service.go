package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
)

// PlaybackService is the playback clock collaborator. The waveform core only
// reads PlaybackState; this service owns the state, advances it while a
// recording is being played back, and applies seek requests coming from the
// static waveform.
//
// All operations are thread-safe via sync.RWMutex.
type PlaybackService struct {
	// Dependencies (injected)
	logger *slog.Logger
	bus    ports.EventBus

	// State
	mu             sync.RWMutex
	state          domain.PlaybackState
	playing        bool
	updateInterval time.Duration

	// Concurrency control
	stopUpdate    chan struct{}
	updateRunning bool
	updateWg      sync.WaitGroup
	seekSub       domain.SubscriptionID
}

// NewPlaybackService creates a new playback service and subscribes it to
// seek requests from the waveform surface.
func NewPlaybackService(logger *slog.Logger, bus ports.EventBus) *PlaybackService {
	s := &PlaybackService{
		logger:         logger,
		bus:            bus,
		updateInterval: 100 * time.Millisecond,
		stopUpdate:     make(chan struct{}),
	}

	s.seekSub = bus.Subscribe(domain.EventSeekRequested, func(event domain.Event) {
		seek, ok := event.(domain.SeekRequestedEvent)
		if !ok {
			return
		}
		if err := s.Seek(seek.Position); err != nil {
			logger.Warn("seek request rejected", slog.Any("error", err))
		}
	})

	logger.Debug("playback service initialized")

	// Start update routine
	s.startUpdateRoutine()

	return s
}

// LoadRecording installs a finished recording as the playback subject and
// rewinds the clock.
func (s *PlaybackService) LoadRecording(buffer domain.SampleBuffer) {
	s.mu.Lock()
	s.state = domain.PlaybackState{Position: 0, Duration: buffer.Duration()}
	s.playing = false
	state := s.state
	s.mu.Unlock()

	s.logger.Debug("recording loaded for playback", slog.Duration("duration", state.Duration))
	s.bus.Publish(domain.NewPlaybackProgressEvent(state))
}

// Play starts or resumes the clock.
func (s *PlaybackService) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Duration <= 0 {
		return domain.ErrNoRecording
	}
	if s.state.Position >= s.state.Duration {
		s.state.Position = 0
	}
	s.playing = true

	return nil
}

// Pause suspends the clock at the current position.
func (s *PlaybackService) Pause() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// Stop suspends the clock and rewinds to the start.
func (s *PlaybackService) Stop() {
	s.mu.Lock()
	s.playing = false
	s.state.Position = 0
	state := s.state
	s.mu.Unlock()

	s.bus.Publish(domain.NewPlaybackProgressEvent(state))
}

// Seek moves the clock to the given position.
func (s *PlaybackService) Seek(position time.Duration) error {
	s.mu.Lock()

	if s.state.Duration <= 0 {
		s.mu.Unlock()
		return domain.ErrNoRecording
	}
	if position < 0 || position > s.state.Duration {
		s.mu.Unlock()
		return domain.ErrInvalidPosition
	}

	s.state.Position = position
	state := s.state
	s.mu.Unlock()

	s.bus.Publish(domain.NewPlaybackProgressEvent(state))

	return nil
}

// Clear forgets the loaded recording entirely.
func (s *PlaybackService) Clear() {
	s.mu.Lock()
	s.state = domain.PlaybackState{}
	s.playing = false
	s.mu.Unlock()
}

// State returns the current playback clock.
func (s *PlaybackService) State() domain.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsPlaying reports whether the clock is advancing.
func (s *PlaybackService) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playing
}

// Shutdown stops the update routine.
func (s *PlaybackService) Shutdown() error {
	s.mu.Lock()
	if s.updateRunning {
		close(s.stopUpdate)
		s.updateRunning = false
	}
	s.mu.Unlock()

	s.updateWg.Wait()
	s.bus.Unsubscribe(s.seekSub)

	return nil
}

// startUpdateRoutine starts a goroutine that advances the clock and
// publishes progress events while playing.
func (s *PlaybackService) startUpdateRoutine() {
	s.mu.Lock()
	if s.updateRunning {
		s.mu.Unlock()
		return
	}
	s.updateRunning = true
	s.updateWg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.updateWg.Done()
		ticker := time.NewTicker(s.updateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopUpdate:
				return

			case <-ticker.C:
				s.advance()
			}
		}
	}()
}

// advance moves the clock forward one interval and publishes progress.
func (s *PlaybackService) advance() {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}

	s.state.Position += s.updateInterval
	if s.state.Position >= s.state.Duration {
		s.state.Position = s.state.Duration
		s.playing = false
	}
	state := s.state
	s.mu.Unlock()

	s.bus.Publish(domain.NewPlaybackProgressEvent(state))
}
