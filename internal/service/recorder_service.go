// Package service provides business logic for the RecWave application.
package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
)

// RecorderService drives the capture transport state machine:
//
//	Idle -> Streaming        on Start
//	Streaming <-> Paused     on Pause/Resume
//	Streaming|Paused -> Idle on Stop or Clear
//
// It owns the transition rules and the transport events; the actual device
// work is delegated to the Recorder port. All operations are thread-safe.
type RecorderService struct {
	// Dependencies (injected)
	logger   *slog.Logger
	recorder ports.Recorder
	bus      ports.EventBus

	// State
	mu        sync.RWMutex
	status    domain.RecordingStatus
	startedAt time.Time
	last      domain.SampleBuffer
	hasLast   bool
}

// NewRecorderService creates a new recorder service.
func NewRecorderService(logger *slog.Logger, recorder ports.Recorder, bus ports.EventBus) *RecorderService {
	logger.Debug("recorder service initialized")

	return &RecorderService{
		logger:   logger,
		recorder: recorder,
		bus:      bus,
		status:   domain.RecordingIdle,
	}
}

// Start begins a new capture session. Any previously finished recording is
// kept until Stop replaces it or Clear discards it.
func (s *RecorderService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.RecordingIdle {
		return domain.ErrRecorderBusy
	}

	if err := s.recorder.Start(); err != nil {
		s.logger.Warn("capture start failed", slog.Any("error", err))
		return domain.NewServiceError("RecorderService", "Start", "capture backend refused to start", err)
	}

	s.status = domain.RecordingStreaming
	s.startedAt = time.Now()

	s.logger.Debug("recording started", slog.Int("sample_rate", s.recorder.SampleRate()))
	s.bus.Publish(domain.NewRecordingStartedEvent(s.recorder.SampleRate()))

	return nil
}

// Pause suspends capture. Picks stop being appended; the last rendered frame
// is retained by the live renderer.
func (s *RecorderService) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.RecordingStreaming {
		return domain.ErrNotRecording
	}

	if err := s.recorder.Pause(); err != nil {
		return domain.NewServiceError("RecorderService", "Pause", "capture backend refused to pause", err)
	}

	s.status = domain.RecordingPaused
	s.bus.Publish(domain.NewRecordingPausedEvent(time.Since(s.startedAt)))

	return nil
}

// Resume continues a paused capture.
func (s *RecorderService) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.RecordingPaused {
		return domain.ErrNotPaused
	}

	if err := s.recorder.Resume(); err != nil {
		return domain.NewServiceError("RecorderService", "Resume", "capture backend refused to resume", err)
	}

	s.status = domain.RecordingStreaming
	s.bus.Publish(domain.NewRecordingResumedEvent())

	return nil
}

// Stop ends the session and publishes the finished recording.
func (s *RecorderService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == domain.RecordingIdle {
		return domain.ErrNotRecording
	}

	buffer, err := s.recorder.Stop()
	s.status = domain.RecordingIdle
	if err != nil {
		s.logger.Warn("capture stop failed", slog.Any("error", err))
		return domain.NewServiceError("RecorderService", "Stop", "capture backend failed to stop", err)
	}

	s.last = buffer
	s.hasLast = true

	s.logger.Debug("recording stopped",
		slog.Int("samples", len(buffer.Samples)),
		slog.Duration("duration", buffer.Duration()))
	s.bus.Publish(domain.NewRecordingStoppedEvent(buffer))

	return nil
}

// Clear discards the current session (if any) and the last finished
// recording, returning the transport to Idle.
func (s *RecorderService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.RecordingIdle {
		// Stop the device but discard whatever it captured.
		if _, err := s.recorder.Stop(); err != nil {
			s.logger.Warn("capture stop during clear failed", slog.Any("error", err))
		}
		s.status = domain.RecordingIdle
	}

	s.last = domain.SampleBuffer{}
	s.hasLast = false
	s.bus.Publish(domain.NewRecordingClearedEvent())

	return nil
}

// Status returns the current transport state.
func (s *RecorderService) Status() domain.RecordingStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastRecording returns the most recently finished recording.
func (s *RecorderService) LastRecording() (domain.SampleBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasLast {
		return domain.SampleBuffer{}, domain.ErrNoRecording
	}
	return s.last, nil
}

// Amplitudes exposes the live amplitude stream of the capture backend.
func (s *RecorderService) Amplitudes() ports.AmplitudeSource {
	return s.recorder.Amplitudes()
}

// Shutdown stops any active capture and releases the backend.
func (s *RecorderService) Shutdown() error {
	s.mu.Lock()
	if s.status != domain.RecordingIdle {
		if _, err := s.recorder.Stop(); err != nil {
			s.logger.Warn("capture stop during shutdown failed", slog.Any("error", err))
		}
		s.status = domain.RecordingIdle
	}
	s.mu.Unlock()

	return s.recorder.Close()
}
