// Package domain defines events for the event-driven architecture.
// Events replace direct callbacks and keep the recorder, playback and
// rendering components loosely coupled.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Recording transport events
	EventRecordingStarted EventType = "recording.started"
	EventRecordingPaused  EventType = "recording.paused"
	EventRecordingResumed EventType = "recording.resumed"
	EventRecordingStopped EventType = "recording.stopped"
	EventRecordingCleared EventType = "recording.cleared"

	// Playback events
	EventPlaybackProgress EventType = "playback.progress"
	EventSeekRequested    EventType = "playback.seek_requested"

	// Waveform events
	EventWaveformReady EventType = "waveform.ready"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// RecordingStartedEvent is published when live capture begins.
type RecordingStartedEvent struct {
	baseEvent
	SampleRate int
}

// Type returns the event type.
func (e RecordingStartedEvent) Type() EventType {
	return EventRecordingStarted
}

// NewRecordingStartedEvent creates a new RecordingStartedEvent.
func NewRecordingStartedEvent(sampleRate int) RecordingStartedEvent {
	return RecordingStartedEvent{
		baseEvent:  newBaseEvent(),
		SampleRate: sampleRate,
	}
}

// RecordingPausedEvent is published when capture is suspended.
type RecordingPausedEvent struct {
	baseEvent
	Elapsed time.Duration
}

// Type returns the event type.
func (e RecordingPausedEvent) Type() EventType {
	return EventRecordingPaused
}

// NewRecordingPausedEvent creates a new RecordingPausedEvent.
func NewRecordingPausedEvent(elapsed time.Duration) RecordingPausedEvent {
	return RecordingPausedEvent{
		baseEvent: newBaseEvent(),
		Elapsed:   elapsed,
	}
}

// RecordingResumedEvent is published when capture resumes after a pause.
type RecordingResumedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e RecordingResumedEvent) Type() EventType {
	return EventRecordingResumed
}

// NewRecordingResumedEvent creates a new RecordingResumedEvent.
func NewRecordingResumedEvent() RecordingResumedEvent {
	return RecordingResumedEvent{baseEvent: newBaseEvent()}
}

// RecordingStoppedEvent is published when capture finishes. It carries the
// decoded recording exactly once; consumers must treat the buffer as
// read-only.
type RecordingStoppedEvent struct {
	baseEvent
	Buffer SampleBuffer
}

// Type returns the event type.
func (e RecordingStoppedEvent) Type() EventType {
	return EventRecordingStopped
}

// NewRecordingStoppedEvent creates a new RecordingStoppedEvent.
func NewRecordingStoppedEvent(buffer SampleBuffer) RecordingStoppedEvent {
	return RecordingStoppedEvent{
		baseEvent: newBaseEvent(),
		Buffer:    buffer,
	}
}

// RecordingClearedEvent is published when the current recording is discarded.
type RecordingClearedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e RecordingClearedEvent) Type() EventType {
	return EventRecordingCleared
}

// NewRecordingClearedEvent creates a new RecordingClearedEvent.
func NewRecordingClearedEvent() RecordingClearedEvent {
	return RecordingClearedEvent{baseEvent: newBaseEvent()}
}

// PlaybackProgressEvent is published as the playback clock advances.
type PlaybackProgressEvent struct {
	baseEvent
	State PlaybackState
}

// Type returns the event type.
func (e PlaybackProgressEvent) Type() EventType {
	return EventPlaybackProgress
}

// NewPlaybackProgressEvent creates a new PlaybackProgressEvent.
func NewPlaybackProgressEvent(state PlaybackState) PlaybackProgressEvent {
	return PlaybackProgressEvent{
		baseEvent: newBaseEvent(),
		State:     state,
	}
}

// SeekRequestedEvent is published when the user scrubs the static waveform.
// The playback collaborator applies the position to its transport.
type SeekRequestedEvent struct {
	baseEvent
	Position time.Duration
}

// Type returns the event type.
func (e SeekRequestedEvent) Type() EventType {
	return EventSeekRequested
}

// NewSeekRequestedEvent creates a new SeekRequestedEvent.
func NewSeekRequestedEvent(position time.Duration) SeekRequestedEvent {
	return SeekRequestedEvent{
		baseEvent: newBaseEvent(),
		Position:  position,
	}
}

// WaveformReadyEvent is published when a background extraction completes and
// its result has been accepted as current.
type WaveformReadyEvent struct {
	baseEvent
	Bars       BarSequence
	Generation uint64
}

// Type returns the event type.
func (e WaveformReadyEvent) Type() EventType {
	return EventWaveformReady
}

// NewWaveformReadyEvent creates a new WaveformReadyEvent.
func NewWaveformReadyEvent(bars BarSequence, generation uint64) WaveformReadyEvent {
	return WaveformReadyEvent{
		baseEvent:  newBaseEvent(),
		Bars:       bars,
		Generation: generation,
	}
}
