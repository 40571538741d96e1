// Package ports define interfaces for dependency inversion.
package ports

import (
	"github.com/recwave/recwave/internal/domain"
)

// AmplitudeSource exposes the live amplitude stream of an active capture.
// The stream is append-only at capture cadence; the renderer only ever reads
// the most recent value, so implementations keep a small history and may
// drop older samples freely.
//
// Implementations must be thread-safe: Latest is called from the rendering
// thread while the capture backend appends from its own goroutine.
type AmplitudeSource interface {
	// Latest returns the newest unconsumed amplitude in [0, 1].
	// ok is false when the stream is momentarily empty; callers treat that
	// as a zero-height pick, not an error.
	Latest() (value float64, ok bool)
}

// Recorder is the audio capture collaborator. The waveform core never talks
// to a device directly; it drives this interface from the transport state
// machine and consumes the SampleBuffer the recorder hands back on Stop.
type Recorder interface {
	// Start begins a new capture session.
	// Returns domain.ErrRecorderBusy if one is already running.
	Start() error

	// Pause suspends capture without discarding accumulated samples.
	Pause() error

	// Resume continues a paused capture.
	Resume() error

	// Stop ends the session and returns the accumulated recording.
	// The returned buffer is owned by the caller and never mutated again.
	Stop() (domain.SampleBuffer, error)

	// SampleRate returns the capture rate in Hz.
	SampleRate() int

	// Amplitudes returns the live amplitude stream for the current session.
	Amplitudes() AmplitudeSource

	// Close releases the capture backend.
	Close() error
}
