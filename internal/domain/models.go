// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the RecWave waveform recorder.
package domain

import (
	"time"
)

// SampleBuffer is a fully captured recording: one channel of signed float
// samples in [-1, 1]. It is created once when a recording finishes and must
// be treated as immutable by everything that borrows it.
type SampleBuffer struct {
	// Samples is the ordered sequence of channel-0 samples
	Samples []float64

	// SampleRate is the capture rate in Hz
	SampleRate int
}

// Duration returns the length of the recording in wall-clock time.
func (b SampleBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 || len(b.Samples) == 0 {
		return 0
	}
	seconds := float64(len(b.Samples)) / float64(b.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Empty reports whether the buffer holds no samples.
func (b SampleBuffer) Empty() bool {
	return len(b.Samples) == 0
}

// Bar is a single rendering-ready waveform unit.
type Bar struct {
	// Amplitude is the normalized bar height in [0, 1]
	Amplitude float64
}

// BarSequence is an ordered list of bars. Its length is determined by the
// surface width and bar pitch, never by the sample count.
type BarSequence []Bar

// MaxAmplitude returns the largest amplitude in the sequence, or 0 when empty.
func (s BarSequence) MaxAmplitude() float64 {
	var peak float64
	for _, b := range s {
		if b.Amplitude > peak {
			peak = b.Amplitude
		}
	}
	return peak
}

// PlaybackState is the playback clock supplied by the transport collaborator.
// The waveform core only ever reads it.
type PlaybackState struct {
	// Position is the current playback position within the recording
	Position time.Duration

	// Duration is the total length of the recording
	Duration time.Duration
}

// Progress returns the played fraction in [0, 1]. A zero duration means
// nothing is considered played.
func (p PlaybackState) Progress() float64 {
	if p.Duration <= 0 {
		return 0
	}
	progress := float64(p.Position) / float64(p.Duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// RecordingStatus represents the live capture transport state.
type RecordingStatus int

const (
	// RecordingIdle indicates no recording is in progress
	RecordingIdle RecordingStatus = iota

	// RecordingStreaming indicates capture is running and picks are appended
	RecordingStreaming

	// RecordingPaused indicates capture is suspended; the last frame is retained
	RecordingPaused
)

// String returns a human-readable representation of the recording status.
func (s RecordingStatus) String() string {
	switch s {
	case RecordingIdle:
		return "idle"
	case RecordingStreaming:
		return "streaming"
	case RecordingPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// DisplaySettings contain the user-tunable waveform appearance options.
type DisplaySettings struct {
	// BarWidth is the width of a single bar in pixels
	BarWidth int

	// Gap is the space between adjacent bars in pixels
	Gap int

	// Rounding is the bar corner radius in pixels (clamped to half the bar width)
	Rounding int

	// Speed is the live renderer tick divisor (a pick is appended every Speed ticks)
	Speed int

	// AnimateCurrentPick enables the emphasis treatment on the newest live pick
	AnimateCurrentPick bool

	// OnlyRecording suppresses static rendering and progress entirely
	OnlyRecording bool

	// PrimaryColor is the played portion color as a hex string (e.g. "#1a6ef5")
	PrimaryColor string

	// SecondaryColor is the unplayed portion color as a hex string
	SecondaryColor string

	// BackgroundColor is the surface background as a hex string
	BackgroundColor string
}

// DefaultDisplaySettings returns the settings used when nothing is saved.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		BarWidth:           3,
		Gap:                1,
		Rounding:           2,
		Speed:              3,
		AnimateCurrentPick: true,
		OnlyRecording:      false,
		PrimaryColor:       "#1a6ef5",
		SecondaryColor:     "#8ab2f2",
		BackgroundColor:    "#10131a",
	}
}
