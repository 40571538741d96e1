// Package audio provides shared pieces for the capture adapters.
package audio

import (
	"sync"

	"github.com/recwave/recwave/internal/ports"
)

// Level is the live amplitude stream handed to the renderer: the capture
// backend stores the newest block peak, the rendering thread reads it each
// tick. Older values are intentionally dropped; the live chart only ever
// shows the most recent amplitude.
type Level struct {
	mu    sync.RWMutex
	value float64
	set   bool
}

// NewLevel creates an empty amplitude level.
func NewLevel() *Level {
	return &Level{}
}

// Store records the newest amplitude, clamped to [0, 1].
func (l *Level) Store(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	l.mu.Lock()
	l.value = value
	l.set = true
	l.mu.Unlock()
}

// Latest implements ports.AmplitudeSource.
func (l *Level) Latest() (float64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.set
}

// Reset empties the stream, e.g. between capture sessions.
func (l *Level) Reset() {
	l.mu.Lock()
	l.value = 0
	l.set = false
	l.mu.Unlock()
}

// Verify that Level implements the AmplitudeSource interface
var _ ports.AmplitudeSource = (*Level)(nil)
