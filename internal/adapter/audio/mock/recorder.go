// Package mock provides a synthetic capture backend for tests and demo runs.
package mock

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/recwave/recwave/internal/adapter/audio"
	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
)

// blockInterval is how often the generator produces a block of samples,
// mimicking a real capture callback cadence.
const blockInterval = 20 * time.Millisecond

// Recorder synthesizes a slowly modulated tone instead of reading a device.
// It honors the same transport contract as the real backend: Start begins
// accumulating samples, Pause suspends accumulation, Stop returns everything
// captured so far as an immutable SampleBuffer.
type Recorder struct {
	logger     *slog.Logger
	sampleRate int
	level      *audio.Level

	mu      sync.Mutex
	running bool
	paused  bool
	samples []float64
	phase   float64

	stopGen chan struct{}
	genWg   sync.WaitGroup
	closed  bool
}

// NewRecorder creates a mock recorder at the given sample rate.
func NewRecorder(sampleRate int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Recorder{
		sampleRate: sampleRate,
		level:      audio.NewLevel(),
	}
}

// SetLogger sets the logger for this recorder.
func (r *Recorder) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// Start begins synthesizing samples.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrSourceClosed
	}
	if r.running {
		return domain.ErrRecorderBusy
	}

	r.running = true
	r.paused = false
	r.samples = r.samples[:0]
	r.phase = 0
	r.level.Reset()
	r.stopGen = make(chan struct{})

	r.genWg.Add(1)
	go r.generate(r.stopGen)

	if r.logger != nil {
		r.logger.Debug("mock capture started", slog.Int("sample_rate", r.sampleRate))
	}

	return nil
}

// Pause suspends sample accumulation without ending the session.
func (r *Recorder) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return domain.ErrNotRecording
	}
	r.paused = true
	return nil
}

// Resume continues a paused session.
func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return domain.ErrNotRecording
	}
	r.paused = false
	return nil
}

// Stop ends the session and returns the accumulated recording.
func (r *Recorder) Stop() (domain.SampleBuffer, error) {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return domain.SampleBuffer{}, domain.ErrNotRecording
	}
	r.running = false
	stop := r.stopGen
	r.mu.Unlock()

	close(stop)
	r.genWg.Wait()

	r.mu.Lock()
	captured := make([]float64, len(r.samples))
	copy(captured, r.samples)
	r.mu.Unlock()

	return domain.SampleBuffer{Samples: captured, SampleRate: r.sampleRate}, nil
}

// Feed appends samples directly, bypassing the generator. Tests use it to
// produce deterministic recordings while the transport is running.
func (r *Recorder) Feed(samples []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || r.paused {
		return
	}
	r.samples = append(r.samples, samples...)

	var peak float64
	for _, s := range samples {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}
	r.level.Store(peak)
}

// SampleRate returns the synthetic capture rate.
func (r *Recorder) SampleRate() int {
	return r.sampleRate
}

// Amplitudes returns the live amplitude stream.
func (r *Recorder) Amplitudes() ports.AmplitudeSource {
	return r.level
}

// Close releases the backend. A running session is stopped and discarded.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	running := r.running
	stop := r.stopGen
	r.running = false
	r.mu.Unlock()

	if running {
		close(stop)
	}
	r.genWg.Wait()

	return nil
}

// generate produces tone blocks until the session stops.
func (r *Recorder) generate(stop chan struct{}) {
	defer r.genWg.Done()

	ticker := time.NewTicker(blockInterval)
	defer ticker.Stop()

	blockSize := r.sampleRate / int(time.Second/blockInterval)

	for {
		select {
		case <-stop:
			return

		case <-ticker.C:
			r.mu.Lock()
			if r.paused {
				r.mu.Unlock()
				continue
			}

			var peak float64
			for i := 0; i < blockSize; i++ {
				// A 220Hz tone with a slow amplitude wobble, so the live chart
				// has visible motion.
				envelope := 0.4 + 0.35*math.Sin(r.phase/8000)
				sample := envelope * math.Sin(2*math.Pi*220*r.phase/float64(r.sampleRate))
				r.samples = append(r.samples, sample)
				r.phase++

				if abs := math.Abs(sample); abs > peak {
					peak = abs
				}
			}
			r.mu.Unlock()

			r.level.Store(peak)
		}
	}
}

// Verify that Recorder implements the Recorder interface
var _ ports.Recorder = (*Recorder)(nil)
