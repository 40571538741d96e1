// Package portaudio captures microphone input through the portaudio library.
package portaudio

import (
	"log/slog"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/recwave/recwave/internal/adapter/audio"
	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
)

// blockSize is the number of frames read from the device per callback.
// 1024 frames at 44.1kHz gives roughly 23ms blocks, frequent enough for a
// smooth live amplitude stream.
const blockSize = 1024

// Recorder reads the default input device and accumulates mono samples.
// One Recorder owns the portaudio runtime; create it once, Close it once.
type Recorder struct {
	logger     *slog.Logger
	sampleRate int
	level      *audio.Level

	mu      sync.Mutex
	running bool
	paused  bool
	samples []float64
	stream  *portaudio.Stream

	stopRead chan struct{}
	readWg   sync.WaitGroup
	closed   bool
}

// NewRecorder initializes the portaudio runtime and prepares a recorder for
// the default input device.
func NewRecorder(logger *slog.Logger, sampleRate int) (*Recorder, error) {
	if sampleRate <= 0 {
		sampleRate = 44100
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, domain.NewCaptureError("Initialize", "default", "portaudio runtime failed to start", err)
	}

	logger.Debug("portaudio initialized", slog.Int("sample_rate", sampleRate))

	return &Recorder{
		logger:     logger,
		sampleRate: sampleRate,
		level:      audio.NewLevel(),
	}, nil
}

// Start opens the default input stream and begins reading blocks.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrSourceClosed
	}
	if r.running {
		return domain.ErrRecorderBusy
	}

	in := make([]float32, blockSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(r.sampleRate), blockSize, in)
	if err != nil {
		return domain.NewCaptureError("Start", "default", "failed to open input stream", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return domain.NewCaptureError("Start", "default", "failed to start input stream", err)
	}

	r.stream = stream
	r.running = true
	r.paused = false
	r.samples = r.samples[:0]
	r.level.Reset()
	r.stopRead = make(chan struct{})

	r.readWg.Add(1)
	go r.readLoop(stream, in, r.stopRead)

	r.logger.Debug("capture started", slog.Int("block_size", blockSize))

	return nil
}

// Pause stops accumulating samples. The device keeps streaming so Resume is
// gapless, but paused blocks are discarded.
func (r *Recorder) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return domain.ErrNotRecording
	}
	r.paused = true
	return nil
}

// Resume continues accumulating samples after Pause.
func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return domain.ErrNotRecording
	}
	r.paused = false
	return nil
}

// Stop closes the input stream and returns everything captured.
func (r *Recorder) Stop() (domain.SampleBuffer, error) {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return domain.SampleBuffer{}, domain.ErrNotRecording
	}
	r.running = false
	stop := r.stopRead
	stream := r.stream
	r.stream = nil
	r.mu.Unlock()

	close(stop)
	r.readWg.Wait()

	if err := stream.Stop(); err != nil {
		r.logger.Warn("input stream stop failed", slog.Any("error", err))
	}
	if err := stream.Close(); err != nil {
		r.logger.Warn("input stream close failed", slog.Any("error", err))
	}

	r.mu.Lock()
	captured := make([]float64, len(r.samples))
	copy(captured, r.samples)
	r.mu.Unlock()

	r.logger.Debug("capture stopped", slog.Int("samples", len(captured)))

	return domain.SampleBuffer{Samples: captured, SampleRate: r.sampleRate}, nil
}

// SampleRate returns the capture rate.
func (r *Recorder) SampleRate() int {
	return r.sampleRate
}

// Amplitudes returns the live amplitude stream.
func (r *Recorder) Amplitudes() ports.AmplitudeSource {
	return r.level
}

// Close stops any active capture and shuts down the portaudio runtime.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	running := r.running
	r.mu.Unlock()

	if running {
		if _, err := r.Stop(); err != nil {
			r.logger.Warn("capture stop during close failed", slog.Any("error", err))
		}
	}

	if err := portaudio.Terminate(); err != nil {
		return domain.NewCaptureError("Close", "default", "portaudio runtime failed to terminate", err)
	}

	return nil
}

// readLoop pulls blocks from the device until the session stops. Each block
// updates the live amplitude; accumulation is skipped while paused.
func (r *Recorder) readLoop(stream *portaudio.Stream, in []float32, stop chan struct{}) {
	defer r.readWg.Done()

	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := stream.Read(); err != nil {
			r.logger.Warn("input stream read failed", slog.Any("error", err))
			return
		}

		var peak float64
		r.mu.Lock()
		paused := r.paused
		for _, s := range in {
			sample := float64(s)
			if !paused {
				r.samples = append(r.samples, sample)
			}
			if abs := math.Abs(sample); abs > peak {
				peak = abs
			}
		}
		r.mu.Unlock()

		if !paused {
			r.level.Store(peak)
		}
	}
}

// Verify that Recorder implements the Recorder interface
var _ ports.Recorder = (*Recorder)(nil)
