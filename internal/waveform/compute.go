package waveform

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/recwave/recwave/internal/domain"
)

// Result carries one finished extraction back to the rendering thread.
// Generation identifies the request that produced it; Geometry is the
// surface geometry the bars were computed against.
type Result struct {
	Bars       domain.BarSequence
	Generation uint64
	Geometry   Geometry
}

// request is the immutable unit handed to the worker goroutine.
type request struct {
	samples []float64
	geom    Geometry
	gen     uint64
}

// Extractor runs Extract on a dedicated worker goroutine so an O(n) scan
// over the recording never blocks redraws or pointer handling.
//
// Submission is last-wins: at most one request waits in the queue, and a
// newer submission replaces it. There is no cancellation of a computation
// already running; its result is detected as stale by generation and
// discarded on arrival.
type Extractor struct {
	logger *slog.Logger

	requests chan request
	results  chan Result

	// generation is the id of the most recently submitted request; results
	// with an older generation are stale
	generation atomic.Uint64

	// mu protects latest
	mu     sync.RWMutex
	latest domain.BarSequence

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewExtractor creates an extractor and starts its worker goroutine.
func NewExtractor(logger *slog.Logger) *Extractor {
	e := &Extractor{
		logger:   logger,
		requests: make(chan request, 1),
		results:  make(chan Result, 4),
		done:     make(chan struct{}),
	}

	e.wg.Add(1)
	go e.worker()

	return e
}

// Submit queues an extraction of the buffer against the given geometry and
// returns the request's generation. The samples are copied before they cross
// the goroutine boundary, so the caller's buffer is never shared.
//
// Submit never blocks: a request still waiting in the queue is replaced by
// the new one. After Close, submissions are accepted but never computed;
// the caller degrades to an empty waveform.
func (e *Extractor) Submit(buffer domain.SampleBuffer, geom Geometry) uint64 {
	gen := e.generation.Add(1)

	samples := make([]float64, len(buffer.Samples))
	copy(samples, buffer.Samples)

	req := request{samples: samples, geom: geom, gen: gen}
	for {
		select {
		case <-e.done:
			return gen
		case e.requests <- req:
			return gen
		case <-e.requests:
			// Drain the superseded request and retry the send.
		}
	}
}

// Results returns the channel on which finished extractions are delivered.
// Receivers must pass each result through Accept before using it.
func (e *Extractor) Results() <-chan Result {
	return e.results
}

// Accept reports whether the result is still current, i.e. no newer request
// has been submitted since it was computed. A current result is recorded as
// the latest bar sequence; a stale one must be discarded by the caller.
func (e *Extractor) Accept(res Result) bool {
	if res.Generation != e.generation.Load() {
		return false
	}

	e.mu.Lock()
	e.latest = res.Bars
	e.mu.Unlock()

	return true
}

// Latest returns the most recently accepted bar sequence, or an empty one
// when nothing has been accepted yet.
func (e *Extractor) Latest() domain.BarSequence {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest
}

// Generation returns the id of the most recently submitted request.
func (e *Extractor) Generation() uint64 {
	return e.generation.Load()
}

// Close stops the worker goroutine and waits for it to exit.
// Pending results are dropped.
func (e *Extractor) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
	})
	e.wg.Wait()
}

// worker computes extractions one at a time and delivers results.
func (e *Extractor) worker() {
	defer e.wg.Done()

	for {
		select {
		case <-e.done:
			return

		case req := <-e.requests:
			bars := Extract(req.samples, req.geom)

			// Skip delivery when the request was superseded while computing;
			// the receiver would drop it anyway.
			if req.gen != e.generation.Load() {
				if e.logger != nil {
					e.logger.Debug("extraction superseded during compute",
						slog.Uint64("generation", req.gen))
				}
				continue
			}

			res := Result{Bars: bars, Generation: req.gen, Geometry: req.geom}
			select {
			case e.results <- res:
			case <-e.done:
				return
			}
		}
	}
}
