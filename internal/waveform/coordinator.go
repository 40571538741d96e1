package waveform

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
)

// resizeQuiet is the trailing-edge debounce window for resize signals.
// Continuous container dragging collapses into a single recomputation once
// the surface has been quiet this long.
const resizeQuiet = 150 * time.Millisecond

// BarsFunc receives the accepted bar sequence together with the geometry it
// was computed against.
type BarsFunc func(bars domain.BarSequence, geom Geometry)

// Coordinator owns the surface geometry and keeps extraction results
// consistent with it. Resize signals are debounced; each recomputation
// re-submits the current recording against the new geometry, and any result
// computed against an older geometry or superseded generation is dropped
// before it can reach the surface.
type Coordinator struct {
	logger    *slog.Logger
	extractor *Extractor
	bus       ports.EventBus
	onBars    BarsFunc

	// debounced wraps the geometry recomputation
	debounced func(func())

	barWidth int
	gap      int

	// mu protects everything below
	mu         sync.Mutex
	geom       Geometry
	buffer     domain.SampleBuffer
	hasBuffer  bool
	resizing   bool
	processing bool
	pendingGen uint64

	// pending layout box, captured on every Invalidate and consumed by the
	// debounced recomputation
	pendingWidth    float64
	pendingHeight   float64
	pendingViewport float64
	pendingRatio    float64

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewCoordinator creates a coordinator around the given extractor.
// onBars is invoked (from the coordinator's goroutine) whenever a result is
// accepted or the waveform is cleared; bus may be nil when no one needs the
// waveform.ready event.
func NewCoordinator(logger *slog.Logger, extractor *Extractor, bus ports.EventBus, barWidth, gap int, onBars BarsFunc) *Coordinator {
	c := &Coordinator{
		logger:    logger,
		extractor: extractor,
		bus:       bus,
		onBars:    onBars,
		debounced: debounce.New(resizeQuiet),
		barWidth:  barWidth,
		gap:       gap,
		done:      make(chan struct{}),
	}

	c.wg.Add(1)
	go c.resultLoop()

	return c
}

// Invalidate records a new layout box and schedules a debounced geometry
// recomputation. Rendering against the old geometry is suppressed until the
// recomputation (and any re-extraction it triggers) settles.
func (c *Coordinator) Invalidate(containerWidth, containerHeight, viewportWidth, devicePixelRatio float64) {
	c.mu.Lock()
	c.resizing = true
	c.pendingWidth = containerWidth
	c.pendingHeight = containerHeight
	c.pendingViewport = viewportWidth
	c.pendingRatio = devicePixelRatio
	c.mu.Unlock()

	c.debounced(c.recompute)
}

// recompute derives the new geometry and re-submits the current recording
// against it.
func (c *Coordinator) recompute() {
	c.mu.Lock()

	geom := ComputeGeometry(c.pendingWidth, c.pendingHeight, c.pendingViewport, c.pendingRatio, c.barWidth, c.gap)
	c.geom = geom
	c.resizing = false

	if c.hasBuffer && geom.Valid() {
		c.pendingGen = c.extractor.Submit(c.buffer, geom)
		c.processing = true
		c.mu.Unlock()

		if c.logger != nil {
			c.logger.Debug("geometry recomputed, extraction resubmitted",
				slog.Int("pixel_width", geom.PixelWidth),
				slog.Int("pixel_height", geom.PixelHeight),
				slog.Uint64("generation", c.pendingGen))
		}
		return
	}

	c.processing = false
	c.mu.Unlock()
}

// SetBuffer installs a finished recording and submits its extraction against
// the current geometry, when one exists.
func (c *Coordinator) SetBuffer(buffer domain.SampleBuffer) {
	c.mu.Lock()
	c.buffer = buffer
	c.hasBuffer = true

	if c.geom.Valid() {
		c.pendingGen = c.extractor.Submit(buffer, c.geom)
		c.processing = true
	}
	c.mu.Unlock()
}

// Clear discards the recording and empties the rendered waveform.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	c.buffer = domain.SampleBuffer{}
	c.hasBuffer = false
	c.processing = false
	geom := c.geom
	cb := c.onBars
	c.mu.Unlock()

	if cb != nil {
		cb(domain.BarSequence{}, geom)
	}
}

// Busy reports whether the geometry is transitionally invalid: a resize is
// being debounced or an extraction for the current geometry has not landed
// yet. Renderers skip bar drawing while Busy.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resizing || c.processing
}

// Geometry returns the current surface geometry.
func (c *Coordinator) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geom
}

// Close stops the result loop. The extractor is owned by the caller and
// closed separately.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
}

// resultLoop receives finished extractions, drops stale ones, and forwards
// accepted bars to the renderer.
func (c *Coordinator) resultLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return

		case res := <-c.extractor.Results():
			if !c.extractor.Accept(res) {
				if c.logger != nil {
					c.logger.Debug("stale extraction dropped",
						slog.Uint64("generation", res.Generation))
				}
				continue
			}

			c.mu.Lock()
			if res.Geometry != c.geom {
				// Accepted by generation but the surface moved on; a fresh
				// submission is already pending.
				c.mu.Unlock()
				continue
			}
			if res.Generation == c.pendingGen {
				c.processing = false
			}
			cb := c.onBars
			c.mu.Unlock()

			if cb != nil {
				cb(res.Bars, res.Geometry)
			}
			if c.bus != nil {
				c.bus.Publish(domain.NewWaveformReadyEvent(res.Bars, res.Generation))
			}
		}
	}
}
