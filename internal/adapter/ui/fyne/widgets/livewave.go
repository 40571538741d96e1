package widgets

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
	"github.com/recwave/recwave/internal/waveform"
)

// emphasisScale is how much taller the newest pick is drawn on emphasized
// frames.
const emphasisScale = 1.25

// LiveWave is the scrolling waveform shown while audio is being captured.
// New picks enter on the right; older picks shift left one pitch per accepted
// tick and fall off the left edge.
//
// The widget is driven externally: the presenter calls Tick at the frame
// rate, and the tick throttle decides which frames actually sample the
// amplitude stream.
type LiveWave struct {
	widget.BaseWidget

	raster *canvas.Raster

	mu      sync.Mutex
	ring    *waveform.PickRing
	status  domain.RecordingStatus
	source  ports.AmplitudeSource
	palette Palette

	barWidth int
	gap      int
	rounding int
	speed    int
	animate  bool

	tickCount int
	phase     uint64
}

// NewLiveWave creates a live waveform styled by the given settings.
func NewLiveWave(settings domain.DisplaySettings) *LiveWave {
	l := &LiveWave{
		ring:   waveform.NewPickRing(1),
		status: domain.RecordingIdle,
	}
	l.applyLocked(settings)

	l.raster = canvas.NewRaster(l.draw)
	l.ExtendBaseWidget(l)

	return l
}

// CreateRenderer implements fyne.Widget.
func (l *LiveWave) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.raster)
}

// MinSize returns a minimal size so the widget expands to fill available space.
func (l *LiveWave) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// SetStatus moves the live transport state. Entering Idle keeps the drawn
// picks so a stopped session stays visible until the next one starts.
func (l *LiveWave) SetStatus(status domain.RecordingStatus) {
	l.mu.Lock()
	if status == domain.RecordingStreaming && l.status == domain.RecordingIdle {
		// A fresh session starts from an empty chart.
		l.ring.Reset()
		l.tickCount = 0
		l.phase = 0
	}
	l.status = status
	l.mu.Unlock()

	l.raster.Refresh()
}

// SetSource installs the amplitude stream to sample on accepted ticks.
func (l *LiveWave) SetSource(source ports.AmplitudeSource) {
	l.mu.Lock()
	l.source = source
	l.mu.Unlock()
}

// ApplySettings updates the visual configuration.
func (l *LiveWave) ApplySettings(settings domain.DisplaySettings) {
	l.mu.Lock()
	l.applyLocked(settings)
	l.mu.Unlock()

	l.raster.Refresh()
}

// applyLocked installs settings. Must be called with l.mu held (or before
// the widget is shared).
func (l *LiveWave) applyLocked(settings domain.DisplaySettings) {
	l.barWidth = max(settings.BarWidth, 1)
	l.gap = max(settings.Gap, 0)
	l.rounding = max(settings.Rounding, 0)
	l.speed = max(settings.Speed, 1)
	l.animate = settings.AnimateCurrentPick
	l.palette = ParsePalette(settings)
}

// Tick advances the throttle. Every speed-th call while streaming samples the
// amplitude stream, appends a pick and refreshes the surface. Returns whether
// this tick was accepted.
func (l *LiveWave) Tick() bool {
	l.mu.Lock()

	if l.status != domain.RecordingStreaming {
		l.mu.Unlock()
		return false
	}

	l.tickCount++
	if l.tickCount < l.speed {
		l.mu.Unlock()
		return false
	}
	l.tickCount = 0

	var amplitude float64
	if l.source != nil {
		if latest, ok := l.source.Latest(); ok {
			amplitude = latest
		}
	}

	l.ring.Append(amplitude)
	l.phase++
	l.mu.Unlock()

	l.raster.Refresh()

	return true
}

// Reset empties the chart, e.g. after Clear.
func (l *LiveWave) Reset() {
	l.mu.Lock()
	l.ring.Reset()
	l.tickCount = 0
	l.phase = 0
	l.mu.Unlock()

	l.raster.Refresh()
}

// draw is the raster generator function that renders the live chart.
func (l *LiveWave) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	l.mu.Lock()
	defer l.mu.Unlock()

	fillBackground(img, w, h, l.palette.Background)

	if w == 0 || h == 0 {
		return img
	}
	if l.status == domain.RecordingIdle && l.ring.Len() == 0 {
		return img
	}

	pitch := l.barWidth + l.gap
	slots := w / pitch
	if slots < 1 {
		slots = 1
	}
	l.ring.SetCapacity(slots)

	picks := l.ring.Picks()
	n := len(picks)

	for i, amplitude := range picks {
		// Picks hug the right edge; the newest occupies the rightmost slot.
		x := w - (n-i)*pitch

		if l.animate && i == n-1 && l.status == domain.RecordingStreaming && l.phase%2 == 0 {
			amplitude = min(amplitude*emphasisScale, 1)
		}

		drawMirroredBar(img, x, l.barWidth, h, amplitude, l.rounding, l.palette.Primary)
	}

	return img
}
