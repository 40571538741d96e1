package widgets

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/waveform"
)

// StaticWave renders a finished recording as peak-normalized bars with a
// two-color playback progress split. Tapping requests a seek; hovering
// reports the time under the pointer.
//
// The widget never computes bars itself. The resize coordinator owns the
// geometry and delivers matching BarSequences through SetBars; while a
// recomputation is in flight the widget draws only the background.
type StaticWave struct {
	widget.BaseWidget

	raster *canvas.Raster

	mu            sync.Mutex
	bars          domain.BarSequence
	geom          waveform.Geometry
	playback      domain.PlaybackState
	palette       Palette
	rounding      int
	cleared       bool
	onlyRecording bool

	busy     func() bool
	onSeek   func(time.Duration)
	onHover  func(position time.Duration, inside bool)
	onResize func(fyne.Size)
}

// NewStaticWave creates a static waveform styled by the given settings.
// busy reports whether a geometry recomputation is in flight; bar drawing is
// suppressed while it returns true.
func NewStaticWave(settings domain.DisplaySettings, busy func() bool) *StaticWave {
	s := &StaticWave{
		palette:       ParsePalette(settings),
		rounding:      max(settings.Rounding, 0),
		onlyRecording: settings.OnlyRecording,
		busy:          busy,
	}

	s.raster = canvas.NewRaster(s.draw)
	s.ExtendBaseWidget(s)

	return s
}

// CreateRenderer implements fyne.Widget.
func (s *StaticWave) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

// MinSize returns a minimal size so the widget expands to fill available space.
func (s *StaticWave) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

// Resize implements fyne.Widget and additionally notifies the resize
// observer so geometry can be recomputed.
func (s *StaticWave) Resize(size fyne.Size) {
	s.BaseWidget.Resize(size)

	s.mu.Lock()
	observer := s.onResize
	s.mu.Unlock()

	if observer != nil {
		observer(size)
	}
}

// OnResize installs the resize observer.
func (s *StaticWave) OnResize(fn func(fyne.Size)) {
	s.mu.Lock()
	s.onResize = fn
	s.mu.Unlock()
}

// OnSeek installs the tap-to-seek callback.
func (s *StaticWave) OnSeek(fn func(time.Duration)) {
	s.mu.Lock()
	s.onSeek = fn
	s.mu.Unlock()
}

// OnHover installs the hover callback. It receives the time under the
// pointer, and inside=false once the pointer leaves the surface.
func (s *StaticWave) OnHover(fn func(position time.Duration, inside bool)) {
	s.mu.Lock()
	s.onHover = fn
	s.mu.Unlock()
}

// SetBars installs a bar sequence together with the geometry it was computed
// for. Receiving bars un-clears the widget.
func (s *StaticWave) SetBars(bars domain.BarSequence, geom waveform.Geometry) {
	s.mu.Lock()
	s.bars = bars
	s.geom = geom
	if len(bars) > 0 {
		s.cleared = false
	}
	s.mu.Unlock()

	s.raster.Refresh()
}

// SetPlayback updates the progress split.
func (s *StaticWave) SetPlayback(state domain.PlaybackState) {
	s.mu.Lock()
	s.playback = state
	s.mu.Unlock()

	s.raster.Refresh()
}

// Clear drops the stored bars and blanks the surface until new bars arrive.
func (s *StaticWave) Clear() {
	s.mu.Lock()
	s.cleared = true
	s.bars = nil
	s.playback = domain.PlaybackState{}
	s.mu.Unlock()

	s.raster.Refresh()
}

// ApplySettings updates the visual configuration.
func (s *StaticWave) ApplySettings(settings domain.DisplaySettings) {
	s.mu.Lock()
	s.palette = ParsePalette(settings)
	s.rounding = max(settings.Rounding, 0)
	s.onlyRecording = settings.OnlyRecording
	s.mu.Unlock()

	s.raster.Refresh()
}

// Tapped implements fyne.Tappable: a tap seeks to the time under the pointer.
func (s *StaticWave) Tapped(event *fyne.PointEvent) {
	s.mu.Lock()
	geom := s.geom
	duration := s.playback.Duration
	seek := s.onSeek
	hasBars := !s.cleared && len(s.bars) > 0
	s.mu.Unlock()

	if seek == nil || !hasBars {
		return
	}

	position := waveform.PointerTime(float64(event.Position.X)*geom.DevicePixelRatio, geom.PixelWidth, duration)
	seek(position)
}

// MouseIn implements desktop.Hoverable.
func (s *StaticWave) MouseIn(event *desktop.MouseEvent) {
	s.reportHover(event.Position)
}

// MouseMoved implements desktop.Hoverable.
func (s *StaticWave) MouseMoved(event *desktop.MouseEvent) {
	s.reportHover(event.Position)
}

// MouseOut implements desktop.Hoverable.
func (s *StaticWave) MouseOut() {
	s.mu.Lock()
	hover := s.onHover
	s.mu.Unlock()

	if hover != nil {
		hover(0, false)
	}
}

func (s *StaticWave) reportHover(pos fyne.Position) {
	s.mu.Lock()
	geom := s.geom
	duration := s.playback.Duration
	hover := s.onHover
	hasBars := !s.cleared && len(s.bars) > 0
	s.mu.Unlock()

	if hover == nil || !hasBars {
		return
	}

	hover(waveform.PointerTime(float64(pos.X)*geom.DevicePixelRatio, geom.PixelWidth, duration), true)
}

// draw is the raster generator function that renders the static waveform.
func (s *StaticWave) draw(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	s.mu.Lock()
	defer s.mu.Unlock()

	fillBackground(img, w, h, s.palette.Background)

	if w == 0 || h == 0 {
		return img
	}
	if s.cleared || s.onlyRecording || len(s.bars) == 0 {
		return img
	}

	// While a resize is being debounced, or when the delivered bars belong
	// to another surface width, the bar layout is transitionally wrong.
	// Draw only the background until a matching result lands.
	if s.busy != nil && s.busy() {
		return img
	}
	if s.geom.PixelWidth != w {
		return img
	}

	pitch := s.geom.Pitch()
	position := s.playback.Position
	duration := s.playback.Duration

	for i, bar := range s.bars {
		x := i * pitch
		if x >= w {
			break
		}

		col := s.palette.Secondary
		if duration > 0 && position > 0 && waveform.BarTime(i, s.geom, duration) <= position {
			col = s.palette.Primary
		}

		drawMirroredBar(img, x, s.geom.BarWidth, h, bar.Amplitude, s.rounding, col)
	}

	return img
}

// Ensure StaticWave implements the required interfaces
var _ fyne.Tappable = (*StaticWave)(nil)
var _ desktop.Hoverable = (*StaticWave)(nil)
