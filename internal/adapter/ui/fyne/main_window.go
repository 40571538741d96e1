package fyne

import (
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/recwave/recwave/internal/adapter/ui/fyne/widgets"
	"github.com/recwave/recwave/internal/domain"
)

// Window defaults.
const (
	APPNAME = "RecWave"
	WIDTH   = 900
	HEIGHT  = 420
)

// MainWindow is the main UI window implementing the UIView interface.
// It handles all UI rendering and user interactions.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	recordButton *widget.Button
	pauseButton  *widget.Button
	stopButton   *widget.Button
	playButton   *widget.Button
	clearButton  *widget.Button
	timeLabel    *widget.Label
	hoverLabel   *widget.Label

	// Waveform widgets (exposed for presenter wiring)
	live   *widgets.LiveWave
	static *widgets.StaticWave

	// Lifecycle management
	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window. busy gates static bar drawing
// while the geometry coordinator is recomputing.
func NewMainWindow(app fyneapp.App, settings domain.DisplaySettings, busy func() bool) *MainWindow {
	w := &MainWindow{
		app:    app,
		live:   widgets.NewLiveWave(settings),
		static: widgets.NewStaticWave(settings, busy),
	}

	// Create a window
	w.window = app.NewWindow(APPNAME)

	// Build UI
	w.buildUI()

	// Set window properties
	w.window.Resize(fyneapp.Size{
		Width:  WIDTH,
		Height: HEIGHT,
	})

	return w
}

// LiveWave returns the live waveform widget.
func (w *MainWindow) LiveWave() *widgets.LiveWave {
	return w.live
}

// StaticWave returns the static waveform widget.
func (w *MainWindow) StaticWave() *widgets.StaticWave {
	return w.static
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	// Control buttons
	w.recordButton = widget.NewButtonWithIcon("Record", theme.MediaRecordIcon(), nil)
	w.pauseButton = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.clearButton = widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)

	w.pauseButton.Disable()
	w.stopButton.Disable()
	w.playButton.Disable()

	// Time labels
	w.timeLabel = widget.NewLabel("")
	w.hoverLabel = widget.NewLabel("")

	buttonsHBox := container.NewHBox(
		w.recordButton, w.pauseButton, w.stopButton,
		w.playButton, w.clearButton,
	)
	labelsHBox := container.NewHBox(w.hoverLabel, w.timeLabel)
	controls := container.NewBorder(nil, nil, buttonsHBox, labelsHBox)

	// Live chart above the static waveform, each filling half the window
	waveforms := container.NewGridWithRows(2, w.live, w.static)

	w.window.SetContent(container.NewPadded(
		container.NewBorder(nil, controls, nil, nil, waveforms),
	))
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.recordButton.OnTapped = func() {
		w.presenter.OnRecordClicked()
	}

	w.pauseButton.OnTapped = func() {
		w.presenter.OnPauseClicked()
	}

	w.stopButton.OnTapped = func() {
		w.presenter.OnStopClicked()
	}

	w.playButton.OnTapped = func() {
		w.presenter.OnPlayClicked()
	}

	w.clearButton.OnTapped = func() {
		w.presenter.OnClearClicked()
	}

	// Surface layout changes feed the geometry coordinator. Sizes arrive in
	// logical units; the canvas scale converts them to physical pixels.
	w.static.OnResize(func(size fyneapp.Size) {
		scale := 1.0
		viewport := float64(size.Width)
		if c := w.window.Canvas(); c != nil {
			scale = float64(c.Scale())
			viewport = float64(c.Size().Width)
		}

		w.presenter.OnWaveformResized(float64(size.Width), float64(size.Height), viewport, scale)
	})
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// SetRecordingState updates the transport buttons for the given state.
func (w *MainWindow) SetRecordingState(status domain.RecordingStatus) {
	switch status {
	case domain.RecordingStreaming:
		w.recordButton.Disable()
		w.pauseButton.SetIcon(theme.MediaPauseIcon())
		w.pauseButton.Enable()
		w.stopButton.Enable()
		w.playButton.Disable()

	case domain.RecordingPaused:
		w.recordButton.Disable()
		w.pauseButton.SetIcon(theme.MediaPlayIcon())
		w.pauseButton.Enable()
		w.stopButton.Enable()
		w.playButton.Disable()

	case domain.RecordingIdle:
		w.recordButton.Enable()
		w.pauseButton.SetIcon(theme.MediaPauseIcon())
		w.pauseButton.Disable()
		w.stopButton.Disable()
		w.playButton.Enable()
	}
}

// SetPlayState updates the play/pause button state.
func (w *MainWindow) SetPlayState(playing bool) {
	if playing {
		w.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		w.playButton.SetIcon(theme.MediaPlayIcon())
	}
	w.playButton.Refresh()
}

// SetTimeLabel updates the position/duration display.
func (w *MainWindow) SetTimeLabel(text string) {
	w.timeLabel.SetText(text)
}

// SetHoverLabel updates the pointer hover time display.
func (w *MainWindow) SetHoverLabel(text string) {
	w.hoverLabel.SetText(text)
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
