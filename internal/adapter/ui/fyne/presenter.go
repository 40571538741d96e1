// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/recwave/recwave/internal/adapter/ui/fyne/widgets"
	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/ports"
	"github.com/recwave/recwave/internal/service"
	"github.com/recwave/recwave/internal/waveform"
)

// tickInterval is the live renderer frame cadence. The tick throttle inside
// the widget decides which frames actually append a pick.
const tickInterval = 16 * time.Millisecond

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	// Transport state updates
	SetRecordingState(status domain.RecordingStatus)
	SetPlayState(playing bool)

	// Time labels
	SetTimeLabel(text string)
	SetHoverLabel(text string)

	// Notifications
	ShowNotification(title, message string)
}

// Presenter implements the Presenter pattern (MVP architecture).
// It coordinates between services, the waveform pipeline and the UI.
//
// Responsibilities:
// - Subscribe to transport and playback events from the event bus
// - Drive the live renderer tick loop
// - Feed finished recordings into the resize coordinator and playback clock
// - Translate UI commands to service method calls
type Presenter struct {
	// Dependencies
	logger *slog.Logger

	// Services (injected)
	recorderService *service.RecorderService
	playbackService *service.PlaybackService

	// Waveform pipeline (injected)
	coordinator *waveform.Coordinator

	// Event bus for subscriptions
	eventBus ports.EventBus

	// UI
	view   UIView
	live   *widgets.LiveWave
	static *widgets.StaticWave

	// Concurrency control
	stopTickChan chan bool
	shutdownOnce sync.Once
	subs         []domain.SubscriptionID
}

// NewPresenter creates a new presenter and wires the widgets to the pipeline.
func NewPresenter(
	logger *slog.Logger,
	recorderService *service.RecorderService,
	playbackService *service.PlaybackService,
	coordinator *waveform.Coordinator,
	eventBus ports.EventBus,
	view UIView,
	live *widgets.LiveWave,
	static *widgets.StaticWave,
) *Presenter {
	p := &Presenter{
		logger:          logger,
		recorderService: recorderService,
		playbackService: playbackService,
		coordinator:     coordinator,
		eventBus:        eventBus,
		view:            view,
		live:            live,
		static:          static,
		stopTickChan:    make(chan bool, 1),
	}

	// Pointer interactions on the static waveform
	static.OnSeek(p.onSeekTapped)
	static.OnHover(p.onHoverMoved)

	// Subscribe to events
	p.subscribeToEvents()

	// Start the live renderer frame loop
	p.startTickLoop()

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		// Recording transport events
		domain.EventRecordingStarted: p.onRecordingStarted,
		domain.EventRecordingPaused:  p.onRecordingPaused,
		domain.EventRecordingResumed: p.onRecordingResumed,
		domain.EventRecordingStopped: p.onRecordingStopped,
		domain.EventRecordingCleared: p.onRecordingCleared,

		// Playback events
		domain.EventPlaybackProgress: p.onPlaybackProgress,
	}

	for eventType, handler := range subscriptions {
		p.subs = append(p.subs, p.eventBus.Subscribe(eventType, handler))
	}
}

// OnBars is the resize coordinator delivery callback: a freshly extracted
// bar sequence together with the geometry it was computed for.
func (p *Presenter) OnBars(bars domain.BarSequence, geom waveform.Geometry) {
	p.static.SetBars(bars, geom)
}

// OnWaveformResized handles a layout change of the static waveform surface.
// Sizes are logical units; scale converts them to physical pixels.
func (p *Presenter) OnWaveformResized(width, height, viewportWidth, scale float64) {
	p.coordinator.Invalidate(width, height, viewportWidth, scale)
	p.static.Refresh()
}

// Event handlers

func (p *Presenter) onRecordingStarted(event domain.Event) {
	p.live.SetSource(p.recorderService.Amplitudes())
	p.live.SetStatus(domain.RecordingStreaming)
	p.view.SetRecordingState(domain.RecordingStreaming)
}

func (p *Presenter) onRecordingPaused(event domain.Event) {
	p.live.SetStatus(domain.RecordingPaused)
	p.view.SetRecordingState(domain.RecordingPaused)
}

func (p *Presenter) onRecordingResumed(event domain.Event) {
	p.live.SetStatus(domain.RecordingStreaming)
	p.view.SetRecordingState(domain.RecordingStreaming)
}

func (p *Presenter) onRecordingStopped(event domain.Event) {
	e, ok := event.(domain.RecordingStoppedEvent)
	if !ok {
		return
	}

	p.live.SetStatus(domain.RecordingIdle)
	p.view.SetRecordingState(domain.RecordingIdle)

	p.coordinator.SetBuffer(e.Buffer)
	p.playbackService.LoadRecording(e.Buffer)

	p.view.SetTimeLabel(fmt.Sprintf("%s / %s",
		waveform.FormatClock(0), waveform.FormatClock(e.Buffer.Duration())))
}

func (p *Presenter) onRecordingCleared(event domain.Event) {
	p.live.Reset()
	p.live.SetStatus(domain.RecordingIdle)
	p.static.Clear()
	p.coordinator.Clear()
	p.playbackService.Clear()

	p.view.SetRecordingState(domain.RecordingIdle)
	p.view.SetPlayState(false)
	p.view.SetTimeLabel("")
	p.view.SetHoverLabel("")
}

func (p *Presenter) onPlaybackProgress(event domain.Event) {
	e, ok := event.(domain.PlaybackProgressEvent)
	if !ok {
		return
	}

	p.static.SetPlayback(e.State)
	p.view.SetPlayState(p.playbackService.IsPlaying())
	p.view.SetTimeLabel(fmt.Sprintf("%s / %s",
		waveform.FormatClock(e.State.Position), waveform.FormatClock(e.State.Duration)))
}

// Pointer handlers

func (p *Presenter) onSeekTapped(position time.Duration) {
	p.eventBus.Publish(domain.NewSeekRequestedEvent(position))
}

func (p *Presenter) onHoverMoved(position time.Duration, inside bool) {
	if !inside {
		p.view.SetHoverLabel("")
		return
	}
	p.view.SetHoverLabel(waveform.FormatClock(position))
}

// startTickLoop drives the live renderer at the frame cadence. The loop runs
// for the presenter's whole lifetime; Tick is a no-op outside streaming.
func (p *Presenter) startTickLoop() {
	ticker := time.NewTicker(tickInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.live.Tick()
			case <-p.stopTickChan:
				return
			}
		}
	}()
}

// UI Command handlers (called by UI)

// OnRecordClicked handles the record button click.
func (p *Presenter) OnRecordClicked() {
	if err := p.recorderService.Start(); err != nil {
		p.logger.Error("record failed", slog.Any("error", err))
		p.view.ShowNotification("Recording Error",
			fmt.Sprintf("Failed to start recording: %v", err))
	}
}

// OnPauseClicked toggles between paused and streaming capture.
func (p *Presenter) OnPauseClicked() {
	var err error
	switch p.recorderService.Status() {
	case domain.RecordingStreaming:
		err = p.recorderService.Pause()
	case domain.RecordingPaused:
		err = p.recorderService.Resume()
	default:
		return
	}

	if err != nil {
		p.logger.Error("pause/resume failed", slog.Any("error", err))
		p.view.ShowNotification("Recording Error",
			fmt.Sprintf("Failed to pause recording: %v", err))
	}
}

// OnStopClicked handles the stop button click.
func (p *Presenter) OnStopClicked() {
	if err := p.recorderService.Stop(); err != nil {
		p.logger.Error("stop failed", slog.Any("error", err))
		p.view.ShowNotification("Recording Error",
			fmt.Sprintf("Failed to stop recording: %v", err))
	}
}

// OnClearClicked discards the current recording and blanks both waveforms.
func (p *Presenter) OnClearClicked() {
	if err := p.recorderService.Clear(); err != nil {
		p.logger.Error("clear failed", slog.Any("error", err))
	}
}

// OnPlayClicked toggles playback of the finished recording.
func (p *Presenter) OnPlayClicked() {
	if p.playbackService.IsPlaying() {
		p.playbackService.Pause()
		p.view.SetPlayState(false)
		return
	}

	if err := p.playbackService.Play(); err != nil {
		p.logger.Error("play failed", slog.Any("error", err))
		p.view.ShowNotification("Playback Error",
			fmt.Sprintf("Failed to start playback: %v", err))
		return
	}
	p.view.SetPlayState(true)
}

// Shutdown cleans up resources.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		close(p.stopTickChan)

		for _, id := range p.subs {
			p.eventBus.Unsubscribe(id)
		}
	})
}
