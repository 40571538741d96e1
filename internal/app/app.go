// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/recwave/recwave/internal/adapter/audio/mock"
	"github.com/recwave/recwave/internal/adapter/audio/portaudio"
	"github.com/recwave/recwave/internal/adapter/eventbus"
	"github.com/recwave/recwave/internal/adapter/repository/memory"
	fyneui "github.com/recwave/recwave/internal/adapter/ui/fyne"
	"github.com/recwave/recwave/internal/domain"
	"github.com/recwave/recwave/internal/logger"
	"github.com/recwave/recwave/internal/ports"
	"github.com/recwave/recwave/internal/service"
	"github.com/recwave/recwave/internal/waveform"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus ports.EventBus
	recorder ports.Recorder

	// Repositories
	settingsRepo ports.SettingsRepository

	// Waveform pipeline
	extractor   *waveform.Extractor
	coordinator *waveform.Coordinator

	// Services
	recorderService *service.RecorderService
	playbackService *service.PlaybackService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// SampleRate is the capture sample rate
	SampleRate int

	// UseMockAudio determines whether to use the synthetic capture backend
	UseMockAudio bool

	// Settings overrides the persisted display settings when non-nil
	Settings *domain.DisplaySettings

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:        "com.recwave.app",
		AppName:      "RecWave",
		SampleRate:   44100,
		UseMockAudio: false,
		LogLevel:     loggerCfg.Level,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	loggerCfg := logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	}
	app.logger = logger.NewLogger(loggerCfg)
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName))

	// Step 3: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 4: Create the capture backend
	if config.UseMockAudio {
		recorder := mock.NewRecorder(config.SampleRate)
		recorder.SetLogger(app.logger.With(slog.String("capture", "mock")))
		app.recorder = recorder
	} else {
		recorder, err := portaudio.NewRecorder(
			app.logger.With(slog.String("capture", "portaudio")),
			config.SampleRate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize capture backend: %w", err)
		}
		app.recorder = recorder
	}

	// Step 5: Create repositories and resolve display settings
	app.settingsRepo = memory.NewSettingsRepository(app.fyneApp.Preferences())

	settings, err := app.settingsRepo.LoadDisplaySettings()
	if err != nil {
		app.logger.Warn("failed to load display settings, using defaults", slog.Any("error", err))
		settings = domain.DefaultDisplaySettings()
	}
	if config.Settings != nil {
		settings = *config.Settings
		if err := app.settingsRepo.SaveDisplaySettings(settings); err != nil {
			app.logger.Warn("failed to persist display settings", slog.Any("error", err))
		}
	}

	// Step 6: Create the waveform pipeline. The coordinator delivers bars to
	// the presenter, which does not exist yet; the closure resolves it at
	// delivery time.
	app.extractor = waveform.NewExtractor(app.logger.With(slog.String("component", "extractor")))
	app.coordinator = waveform.NewCoordinator(
		app.logger.With(slog.String("component", "coordinator")),
		app.extractor,
		app.eventBus,
		settings.BarWidth,
		settings.Gap,
		func(bars domain.BarSequence, geom waveform.Geometry) {
			if app.presenter != nil {
				app.presenter.OnBars(bars, geom)
			}
		},
	)

	// Step 7: Create services (with dependency injection)
	app.recorderService = service.NewRecorderService(
		app.logger.With(slog.String("service", "recorder")),
		app.recorder,
		app.eventBus,
	)

	app.playbackService = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.eventBus,
	)

	// Step 8: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, settings, app.coordinator.Busy)

	// Step 9: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.recorderService,
		app.playbackService,
		app.coordinator,
		app.eventBus,
		app.mainWindow,
		app.mainWindow.LiveWave(),
		app.mainWindow.StaticWave(),
	)

	// Connect presenter to the main window
	app.mainWindow.SetPresenter(app.presenter)

	return app, nil
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("RecWave started", slog.String("version", GetVersionInfo().FullString()))

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() error {
	a.logger.Info("shutting down application")

	// Shutdown UI and presenter first so nothing keeps ticking the widgets
	if a.presenter != nil {
		a.presenter.Shutdown()
	}

	// Shutdown services (in reverse order of creation)
	if a.playbackService != nil {
		if err := a.playbackService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown playback service", slog.Any("error", err))
		}
	}

	if a.recorderService != nil {
		if err := a.recorderService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown recorder service", slog.Any("error", err))
		}
	}

	// Shutdown the waveform pipeline
	if a.coordinator != nil {
		a.coordinator.Close()
	}
	if a.extractor != nil {
		a.extractor.Close()
	}

	// Shutdown the event bus last
	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")

	return nil
}

// GetServices returns the application services, mainly for tests.
func (a *Application) GetServices() (*service.RecorderService, *service.PlaybackService) {
	return a.recorderService, a.playbackService
}

// GetEventBus returns the event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the underlying Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetCoordinator returns the geometry coordinator.
func (a *Application) GetCoordinator() *waveform.Coordinator {
	return a.coordinator
}
