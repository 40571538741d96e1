// Package main is the production entry point for RecWave.
//
// RecWave is a voice-recorder waveform visualizer with clean architecture:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
//
// Build:
//
//	go build -o build/recwave ./cmd
//
// Run:
//
//	./build/recwave [--mock] [--bar-width N] [--gap N] ...
package main

import (
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/recwave/recwave/internal/app"
	"github.com/recwave/recwave/internal/domain"
)

func main() {
	defaults := domain.DefaultDisplaySettings()

	var (
		mock        = flag.Bool("mock", false, "use the synthetic capture backend instead of the microphone")
		sampleRate  = flag.Int("sample-rate", 44100, "capture sample rate in Hz")
		barWidth    = flag.Int("bar-width", defaults.BarWidth, "waveform bar width in pixels")
		gap         = flag.Int("gap", defaults.Gap, "space between bars in pixels")
		rounding    = flag.Int("rounding", defaults.Rounding, "bar corner radius in pixels")
		speed       = flag.Int("speed", defaults.Speed, "live renderer tick divisor (higher is slower)")
		animate     = flag.Bool("animate-pick", defaults.AnimateCurrentPick, "emphasize the newest live pick")
		onlyLive    = flag.Bool("only-recording", defaults.OnlyRecording, "show only the live chart, never the static waveform")
		primary     = flag.String("primary-color", defaults.PrimaryColor, "played portion color (#rrggbb)")
		secondary   = flag.String("secondary-color", defaults.SecondaryColor, "unplayed portion color (#rrggbb)")
		background  = flag.String("background-color", defaults.BackgroundColor, "surface background color (#rrggbb)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	settings := domain.DisplaySettings{
		BarWidth:           *barWidth,
		Gap:                *gap,
		Rounding:           *rounding,
		Speed:              *speed,
		AnimateCurrentPick: *animate,
		OnlyRecording:      *onlyLive,
		PrimaryColor:       *primary,
		SecondaryColor:     *secondary,
		BackgroundColor:    *background,
	}

	config := app.DefaultConfig()
	config.UseMockAudio = *mock
	config.SampleRate = *sampleRate
	config.Settings = &settings

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		fmt.Println("\nShutting down...")
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
		fmt.Println("Shutdown complete")
	}()

	// Run application (blocks until the window closed)
	application.Run()
}
