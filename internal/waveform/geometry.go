// Package waveform implements the waveform computation pipeline: reducing a
// sample buffer to bar heights, running that reduction off the rendering
// thread, and keeping results consistent with the drawing surface geometry.
package waveform

import (
	"fmt"
	"math"
	"time"
)

// MobileBreakpoint is the viewport width (logical pixels) below which bars
// are widened by one pixel to stay legible on narrow screens.
const MobileBreakpoint = 768

// Geometry describes the drawing surface in physical pixels together with
// the bar layout. It is recomputed as a whole on every resize; fields are
// never updated individually.
type Geometry struct {
	// PixelWidth is the surface width in physical pixels
	PixelWidth int

	// PixelHeight is the surface height in physical pixels, always even
	PixelHeight int

	// BarWidth is the width of one bar in pixels
	BarWidth int

	// Gap is the space between adjacent bars in pixels
	Gap int

	// DevicePixelRatio is the logical-to-physical scale factor
	DevicePixelRatio float64
}

// ComputeGeometry derives the surface geometry from the container's layout
// box. viewportWidth is the host window width in logical pixels and drives
// the narrow-screen bar widening (only applied when a gap separates bars,
// otherwise widening would just merge them).
func ComputeGeometry(containerWidth, containerHeight, viewportWidth, devicePixelRatio float64, barWidth, gap int) Geometry {
	if devicePixelRatio <= 0 {
		devicePixelRatio = 1
	}

	if viewportWidth > 0 && viewportWidth < MobileBreakpoint && gap > 0 {
		barWidth++
	}

	pixelWidth := int(math.Round(containerWidth * devicePixelRatio))
	pixelHeight := int(math.Round(containerHeight * devicePixelRatio))
	if pixelHeight%2 != 0 {
		pixelHeight--
	}
	if pixelWidth < 0 {
		pixelWidth = 0
	}
	if pixelHeight < 0 {
		pixelHeight = 0
	}

	return Geometry{
		PixelWidth:       pixelWidth,
		PixelHeight:      pixelHeight,
		BarWidth:         barWidth,
		Gap:              gap,
		DevicePixelRatio: devicePixelRatio,
	}
}

// Pitch returns the repeating horizontal unit: bar width plus gap.
func (g Geometry) Pitch() int {
	return g.BarWidth + g.Gap
}

// SlotCount returns how many bars fit the surface width: floor(width/pitch),
// at least 1 for a positive width and 0 for an empty surface.
func (g Geometry) SlotCount() int {
	if g.PixelWidth <= 0 || g.Pitch() <= 0 {
		return 0
	}
	slots := g.PixelWidth / g.Pitch()
	if slots < 1 {
		slots = 1
	}
	return slots
}

// Valid reports whether the surface has a drawable area.
func (g Geometry) Valid() bool {
	return g.PixelWidth > 0 && g.PixelHeight > 0
}

// PointerTime maps a pointer x offset (physical pixels) to a position within
// the recording: duration * x/pixelWidth, clamped to [0, duration]. It is
// used for both click-to-seek and hover labels.
func PointerTime(x float64, pixelWidth int, duration time.Duration) time.Duration {
	if pixelWidth <= 0 || duration <= 0 {
		return 0
	}
	fraction := x / float64(pixelWidth)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return time.Duration(fraction * float64(duration))
}

// BarTime returns the time boundary of the bar at the given index:
// index * pitch / pixelWidth * duration.
func BarTime(index int, g Geometry, duration time.Duration) time.Duration {
	if g.PixelWidth <= 0 || duration <= 0 || index <= 0 {
		return 0
	}
	fraction := float64(index*g.Pitch()) / float64(g.PixelWidth)
	return time.Duration(fraction * float64(duration))
}

// FormatClock renders a duration as mm:ss, switching to hh:mm:ss past one
// hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
