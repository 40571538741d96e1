package waveform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeGeometry_PixelRounding(t *testing.T) {
	geom := ComputeGeometry(100.4, 50, 1024, 2.0, 3, 1)

	assert.Equal(t, 201, geom.PixelWidth) // round(100.4 * 2)
	assert.Equal(t, 100, geom.PixelHeight)
	assert.Equal(t, 2.0, geom.DevicePixelRatio)
}

func TestComputeGeometry_HeightRoundedToEven(t *testing.T) {
	geom := ComputeGeometry(100, 50.5, 1024, 1.0, 3, 1)

	assert.Equal(t, 50, geom.PixelHeight)
	assert.Zero(t, geom.PixelHeight%2)
}

func TestComputeGeometry_NarrowViewportWidensBars(t *testing.T) {
	narrow := ComputeGeometry(300, 100, 500, 1.0, 3, 1)
	assert.Equal(t, 4, narrow.BarWidth)

	// No gap: widening would merge adjacent bars, so it is skipped.
	noGap := ComputeGeometry(300, 100, 500, 1.0, 3, 0)
	assert.Equal(t, 3, noGap.BarWidth)

	wide := ComputeGeometry(300, 100, 1024, 1.0, 3, 1)
	assert.Equal(t, 3, wide.BarWidth)
}

func TestComputeGeometry_InvalidRatioFallsBackToOne(t *testing.T) {
	geom := ComputeGeometry(100, 50, 1024, 0, 3, 1)
	assert.Equal(t, 1.0, geom.DevicePixelRatio)
	assert.Equal(t, 100, geom.PixelWidth)
}

func TestGeometry_SlotCount(t *testing.T) {
	tests := []struct {
		name       string
		pixelWidth int
		barWidth   int
		gap        int
		want       int
	}{
		{"typical", 600, 3, 1, 150},
		{"remainder discarded", 601, 3, 1, 150},
		{"narrower than one pitch", 2, 3, 1, 1},
		{"zero width", 0, 3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom := testGeometry(tt.pixelWidth, tt.barWidth, tt.gap)
			assert.Equal(t, tt.want, geom.SlotCount())
		})
	}
}

func TestPointerTime_SeekMapping(t *testing.T) {
	// A click in the middle of a two-minute recording seeks to one minute.
	got := PointerTime(300, 600, 120*time.Second)
	assert.Equal(t, 60*time.Second, got)
}

func TestPointerTime_Clamped(t *testing.T) {
	duration := 90 * time.Second

	assert.Equal(t, time.Duration(0), PointerTime(-10, 600, duration))
	assert.Equal(t, duration, PointerTime(900, 600, duration))
	assert.Equal(t, time.Duration(0), PointerTime(300, 0, duration))
	assert.Equal(t, time.Duration(0), PointerTime(300, 600, 0))
}

func TestBarTime_Boundaries(t *testing.T) {
	geom := testGeometry(100, 3, 1) // pitch 4, 25 slots
	duration := 10 * time.Second

	assert.Equal(t, time.Duration(0), BarTime(0, geom, duration))
	assert.Equal(t, 4*time.Second, BarTime(10, geom, duration))
	assert.Equal(t, time.Duration(0), BarTime(5, geom, 0))
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"seconds only", 9 * time.Second, "00:09"},
		{"minutes and seconds", 65 * time.Second, "01:05"},
		{"exactly one hour", time.Hour, "01:00:00"},
		{"past one hour", time.Hour + time.Minute + time.Second, "01:01:01"},
		{"negative clamped", -5 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.d))
		})
	}
}
