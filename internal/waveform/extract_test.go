package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to build a geometry without the resize machinery.
func testGeometry(pixelWidth, barWidth, gap int) Geometry {
	return Geometry{
		PixelWidth:       pixelWidth,
		PixelHeight:      200,
		BarWidth:         barWidth,
		Gap:              gap,
		DevicePixelRatio: 1,
	}
}

func TestExtract_BarCountMatchesSlots(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = math.Sin(float64(i) / 10)
	}

	tests := []struct {
		name       string
		pixelWidth int
		barWidth   int
		gap        int
		wantBars   int
	}{
		{"typical surface", 600, 3, 1, 150},
		{"no gap", 100, 2, 0, 50},
		{"pitch wider than surface", 2, 3, 1, 1},
		{"zero width", 0, 3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := Extract(samples, testGeometry(tt.pixelWidth, tt.barWidth, tt.gap))
			assert.Equal(t, tt.wantBars, len(bars))
		})
	}
}

func TestExtract_AmplitudesNormalized(t *testing.T) {
	samples := make([]float64, 500)
	for i := range samples {
		samples[i] = 0.3 * math.Sin(float64(i)/7)
	}

	bars := Extract(samples, testGeometry(400, 3, 1))
	require.NotEmpty(t, bars)

	var sawFullHeight bool
	for _, b := range bars {
		assert.GreaterOrEqual(t, b.Amplitude, 0.0)
		assert.LessOrEqual(t, b.Amplitude, 1.0)
		if b.Amplitude == 1.0 {
			sawFullHeight = true
		}
	}

	// Peak normalization: the tallest bar always reaches full height.
	assert.True(t, sawFullHeight, "expected at least one bar at amplitude 1.0")
}

func TestExtract_SilentBufferYieldsZeroBars(t *testing.T) {
	samples := make([]float64, 300)

	bars := Extract(samples, testGeometry(200, 3, 1))
	require.Equal(t, 50, len(bars))

	for _, b := range bars {
		assert.Zero(t, b.Amplitude)
	}
}

func TestExtract_EmptyBufferYieldsZeroBars(t *testing.T) {
	bars := Extract(nil, testGeometry(200, 3, 1))
	require.Equal(t, 50, len(bars))

	for _, b := range bars {
		assert.Zero(t, b.Amplitude)
	}
}

func TestExtract_BufferShorterThanSlots(t *testing.T) {
	// 3 samples across 50 slots: most chunks are empty.
	samples := []float64{0.2, -0.8, 0.4}

	bars := Extract(samples, testGeometry(200, 3, 1))
	require.Equal(t, 50, len(bars))

	var nonZero int
	for _, b := range bars {
		assert.GreaterOrEqual(t, b.Amplitude, 0.0)
		assert.LessOrEqual(t, b.Amplitude, 1.0)
		if b.Amplitude > 0 {
			nonZero++
		}
	}
	assert.Equal(t, 3, nonZero)
}

func TestExtract_UsesChunkPeakNotAverage(t *testing.T) {
	// Two chunks: the second contains a single negative spike that must win.
	samples := []float64{0.5, 0.5, 0.1, -1.0}

	bars := Extract(samples, testGeometry(8, 3, 1))
	require.Equal(t, 2, len(bars))

	assert.InDelta(t, 0.5, bars[0].Amplitude, 1e-12)
	assert.Equal(t, 1.0, bars[1].Amplitude)
}

func TestExtract_Deterministic(t *testing.T) {
	samples := make([]float64, 777)
	for i := range samples {
		samples[i] = math.Sin(float64(i)/3) * math.Cos(float64(i)/11)
	}
	geom := testGeometry(300, 2, 2)

	first := Extract(samples, geom)
	second := Extract(samples, geom)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Amplitude, second[i].Amplitude)
	}
}
