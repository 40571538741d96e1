package widgets

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recwave/recwave/internal/domain"
)

func TestParsePalette_ValidColors(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.PrimaryColor = "#ff0000"
	settings.SecondaryColor = "#00ff00"
	settings.BackgroundColor = "#0000ff"

	palette := ParsePalette(settings)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, palette.Primary)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, palette.Secondary)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, palette.Background)
}

func TestParsePalette_InvalidColorFallsBackToDefault(t *testing.T) {
	settings := domain.DefaultDisplaySettings()
	settings.PrimaryColor = "not-a-color"

	palette := ParsePalette(settings)
	want := ParsePalette(domain.DefaultDisplaySettings())

	assert.Equal(t, want.Primary, palette.Primary)
	assert.Equal(t, want.Secondary, palette.Secondary)
}
