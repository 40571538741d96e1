// Package widgets provides custom Fyne widgets for the RecWave application.
package widgets

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/recwave/recwave/internal/domain"
)

// Palette holds the resolved waveform colors.
type Palette struct {
	// Primary paints the played portion of the static waveform and all live picks
	Primary color.RGBA

	// Secondary paints the unplayed portion of the static waveform
	Secondary color.RGBA

	// Background fills the surface before any bars are drawn
	Background color.RGBA
}

// ParsePalette resolves the hex color strings of the given settings. A string
// that fails to parse falls back to the corresponding default, so a corrupt
// preference never yields an invisible waveform.
func ParsePalette(settings domain.DisplaySettings) Palette {
	defaults := domain.DefaultDisplaySettings()

	return Palette{
		Primary:    parseHex(settings.PrimaryColor, defaults.PrimaryColor),
		Secondary:  parseHex(settings.SecondaryColor, defaults.SecondaryColor),
		Background: parseHex(settings.BackgroundColor, defaults.BackgroundColor),
	}
}

// parseHex parses a "#rrggbb" string, retrying with the fallback on failure.
func parseHex(value, fallback string) color.RGBA {
	c, err := colorful.Hex(value)
	if err != nil {
		c, err = colorful.Hex(fallback)
		if err != nil {
			return color.RGBA{A: 255}
		}
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
