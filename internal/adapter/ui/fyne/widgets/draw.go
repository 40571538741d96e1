package widgets

import (
	"image"
	"image/color"
)

// fillBackground paints the whole image with the given color.
func fillBackground(img *image.RGBA, w, h int, c color.RGBA) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawMirroredBar renders one rounded bar mirrored about the horizontal
// center line. amplitude is in [0, 1]; the bar extends amplitude*h/2 pixels
// above and below the center. Bars always get at least one pixel of height so
// silence still reads as a waveform baseline.
func drawMirroredBar(img *image.RGBA, x, barWidth, h int, amplitude float64, rounding int, c color.RGBA) {
	if barWidth <= 0 || h <= 0 {
		return
	}
	if amplitude < 0 {
		amplitude = 0
	}
	if amplitude > 1 {
		amplitude = 1
	}

	half := h / 2
	barHalf := int(amplitude * float64(half))
	if barHalf < 1 {
		barHalf = 1
	}

	top := half - barHalf
	bottom := half + barHalf - 1

	radius := rounding
	if radius > barWidth/2 {
		radius = barWidth / 2
	}
	if radius > barHalf {
		radius = barHalf
	}

	maxX := img.Bounds().Max.X
	maxY := img.Bounds().Max.Y

	for py := top; py <= bottom && py < maxY; py++ {
		if py < 0 {
			continue
		}
		for px := x; px < x+barWidth && px < maxX; px++ {
			if px < 0 {
				continue
			}
			if radius > 0 && !insideRoundedRect(px, py, x, top, barWidth, bottom-top+1, radius) {
				continue
			}
			img.SetRGBA(px, py, c)
		}
	}
}

// insideRoundedRect reports whether (px, py) lies inside the rectangle at
// (rx, ry) with the given size once its corners are rounded by radius.
func insideRoundedRect(px, py, rx, ry, w, h, radius int) bool {
	// Distance into the corner square, zero when outside any corner region.
	var dx, dy int

	if px < rx+radius {
		dx = rx + radius - px
	} else if px >= rx+w-radius {
		dx = px - (rx + w - radius - 1)
	}

	if py < ry+radius {
		dy = ry + radius - py
	} else if py >= ry+h-radius {
		dy = py - (ry + h - radius - 1)
	}

	if dx == 0 || dy == 0 {
		return true
	}

	return dx*dx+dy*dy <= radius*radius+radius
}
