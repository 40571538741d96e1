package waveform

import (
	"math"

	"github.com/recwave/recwave/internal/domain"
)

// Extract reduces a sample buffer to one normalized bar per layout slot.
//
// The buffer is partitioned into SlotCount contiguous, approximately
// equal-length chunks; each bar's raw value is the peak absolute sample of
// its chunk (empty chunks yield 0). The sequence is then peak-normalized so
// the tallest bar is exactly 1.0, unless every chunk is silent.
//
// Extract is pure and deterministic and tolerates buffers shorter than the
// slot count. It scans every sample, so callers invoke it through the
// Extractor rather than on the rendering thread.
func Extract(samples []float64, g Geometry) domain.BarSequence {
	slots := g.SlotCount()
	if slots == 0 {
		return domain.BarSequence{}
	}

	bars := make(domain.BarSequence, slots)
	if len(samples) == 0 {
		return bars
	}

	for i := 0; i < slots; i++ {
		// Integer partition keeps chunks within one sample of each other and
		// yields empty chunks when the buffer is shorter than the slot count.
		start := i * len(samples) / slots
		end := (i + 1) * len(samples) / slots

		var peak float64
		for _, s := range samples[start:end] {
			if abs := math.Abs(s); abs > peak {
				peak = abs
			}
		}
		bars[i].Amplitude = peak
	}

	if peak := bars.MaxAmplitude(); peak > 0 {
		for i := range bars {
			bars[i].Amplitude /= peak
		}
	}

	return bars
}
