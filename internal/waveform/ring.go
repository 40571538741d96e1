package waveform

// PickRing holds the live renderer's picks: one amplitude per bar slot,
// positioned oldest to newest across the surface. Appending to a full ring
// evicts the oldest pick, which is what makes the live chart scroll.
//
// The ring is owned by the rendering thread and is not safe for concurrent
// use; callers serialize access themselves.
type PickRing struct {
	picks    []float64
	capacity int
}

// NewPickRing creates a ring that holds at most capacity picks.
// A capacity below 1 is treated as 1.
func NewPickRing(capacity int) *PickRing {
	if capacity < 1 {
		capacity = 1
	}
	return &PickRing{
		picks:    make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a pick at the newest (rightmost) position, evicting the oldest
// pick when the ring is full. Amplitudes are clamped to [0, 1].
func (r *PickRing) Append(amplitude float64) {
	if amplitude < 0 {
		amplitude = 0
	}
	if amplitude > 1 {
		amplitude = 1
	}

	if len(r.picks) == r.capacity {
		copy(r.picks, r.picks[1:])
		r.picks[len(r.picks)-1] = amplitude
		return
	}
	r.picks = append(r.picks, amplitude)
}

// SetCapacity resizes the ring to match a new slot count, keeping the most
// recent picks when shrinking.
func (r *PickRing) SetCapacity(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == r.capacity {
		return
	}

	r.capacity = capacity
	if len(r.picks) > capacity {
		kept := make([]float64, capacity)
		copy(kept, r.picks[len(r.picks)-capacity:])
		r.picks = kept
	}
}

// Len returns the number of picks currently held.
func (r *PickRing) Len() int {
	return len(r.picks)
}

// Capacity returns the maximum number of picks the ring holds.
func (r *PickRing) Capacity() int {
	return r.capacity
}

// Picks returns the picks oldest to newest. The returned slice is the ring's
// backing storage; callers must not retain it across an Append.
func (r *PickRing) Picks() []float64 {
	return r.picks
}

// Last returns the newest pick, if any.
func (r *PickRing) Last() (float64, bool) {
	if len(r.picks) == 0 {
		return 0, false
	}
	return r.picks[len(r.picks)-1], true
}

// Reset discards all picks but keeps the capacity.
func (r *PickRing) Reset() {
	r.picks = r.picks[:0]
}
