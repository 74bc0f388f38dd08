package locomotion

// GroundHistory is a fixed-capacity circular buffer of ground samples.
// Index 0 is always the newest sample; pushing ages out the oldest.
type GroundHistory struct {
	samples []bool
	head    int
}

func NewGroundHistory(n int) *GroundHistory {
	if n < 1 {
		n = 1
	}
	return &GroundHistory{samples: make([]bool, n)}
}

// Len is the fixed window length N.
func (h *GroundHistory) Len() int {
	return len(h.samples)
}

// Push admits a new sample and returns the sample that was newest before it.
func (h *GroundHistory) Push(grounded bool) (previous bool) {
	previous = h.samples[h.head]
	h.head = (h.head + 1) % len(h.samples)
	h.samples[h.head] = grounded
	return previous
}

// At returns the sample age i ticks old. Out of range indices read false.
func (h *GroundHistory) At(i int) bool {
	n := len(h.samples)
	if i < 0 || i >= n {
		return false
	}
	return h.samples[(h.head-i+n)%n]
}

// Any reports whether any sample in the window is grounded.
func (h *GroundHistory) Any() bool {
	for _, s := range h.samples {
		if s {
			return true
		}
	}
	return false
}

// Snapshot returns the window newest first.
func (h *GroundHistory) Snapshot() []bool {
	out := make([]bool, len(h.samples))
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}
