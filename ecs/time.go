package ecs

// Time carries the timing of the frame being processed. Delta is scaled real
// elapsed time; Unscaled ignores Scale so menus keep working while paused.
type Time struct {
	Delta      float64
	Unscaled   float64
	FixedDelta float64
	Scale      float64
	Frames     uint64
	FixedTicks uint64
}

// Advance records a new frame of real elapsed seconds.
func (t *Time) Advance(elapsed float64) {
	if t == nil {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t.Unscaled = elapsed
	t.Delta = elapsed * t.Scale
	t.Frames++
}
