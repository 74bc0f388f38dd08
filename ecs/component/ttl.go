package component

// TTL is a simple frame-based time-to-live component. Entities carrying it
// are destroyed by the TTL system once Frames reaches zero.
type TTL struct {
	// Frames remaining for the TTL (in update ticks)
	Frames int
}

var TTLComponent = NewComponent[TTL]()
