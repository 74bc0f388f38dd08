package component

import "github.com/jakecoffman/cp"

// Arrow is the runtime state of a fired teleport arrow.
type Arrow struct {
	// Serial orders arrows by firing time.
	Serial uint64
	Speed  float64
	// Rotation is the in-plane angle observed before the latest collision.
	Rotation float64
	Stuck    bool
	Used     bool

	// Clearance is the free distance above the arrow measured when it stuck;
	// HasCeiling is false when nothing was found above.
	Clearance  float64
	HasCeiling bool

	// Parent is the dynamic body the arrow is attached to, if any.
	Parent      *cp.Body
	LocalOffset cp.Vector
	LocalAngle  float64
}

var ArrowComponent = NewComponent[Arrow]()

// ArrowContact is recorded by the physics system when an arrow first touches
// something and is consumed by the arrow system after the step.
type ArrowContact struct {
	Other       *cp.Body
	OtherEntity uint64
	Point       cp.Vector
}

var ArrowContactComponent = NewComponent[ArrowContact]()
