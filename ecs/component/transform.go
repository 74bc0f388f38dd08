package component

// Transform is an entity's world placement. Rotation is the in-plane angle
// used by Chipmunk; Yaw and Pitch orient first-person views and arrows.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	Rotation float64
	Yaw      float64
	Pitch    float64
}

var TransformComponent = NewComponent[Transform]()
