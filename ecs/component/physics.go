package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Chipmunk simulates the X/Y plane; depth (Z) is integrated kinematically
// from DepthVelocity by the physics system.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	// Kinematic bodies are moved by code and ignore gravity and contacts.
	Kinematic     bool
	FixedRotation bool
	// Group keeps shapes of one character from colliding with each other and
	// from being hit by that character's own probes.
	Group         uint
	Depth         float64
	DepthVelocity float64
	// Launch is the initial in-plane velocity given when the body is created.
	Launch cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
