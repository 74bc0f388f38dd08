package component

import "github.com/milk9111/bowstep/locomotion"

// Locomotion attaches a movement controller to an entity. Disabled
// controllers are neither ticked nor fed input.
type Locomotion struct {
	Controller *locomotion.Controller
	Disabled   bool
}

var LocomotionComponent = NewComponent[Locomotion]()
