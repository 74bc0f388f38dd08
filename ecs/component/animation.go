package component

// Animator is a trigger-driven state machine for first-person view models.
// Transitions maps "state/trigger" to the next state; a trigger with no
// entry for the current state is ignored.
type Animator struct {
	State       string
	Transitions map[string]string
	Fired       []string
}

var AnimatorComponent = NewComponent[Animator]()
