package component

// Input stores per-frame input state for an entity.
type Input struct {
	Horizontal float64
	Forward    float64
	LookX      float64
	LookY      float64

	JumpPressed     bool
	PrimaryPressed  bool
	PrimaryReleased bool
	InteractPressed bool
	TeleportPressed bool
	PausePressed    bool
	// DebugSlot is the number key pressed this frame, or -1.
	DebugSlot int
}

var InputComponent = NewComponent[Input]()
