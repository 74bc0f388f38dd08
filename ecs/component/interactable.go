package component

// Interactable is something the player can inspect. Script is a tengo
// program that sets `lore` from the provided `name` and `visits`.
type Interactable struct {
	Name   string
	Script string
	Range  float64
	Visits int
}

var InteractableComponent = NewComponent[Interactable]()
