package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventAnimationTrigger = "animation_trigger"
	EventLoreShown        = "lore_shown"
	EventLoreHidden       = "lore_hidden"
	EventTeleported       = "teleported"
	EventTerrainChanged   = "terrain_changed"
)

// AnimationTrigger asks the animator of Entity to fire a named trigger.
type AnimationTrigger struct {
	Entity  Entity
	Trigger string
}

// EventQueue is a simple FIFO queue flushed at the end of every frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the pending events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
