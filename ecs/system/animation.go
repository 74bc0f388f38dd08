package system

import (
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

const maxFiredHistory = 8

// AnimationSystem applies animation triggers queued this frame to their
// entity's Animator.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventAnimationTrigger {
			continue
		}
		trig, ok := evt.Data.(ecs.AnimationTrigger)
		if !ok {
			continue
		}
		anim, ok := ecs.Get(w, trig.Entity, component.AnimatorComponent.Kind())
		if !ok {
			continue
		}
		Fire(anim, trig.Trigger)
	}
}

// Fire moves anim along the transition for trigger, if one exists from the
// current state.
func Fire(anim *component.Animator, trigger string) bool {
	next, ok := anim.Transitions[anim.State+"/"+trigger]
	if !ok {
		return false
	}
	anim.State = next
	anim.Fired = append(anim.Fired, trigger)
	if len(anim.Fired) > maxFiredHistory {
		anim.Fired = anim.Fired[len(anim.Fired)-maxFiredHistory:]
	}
	return true
}
