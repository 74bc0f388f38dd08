package system

import (
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/locomotion"
)

// TerrainChanged is the payload of ecs.EventTerrainChanged.
type TerrainChanged struct {
	Entity ecs.Entity
	From   locomotion.TerrainKind
	To     locomotion.TerrainKind
}

// LocomotionSystem drives every locomotion controller: the variable tick
// feeds input and runs jumps and footsteps, the fixed tick moves and samples
// ground contact. A disabled controller gets no input but is still sampled.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	// Paused: input is still sampled but must not turn or launch the body.
	if w.Time().Scale == 0 {
		return
	}
	dt := w.Time().Delta

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, input *component.Input) {
		if loco.Controller == nil {
			return
		}
		if loco.Disabled {
			loco.Controller.Halt()
			return
		}
		before := loco.Controller.CurrentTerrain()
		loco.Controller.Update(locomotion.Input{
			Horizontal:  input.Horizontal,
			Forward:     input.Forward,
			JumpPressed: input.JumpPressed,
			LookX:       input.LookX,
			LookY:       input.LookY,
		}, dt)
		s.afterTick(w, e, loco.Controller, before)

		if transform, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			transform.Yaw = loco.Controller.Yaw()
			transform.Pitch = loco.Controller.Pitch()
		}
	})
}

func (s *LocomotionSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		if loco.Controller == nil {
			return
		}
		before := loco.Controller.CurrentTerrain()
		loco.Controller.FixedUpdate(dt)
		s.afterTick(w, e, loco.Controller, before)
	})
}

func (s *LocomotionSystem) afterTick(w *ecs.World, e ecs.Entity, c *locomotion.Controller, before locomotion.TerrainKind) {
	if after := c.CurrentTerrain(); after != before {
		w.Events().Push(ecs.Event{
			Type: ecs.EventTerrainChanged,
			Data: TerrainChanged{Entity: e, From: before, To: after},
		})
	}
}
