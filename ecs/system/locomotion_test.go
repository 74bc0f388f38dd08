package system

import (
	"testing"

	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/locomotion"
)

// addWalker puts a locomotion-driven body standing on a floor whose top is
// at y=0.
func addWalker(t *testing.T, w *ecs.World, physics *PhysicsSystem) (ecs.Entity, *component.Locomotion, *component.Input) {
	t.Helper()
	addStaticBlock(t, w, 0, 0.5, 20, 1)

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Y: -0.9})
	body := &component.PhysicsBody{Width: 0.6, Height: 1.8, Mass: 1, FixedRotation: true, Group: 1}
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body)
	physics.Sync(w)

	cfg := locomotion.DefaultConfig()
	cfg.GroundProbeRadius = 0.35
	cfg.GroundProbeRange = 0.1
	cfg.ProbeOffset.Y = 0.55
	cfg.Terrain = locomotion.TerrainSet{Default: "dirt", Profiles: []locomotion.TerrainProfile{{Kind: "dirt"}}}
	c, err := locomotion.New(cfg, locomotion.Deps{
		Body:    NewBodyAdapter(body),
		Physics: NewSpaceProbe(physics, 1),
		Terrain: NewWorldTerrain(w),
		Log:     discardLogger(),
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	loco := &component.Locomotion{Controller: c}
	input := &component.Input{DebugSlot: -1}
	_ = ecs.Add(w, e, component.LocomotionComponent.Kind(), loco)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), input)
	return e, loco, input
}

func TestLocomotionSystemWalksAndSamples(t *testing.T) {
	w := runningWorld()
	physics := NewPhysicsSystem(0, discardLogger())
	s := NewLocomotionSystem()
	e, loco, input := addWalker(t, w, physics)

	input.Forward = 1
	w.Time().Advance(0.02)
	s.Update(w)
	s.FixedUpdate(w, 0.02)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if x := body.Body.Position().X; !near(x, 0.1) {
		t.Fatalf("x = %v, want 0.1 after one fixed step at speed 5", x)
	}
	if !loco.Controller.History().At(0) {
		t.Fatalf("standing on the floor should sample ground")
	}
}

func TestLocomotionSystemDisabledKeepsSampling(t *testing.T) {
	w := runningWorld()
	physics := NewPhysicsSystem(0, discardLogger())
	s := NewLocomotionSystem()
	e, loco, input := addWalker(t, w, physics)

	if !loco.Controller.TryJump() {
		t.Fatalf("expected the first jump to start")
	}
	cooldown := loco.Controller.Cooldown()
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	body.Body.SetVelocity(0, 0)
	yaw := loco.Controller.Yaw()

	loco.Disabled = true
	input.Forward = 1
	input.JumpPressed = true
	input.LookX = 10
	for i := 0; i < 3; i++ {
		w.Time().Advance(0.02)
		s.Update(w)
		s.FixedUpdate(w, 0.02)
	}

	if got := loco.Controller.Cooldown(); got != cooldown-3 {
		t.Fatalf("cooldown = %d, want %d", got, cooldown-3)
	}
	if !loco.Controller.History().At(0) {
		t.Fatalf("ground should still be sampled while disabled")
	}
	if x := body.Body.Position().X; x != 0 {
		t.Fatalf("disabled walker moved to x=%v", x)
	}
	if loco.Controller.Yaw() != yaw {
		t.Fatalf("disabled walker turned")
	}
}

func TestLocomotionSystemHoldsWhilePaused(t *testing.T) {
	w := runningWorld()
	physics := NewPhysicsSystem(0, discardLogger())
	s := NewLocomotionSystem()
	_, loco, input := addWalker(t, w, physics)

	w.Time().Scale = 0
	input.JumpPressed = true
	input.LookX = 10
	w.Time().Advance(0.02)
	s.Update(w)

	if loco.Controller.Cooldown() != 0 || loco.Controller.Yaw() != 0 {
		t.Fatalf("paused frame should not jump or turn")
	}
}
