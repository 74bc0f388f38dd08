package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

func TestPhysicsBodiesFallAndSync(t *testing.T) {
	w := runningWorld()
	physics := NewPhysicsSystem(19.6, discardLogger())

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 1, Y: -10, Z: 2})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Height: 1, Mass: 1, DepthVelocity: 1})

	for i := 0; i < 10; i++ {
		physics.FixedUpdate(w, 0.02)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Y <= -10 {
		t.Fatalf("body should fall towards +Y, y = %v", tr.Y)
	}
	if math.Abs(tr.Z-2.2) > 1e-9 {
		t.Fatalf("depth = %v, want 2.2", tr.Z)
	}

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Body == nil || body.Shape == nil {
		t.Fatalf("cp body should be attached")
	}
	if got, ok := physics.EntityOf(body.Shape); !ok || got != e {
		t.Fatalf("shape should map back to its entity")
	}

	ecs.DestroyEntity(w, e)
	physics.Sync(w)
	if _, ok := physics.EntityOf(body.Shape); ok {
		t.Fatalf("destroyed entity's shape should be removed")
	}
}

func TestPhysicsRecordsArrowContact(t *testing.T) {
	w := runningWorld()
	physics := NewPhysicsSystem(19.6, discardLogger())
	floor := addStaticBlock(t, w, 0, 0.5, 10, 1)

	arrow := addArrow(t, w, &component.Arrow{Serial: 1, Speed: 10}, 0, -2)
	_ = ecs.Add(w, arrow, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius: 0.08,
		Mass:   0.05,
		Group:  1,
		Launch: cp.Vector{Y: 10},
	})

	var contact *component.ArrowContact
	for i := 0; i < 50 && contact == nil; i++ {
		physics.FixedUpdate(w, 0.02)
		contact, _ = ecs.Get(w, arrow, component.ArrowContactComponent.Kind())
	}
	if contact == nil {
		t.Fatalf("arrow never reported a contact")
	}
	if ecs.Entity(contact.OtherEntity) != floor {
		t.Fatalf("contact with %v, want floor %v", contact.OtherEntity, floor)
	}
	if math.Abs(contact.Point.Y) > 0.2 {
		t.Fatalf("contact point %+v should be on the floor surface", contact.Point)
	}
}

func TestPhysicsReset(t *testing.T) {
	w := runningWorld()
	physics := NewPhysicsSystem(0, discardLogger())
	addStaticBlock(t, w, 0, 0, 1, 1)
	physics.Sync(w)

	before := physics.Space()
	physics.Reset()
	if physics.Space() == before {
		t.Fatalf("reset should build a new space")
	}
}
