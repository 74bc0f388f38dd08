package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

// SpawnArrow builds an arrow prefab at origin and launches it along dir at
// the prefab's speed.
func (b *Builder) SpawnArrow(w *ecs.World, prefab string, origin, dir common.Vec3) (ecs.Entity, error) {
	e, err := b.BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	arrow, ok := ecs.Get(w, e, component.ArrowComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("arrow: prefab %q has no arrow component", prefab)
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("arrow: prefab %q has no physics body", prefab)
	}

	dir = dir.Normalize()
	b.arrowSerial++
	arrow.Serial = b.arrowSerial
	arrow.Rotation = math.Atan2(dir.Y, dir.X)

	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}
	t.X, t.Y, t.Z = origin.X, origin.Y, origin.Z
	t.Rotation = arrow.Rotation

	body.Launch = cp.Vector{X: dir.X * arrow.Speed, Y: dir.Y * arrow.Speed}
	body.DepthVelocity = dir.Z * arrow.Speed
	return e, nil
}
