package entity

import (
	"fmt"

	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/prefabs"
)

// BuildPlayer builds the player prefab and places it at spawn.
func (b *Builder) BuildPlayer(w *ecs.World, prefab string, spawn prefabs.TransformComponentSpec) (ecs.Entity, error) {
	e, err := b.BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, spawn); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, spec prefabs.TransformComponentSpec) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.X = spec.X
	t.Y = spec.Y
	t.Z = spec.Z
	t.Rotation = spec.Rotation
	t.Yaw = spec.Yaw
	t.Pitch = spec.Pitch
	if ok {
		return nil
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}
