package entity

import (
	"fmt"

	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/prefabs"
)

const defaultInteractRange = 1.5

// LoadLevelToWorld creates one entity per block and interactable. Blocks are
// given by their top-left corner; entities are placed at their centre.
func LoadLevelToWorld(w *ecs.World, lvl prefabs.LevelSpec) error {
	if w == nil {
		return ErrNilWorld
	}
	for i, block := range lvl.Blocks {
		if _, err := addBlock(w, block); err != nil {
			return fmt.Errorf("level %s: block %d: %w", lvl.Name, i, err)
		}
	}
	for _, spec := range lvl.Interactables {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, Z: spec.Z}); err != nil {
			return fmt.Errorf("level %s: interactable %s: %w", lvl.Name, spec.Name, err)
		}
		if err := ecs.Add(w, e, component.InteractableComponent.Kind(), interactableFromSpec(spec)); err != nil {
			return fmt.Errorf("level %s: interactable %s: %w", lvl.Name, spec.Name, err)
		}
	}
	return nil
}

func addBlock(w *ecs.World, block prefabs.BlockSpec) (ecs.Entity, error) {
	if block.Width <= 0 || block.Height <= 0 {
		return 0, fmt.Errorf("block size %vx%v must be positive", block.Width, block.Height)
	}
	friction := block.Friction
	if friction == 0 {
		friction = 0.8
	}

	e := ecs.CreateEntity(w)
	err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: block.X + block.Width/2,
		Y: block.Y + block.Height/2,
	})
	if err == nil {
		err = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:      block.Width,
			Height:     block.Height,
			Mass:       block.Mass,
			Friction:   friction,
			Elasticity: block.Elasticity,
			Static:     !block.Dynamic,
		})
	}
	if err == nil && block.Terrain != "" {
		err = ecs.Add(w, e, component.TerrainComponent.Kind(), &component.Terrain{Kind: block.Terrain})
	}
	if err == nil && block.Reflector {
		err = ecs.Add(w, e, component.ReflectorTagComponent.Kind(), &component.ReflectorTag{})
	}
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}
