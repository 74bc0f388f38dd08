package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/ecs/system"
	"github.com/milk9111/bowstep/locomotion"
	"github.com/milk9111/bowstep/prefabs"
	"github.com/milk9111/bowstep/sound"
)

var ErrNilWorld = errors.New("build entity: world is nil")

// Services are the runtime collaborators component builders wire into the
// components they create.
type Services struct {
	Physics    *system.PhysicsSystem
	Terrain    locomotion.TerrainLookup
	Sounds     locomotion.Audio
	TerrainSet locomotion.TerrainSet
	Log        *slog.Logger
}

// Builder turns prefab specs into entities.
type Builder struct {
	svc         Services
	log         *slog.Logger
	arrowSerial uint64
}

func NewBuilder(svc Services) *Builder {
	log := svc.Log
	if log == nil {
		log = slog.Default()
	}
	return &Builder{svc: svc, log: log.With("component", "entity")}
}

// SetTerrainSet replaces the terrain profiles handed to controllers built
// from now on.
func (b *Builder) SetTerrainSet(set locomotion.TerrainSet) {
	b.svc.TerrainSet = set
}

type buildContext struct {
	PrefabPath string
	*Builder
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"arrow_tag":     addArrowTag,
	"reflector_tag": addReflectorTag,
	"transform":     addTransform,
	"physics_body":  addPhysicsBody,
	"input":         addInput,
	"player_hub":    addPlayerHub,
	"audio":         addAudio,
	"animator":      addAnimator,
	"terrain":       addTerrain,
	"arrow":         addArrow,
	"ttl":           addTTL,
	"interactable":  addInteractable,
	"locomotion":    addLocomotion,
}

// locomotion needs the physics body to exist, so it is built last.
var componentBuildOrder = []string{
	"player_tag",
	"arrow_tag",
	"reflector_tag",
	"transform",
	"physics_body",
	"input",
	"player_hub",
	"audio",
	"animator",
	"terrain",
	"arrow",
	"ttl",
	"interactable",
	"locomotion",
}

func (b *Builder) BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, ErrNilWorld
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return b.buildFromSpec(w, prefabPath, spec)
}

func (b *Builder) buildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	unknown := make([]string, 0)
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Builder: b}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}
	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addArrowTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ArrowTagComponent.Kind(), &component.ArrowTag{})
}

func addReflectorTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ReflectorTagComponent.Kind(), &component.ReflectorTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		Rotation: spec.Rotation,
		Yaw:      spec.Yaw,
		Pitch:    spec.Pitch,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a width and height")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Kinematic:     spec.Kinematic,
		FixedRotation: spec.FixedRotation,
		Group:         spec.Group,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{DebugSlot: -1})
}

func addPlayerHub(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerHubComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player hub spec: %w", err)
	}
	if spec.Health <= 0 {
		spec.Health = 100
	}
	return ecs.Add(w, e, component.PlayerHubComponent.Kind(), &component.PlayerHub{
		Health:       spec.Health,
		Music:        spec.Music,
		ArrowPrefabs: append([]string(nil), spec.ArrowPrefabs...),
	})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	specs, err := prefabs.DecodeComponentSpec[[]prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	comp := &component.Audio{
		Names:     make([]string, 0, len(specs)),
		Instances: make([]*sound.Instance, 0, len(specs)),
		Play:      make([]bool, len(specs)),
		Stop:      make([]bool, len(specs)),
	}
	for _, s := range specs {
		if s.Name == "" {
			return fmt.Errorf("audio entry for cue %q has no name", s.Cue)
		}
		comp.Names = append(comp.Names, s.Name)
		var inst *sound.Instance
		if ctx.svc.Sounds != nil {
			inst = ctx.svc.Sounds.NewInstance(s.Cue)
		}
		comp.Instances = append(comp.Instances, inst)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimatorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	anim := &component.Animator{
		State:       spec.Initial,
		Transitions: make(map[string]string, len(spec.Transitions)),
	}
	for _, t := range spec.Transitions {
		anim.Transitions[t.From+"/"+t.Trigger] = t.To
	}
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), anim)
}

func addTerrain(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TerrainComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode terrain spec: %w", err)
	}
	return ecs.Add(w, e, component.TerrainComponent.Kind(), &component.Terrain{Kind: spec.Kind})
}

func addArrow(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ArrowComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode arrow spec: %w", err)
	}
	if spec.Speed <= 0 {
		return fmt.Errorf("arrow speed must be positive, got %v", spec.Speed)
	}
	return ecs.Add(w, e, component.ArrowComponent.Kind(), &component.Arrow{Speed: spec.Speed})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InteractableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), interactableFromSpec(spec))
}

func interactableFromSpec(spec prefabs.InteractableSpec) *component.Interactable {
	r := spec.Range
	if r <= 0 {
		r = defaultInteractRange
	}
	return &component.Interactable{Name: spec.Name, Script: spec.Script, Range: r}
}

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	cfg, err := prefabs.DecodeComponentSpec[prefabs.LocomotionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}
	if cfg.Terrain.Default == "" && len(cfg.Terrain.Profiles) == 0 {
		cfg.Terrain = ctx.svc.TerrainSet
	}

	deps := locomotion.Deps{
		Terrain: ctx.svc.Terrain,
		Audio:   ctx.svc.Sounds,
		Log:     ctx.log,
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		deps.Body = system.NewBodyAdapter(body)
		if ctx.svc.Physics != nil {
			deps.Physics = system.NewSpaceProbe(ctx.svc.Physics, body.Group)
		}
	}

	c, err := locomotion.New(cfg, deps)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{Controller: c})
}
