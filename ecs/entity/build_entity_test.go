package entity

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/ecs/system"
	"github.com/milk9111/bowstep/prefabs"
	"github.com/milk9111/bowstep/sound"
)

func newTestBuilder(t *testing.T, w *ecs.World) (*Builder, *system.PhysicsSystem) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	set, err := prefabs.LoadTerrainSet()
	if err != nil {
		t.Fatalf("load terrain: %v", err)
	}
	physics := system.NewPhysicsSystem(0, log)
	b := NewBuilder(Services{
		Physics:    physics,
		Terrain:    system.NewWorldTerrain(w),
		Sounds:     sound.NewManager(nil, nil, nil, log),
		TerrainSet: set,
		Log:        log,
	})
	return b, physics
}

func TestBuildPlayerFromPrefab(t *testing.T) {
	w := ecs.NewWorld()
	b, _ := newTestBuilder(t, w)

	e, err := b.BuildPlayer(w, "player.yaml", prefabs.TransformComponentSpec{X: 7, Y: -3})
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.X != 7 || tr.Y != -3 {
		t.Fatalf("transform = %+v, want spawn (7, -3)", tr)
	}
	for name, has := range map[string]bool{
		"player_tag":   ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"physics_body": ecs.Has(w, e, component.PhysicsBodyComponent.Kind()),
		"input":        ecs.Has(w, e, component.InputComponent.Kind()),
		"player_hub":   ecs.Has(w, e, component.PlayerHubComponent.Kind()),
		"audio":        ecs.Has(w, e, component.AudioComponent.Kind()),
		"animator":     ecs.Has(w, e, component.AnimatorComponent.Kind()),
		"locomotion":   ecs.Has(w, e, component.LocomotionComponent.Kind()),
	} {
		if !has {
			t.Fatalf("player is missing %s", name)
		}
	}

	loco, _ := ecs.Get(w, e, component.LocomotionComponent.Kind())
	if loco.Controller == nil {
		t.Fatalf("locomotion controller not built")
	}
	if got := loco.Controller.CurrentTerrain(); got != "dirt" {
		t.Fatalf("initial terrain = %q, want the default dirt", got)
	}

	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if input.DebugSlot != -1 {
		t.Fatalf("debug slot should start unset")
	}
	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if anim.State != "idle" || anim.Transitions["idle/draw"] != "drawn" {
		t.Fatalf("animator = %+v", anim)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()
	b, _ := newTestBuilder(t, w)

	if _, err := b.BuildEntity(nil, "player.yaml"); !errors.Is(err, ErrNilWorld) {
		t.Fatalf("err = %v, want ErrNilWorld", err)
	}
	if _, err := b.BuildEntity(w, "missing.yaml"); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}

	before := len(ecs.Entities(w))
	_, err := b.buildFromSpec(w, "bad.yaml", prefabs.EntityBuildSpec{
		Name:       "bad",
		Components: map[string]any{"transform": map[string]any{"x": 1}, "teleporter": map[string]any{}},
	})
	if err == nil {
		t.Fatalf("expected an error for an unknown component")
	}
	if got := len(ecs.Entities(w)); got != before {
		t.Fatalf("failed build should not leave entities, have %d want %d", got, before)
	}

	_, err = b.buildFromSpec(w, "arrow_bad.yaml", prefabs.EntityBuildSpec{
		Name:       "arrow_bad",
		Components: map[string]any{"arrow": map[string]any{"speed": 0}},
	})
	if err == nil {
		t.Fatalf("expected an error for a non-positive arrow speed")
	}
	if got := len(ecs.Entities(w)); got != before {
		t.Fatalf("failed build should destroy its entity")
	}
}

func TestSpawnArrow(t *testing.T) {
	cases := []struct {
		prefab string
		speed  float64
	}{
		{"arrow.yaml", 30},
		{"arrow_heavy.yaml", 18},
	}

	for _, c := range cases {
		t.Run(c.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			b, _ := newTestBuilder(t, w)

			first, err := b.SpawnArrow(w, c.prefab, common.Vec3{X: 1, Y: -1}, common.Vec3{X: 2})
			if err != nil {
				t.Fatalf("spawn: %v", err)
			}
			second, err := b.SpawnArrow(w, c.prefab, common.Vec3{}, common.Vec3{Z: 1})
			if err != nil {
				t.Fatalf("spawn: %v", err)
			}

			a1, _ := ecs.Get(w, first, component.ArrowComponent.Kind())
			a2, _ := ecs.Get(w, second, component.ArrowComponent.Kind())
			if a2.Serial <= a1.Serial {
				t.Fatalf("serials should increase, got %d then %d", a1.Serial, a2.Serial)
			}

			body, _ := ecs.Get(w, first, component.PhysicsBodyComponent.Kind())
			if body.Launch.X != c.speed || body.Launch.Y != 0 {
				t.Fatalf("launch = %+v, want (%v, 0)", body.Launch, c.speed)
			}
			tr, _ := ecs.Get(w, first, component.TransformComponent.Kind())
			if tr.X != 1 || tr.Y != -1 {
				t.Fatalf("arrow at (%v, %v), want (1, -1)", tr.X, tr.Y)
			}

			deep, _ := ecs.Get(w, second, component.PhysicsBodyComponent.Kind())
			if deep.DepthVelocity != c.speed {
				t.Fatalf("depth velocity = %v, want %v", deep.DepthVelocity, c.speed)
			}
		})
	}
}

func TestSpawnArrowRejectsNonArrowPrefab(t *testing.T) {
	w := ecs.NewWorld()
	b, _ := newTestBuilder(t, w)
	if _, err := b.SpawnArrow(w, "player.yaml", common.Vec3{}, common.Vec3{X: 1}); err == nil {
		t.Fatalf("expected an error for a prefab without an arrow component")
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := prefabs.LoadLevelSpec("level.yaml")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("build level: %v", err)
	}

	bodies := w.Query(component.PhysicsBodyComponent.Kind())
	if len(bodies) != len(lvl.Blocks) {
		t.Fatalf("blocks = %d, want %d", len(bodies), len(lvl.Blocks))
	}
	interactables := w.Query(component.InteractableComponent.Kind())
	if len(interactables) != len(lvl.Interactables) {
		t.Fatalf("interactables = %d, want %d", len(interactables), len(lvl.Interactables))
	}
	if n := len(w.Query(component.ReflectorTagComponent.Kind())); n != 1 {
		t.Fatalf("reflectors = %d, want 1", n)
	}

	dynamic := 0
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
		if !b.Static {
			dynamic++
		}
	})
	if dynamic != 1 {
		t.Fatalf("dynamic blocks = %d, want 1", dynamic)
	}
}

func TestLoadLevelRejectsBadBlocks(t *testing.T) {
	cases := []struct {
		name  string
		world *ecs.World
		block prefabs.BlockSpec
		isNil bool
	}{
		{"nil_world", nil, prefabs.BlockSpec{Width: 1, Height: 1}, true},
		{"zero_width", ecs.NewWorld(), prefabs.BlockSpec{Height: 1}, false},
		{"negative_height", ecs.NewWorld(), prefabs.BlockSpec{Width: 1, Height: -1}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := LoadLevelToWorld(c.world, prefabs.LevelSpec{Name: "bad", Blocks: []prefabs.BlockSpec{c.block}})
			if err == nil {
				t.Fatalf("expected an error")
			}
			if c.isNil != errors.Is(err, ErrNilWorld) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}
