package prefabs

import (
	"errors"
	"testing"

	"github.com/milk9111/bowstep/locomotion"
)

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"prefab bare", cleanPrefabPath, "player.yaml", "player.yaml"},
		{"prefab prefixed", cleanPrefabPath, "prefabs/player.yaml", "player.yaml"},
		{"prefab empty", cleanPrefabPath, "", ""},
		{"script bare", cleanScriptPath, "shrine.tengo", "scripts/shrine.tengo"},
		{"script dir", cleanScriptPath, "scripts/shrine.tengo", "scripts/shrine.tengo"},
		{"script full", cleanScriptPath, "prefabs/scripts/shrine.tengo", "scripts/shrine.tengo"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadGameSpecDefaults(t *testing.T) {
	spec, err := LoadGameSpec("game.yaml")
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	if spec.TickRate <= 0 || spec.MaxFixedSteps <= 0 {
		t.Fatalf("expected positive tick config, got %+v", spec)
	}
	if spec.Pause.ClickInterval != 0.15 {
		t.Fatalf("expected click interval 0.15, got %v", spec.Pause.ClickInterval)
	}

	zero := GameSpec{}.withDefaults()
	if zero.Level != "level.yaml" || zero.Player != "player.yaml" || zero.Pause.Snapshot != "paused" {
		t.Fatalf("unexpected defaults %+v", zero)
	}
}

func TestTerrainSetHasDefault(t *testing.T) {
	set, err := LoadTerrainSet()
	if err != nil {
		t.Fatalf("LoadTerrainSet: %v", err)
	}
	def, err := set.DefaultProfile()
	if err != nil {
		t.Fatalf("DefaultProfile: %v", err)
	}
	if def.Kind != "dirt" {
		t.Fatalf("expected dirt default, got %q", def.Kind)
	}
	if _, ok := set.Profile(locomotion.TerrainKind("stone")); !ok {
		t.Fatalf("expected stone profile")
	}
}

func TestAudioSpecCoversTerrainCues(t *testing.T) {
	audio, err := LoadAudioSpec()
	if err != nil {
		t.Fatalf("LoadAudioSpec: %v", err)
	}
	set, err := LoadTerrainSet()
	if err != nil {
		t.Fatalf("LoadTerrainSet: %v", err)
	}
	known := map[string]bool{}
	for _, c := range audio.Cues {
		known[string(c.ID)] = true
	}
	for _, p := range set.Profiles {
		for _, cue := range []string{string(p.Footstep), string(p.JumpLaunch), string(p.JumpLand)} {
			if !known[cue] {
				t.Fatalf("terrain %q references unknown cue %q", p.Kind, cue)
			}
		}
	}
	if len(audio.MixerSnapshots()) != 2 {
		t.Fatalf("expected two snapshots")
	}
}

func TestPlayerPrefabDecodes(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatalf("LoadEntityBuildSpec: %v", err)
	}
	cfg, err := DecodeComponentSpec[LocomotionComponentSpec](spec.Components["locomotion"])
	if err != nil {
		t.Fatalf("decode locomotion: %v", err)
	}
	if cfg.JumpBuffer != 15 || cfg.MoveDelta != locomotion.MoveDeltaFixed {
		t.Fatalf("unexpected locomotion config %+v", cfg)
	}
	if cfg.ProbeOffset.Y != 0.55 {
		t.Fatalf("expected probe offset y 0.55, got %v", cfg.ProbeOffset.Y)
	}

	audio, err := DecodeComponentSpec[[]AudioComponentSpec](spec.Components["audio"])
	if err != nil {
		t.Fatalf("decode audio: %v", err)
	}
	if len(audio) != 3 || audio[0].Name != "pull" {
		t.Fatalf("unexpected audio spec %+v", audio)
	}

	hub, err := DecodeComponentSpec[PlayerHubComponentSpec](spec.Components["player_hub"])
	if err != nil {
		t.Fatalf("decode hub: %v", err)
	}
	if len(hub.ArrowPrefabs) < 2 {
		t.Fatalf("expected arrow prefabs, got %+v", hub.ArrowPrefabs)
	}
}

func TestDecodeComponentSpecNil(t *testing.T) {
	got, err := DecodeComponentSpec[ArrowComponentSpec](nil)
	if err != nil || got.Speed != 0 {
		t.Fatalf("expected zero value, got %+v, %v", got, err)
	}
}

func TestLoadEntityBuildSpecErrors(t *testing.T) {
	if _, err := LoadEntityBuildSpec("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
	if _, err := LoadEntityBuildSpec("game.yaml"); !errors.Is(err, ErrNoComponents) {
		t.Fatalf("expected ErrNoComponents, got %v", err)
	}
}

func TestLevelSpec(t *testing.T) {
	lvl, err := LoadLevelSpec("level.yaml")
	if err != nil {
		t.Fatalf("LoadLevelSpec: %v", err)
	}
	if len(lvl.Blocks) == 0 || len(lvl.Interactables) == 0 {
		t.Fatalf("expected blocks and interactables")
	}
	for _, it := range lvl.Interactables {
		if _, err := LoadScript(it.Script); err != nil {
			t.Fatalf("script %s: %v", it.Script, err)
		}
	}
}
