package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/bowstep/locomotion"
	"github.com/milk9111/bowstep/sound"
	"gopkg.in/yaml.v3"
)

var ErrNoComponents = errors.New("prefabs: prefab defines no components")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top-level runtime configuration.
type GameSpec struct {
	Title         string    `yaml:"title"`
	TickRate      int       `yaml:"tick_rate"`
	MaxFixedSteps int       `yaml:"max_fixed_steps"`
	Debug         bool      `yaml:"debug"`
	Level         string    `yaml:"level"`
	Player        string    `yaml:"player"`
	Log           LogSpec   `yaml:"log"`
	Pause         PauseSpec `yaml:"pause"`
}

type LogSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PauseSpec names the cues and mixer snapshots the pause menu uses.
type PauseSpec struct {
	Snapshot      string      `yaml:"snapshot"`
	Unpaused      string      `yaml:"unpaused"`
	Transition    float64     `yaml:"transition"`
	ClickInterval float64     `yaml:"click_interval"`
	Whoosh        sound.CueID `yaml:"whoosh"`
	Click         sound.CueID `yaml:"click"`
	Hover         sound.CueID `yaml:"hover"`
}

func (g GameSpec) withDefaults() GameSpec {
	if g.Title == "" {
		g.Title = "bowstep"
	}
	if g.TickRate <= 0 {
		g.TickRate = 50
	}
	if g.MaxFixedSteps <= 0 {
		g.MaxFixedSteps = 5
	}
	if g.Level == "" {
		g.Level = "level.yaml"
	}
	if g.Player == "" {
		g.Player = "player.yaml"
	}
	if g.Pause.Snapshot == "" {
		g.Pause.Snapshot = "paused"
	}
	if g.Pause.Unpaused == "" {
		g.Pause.Unpaused = "unpaused"
	}
	if g.Pause.Transition <= 0 {
		g.Pause.Transition = 0.01
	}
	if g.Pause.ClickInterval <= 0 {
		g.Pause.ClickInterval = 0.15
	}
	return g
}

func LoadGameSpec(filename string) (GameSpec, error) {
	spec, err := LoadSpec[GameSpec](filename)
	if err != nil {
		return GameSpec{}, err
	}
	return spec.withDefaults(), nil
}

// AudioSpec declares every cue and the mixer snapshots.
type AudioSpec struct {
	Cues      []sound.CueSpec `yaml:"cues"`
	Snapshots []SnapshotSpec  `yaml:"snapshots"`
}

type SnapshotSpec struct {
	Name    string                `yaml:"name"`
	Volumes map[sound.Bus]float64 `yaml:"volumes"`
}

func (a AudioSpec) MixerSnapshots() []sound.Snapshot {
	out := make([]sound.Snapshot, 0, len(a.Snapshots))
	for _, s := range a.Snapshots {
		out = append(out, sound.Snapshot{Name: s.Name, Volumes: s.Volumes})
	}
	return out
}

func LoadAudioSpec() (AudioSpec, error) {
	return LoadSpec[AudioSpec]("audio.yaml")
}

func LoadTerrainSet() (locomotion.TerrainSet, error) {
	set, err := LoadSpec[locomotion.TerrainSet]("terrain.yaml")
	if err != nil {
		return locomotion.TerrainSet{}, err
	}
	if _, err := set.DefaultProfile(); err != nil {
		return locomotion.TerrainSet{}, fmt.Errorf("prefabs: terrain.yaml: %w", err)
	}
	return set, nil
}

// LevelSpec is a single playable area built from boxes.
type LevelSpec struct {
	Name          string                 `yaml:"name"`
	Gravity       float64                `yaml:"gravity"`
	Spawn         TransformComponentSpec `yaml:"spawn"`
	Blocks        []BlockSpec            `yaml:"blocks"`
	Interactables []InteractableSpec     `yaml:"interactables"`
}

// BlockSpec is a box collider. Static blocks carry a terrain kind; dynamic
// ones are pushed around and arrows attach to them.
type BlockSpec struct {
	X          float64                `yaml:"x"`
	Y          float64                `yaml:"y"`
	Width      float64                `yaml:"width"`
	Height     float64                `yaml:"height"`
	Terrain    locomotion.TerrainKind `yaml:"terrain"`
	Reflector  bool                   `yaml:"reflector"`
	Dynamic    bool                   `yaml:"dynamic"`
	Mass       float64                `yaml:"mass"`
	Friction   float64                `yaml:"friction"`
	Elasticity float64                `yaml:"elasticity"`
}

type InteractableSpec struct {
	Name   string  `yaml:"name"`
	Script string  `yaml:"script"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Range  float64 `yaml:"range"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	return LoadSpec[LevelSpec](filename)
}

// EntityBuildSpec is a prefab made of named component specs.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	spec, err := LoadSpec[EntityBuildSpec](filename)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	if len(spec.Components) == 0 {
		return EntityBuildSpec{}, fmt.Errorf("%w: %s", ErrNoComponents, filename)
	}
	return spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	Rotation float64 `yaml:"rotation"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Kinematic     bool    `yaml:"kinematic"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	Group         uint    `yaml:"group"`
}

type PlayerHubComponentSpec struct {
	Health       float64     `yaml:"health"`
	Music        sound.CueID `yaml:"music"`
	ArrowPrefabs []string    `yaml:"arrow_prefabs"`
}

// LocomotionComponentSpec is the controller tuning. Terrain profiles come
// from terrain.yaml unless the prefab inlines them.
type LocomotionComponentSpec = locomotion.Config

type AudioComponentSpec struct {
	Name string      `yaml:"name"`
	Cue  sound.CueID `yaml:"cue"`
}

type AnimatorComponentSpec struct {
	Initial     string                `yaml:"initial"`
	Transitions []AnimationTransition `yaml:"transitions"`
}

type AnimationTransition struct {
	From    string `yaml:"from"`
	Trigger string `yaml:"trigger"`
	To      string `yaml:"to"`
}

type ArrowComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type TerrainComponentSpec struct {
	Kind locomotion.TerrainKind `yaml:"kind"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}
