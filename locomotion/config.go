package locomotion

import (
	"errors"
	"fmt"

	"github.com/milk9111/bowstep/common"
)

var (
	ErrJumpBufferRange       = errors.New("locomotion: jump buffer length out of range")
	ErrNegativeTuning        = errors.New("locomotion: tuning value must not be negative")
	ErrUnknownDefaultTerrain = errors.New("locomotion: default terrain has no profile")
	ErrMoveDeltaMode         = errors.New("locomotion: unknown move delta mode")
)

const (
	MinJumpBuffer = 1
	MaxJumpBuffer = 100

	DefaultGroundProbeRadius = 0.35
	DefaultGroundProbeRange  = 0.1
	DefaultTerrainProbeRange = 3.0
)

// MoveDelta selects which delta scales horizontal displacement in the fixed
// tick.
type MoveDelta string

const (
	// MoveDeltaFixed uses the fixed simulation step.
	MoveDeltaFixed MoveDelta = "fixed"
	// MoveDeltaFrame uses the last rendered frame's delta, which makes
	// walking speed depend on how many fixed ticks run per frame.
	MoveDeltaFrame MoveDelta = "frame"
)

// Config is the tuning surface of a controller. It is read once at
// construction.
type Config struct {
	MoveSpeed               float64     `yaml:"move_speed"`
	VerticalRotationSpeed   float64     `yaml:"vertical_rotation_speed"`
	HorizontalRotationSpeed float64     `yaml:"horizontal_rotation_speed"`
	JumpImpulse             float64     `yaml:"jump_impulse"`
	JumpBuffer              int         `yaml:"jump_buffer"`
	FootstepInterval        float64     `yaml:"footstep_interval"`
	MoveDelta               MoveDelta   `yaml:"move_delta"`
	GroundProbeRadius       float64     `yaml:"ground_probe_radius"`
	GroundProbeRange        float64     `yaml:"ground_probe_range"`
	TerrainProbeRange       float64     `yaml:"terrain_probe_range"`
	ProbeOffset             common.Vec3 `yaml:"probe_offset"`
	Terrain                 TerrainSet  `yaml:"terrain"`
}

// DefaultConfig mirrors the stock player tuning.
func DefaultConfig() Config {
	return Config{
		MoveSpeed:               5,
		VerticalRotationSpeed:   5,
		HorizontalRotationSpeed: 5,
		JumpImpulse:             8,
		JumpBuffer:              15,
		FootstepInterval:        1,
		MoveDelta:               MoveDeltaFixed,
		GroundProbeRadius:       DefaultGroundProbeRadius,
		GroundProbeRange:        DefaultGroundProbeRange,
		TerrainProbeRange:       DefaultTerrainProbeRange,
	}
}

// withDefaults fills unset probe tuning and the delta mode.
func (c Config) withDefaults() Config {
	if c.MoveDelta == "" {
		c.MoveDelta = MoveDeltaFixed
	}
	if c.GroundProbeRadius == 0 {
		c.GroundProbeRadius = DefaultGroundProbeRadius
	}
	if c.GroundProbeRange == 0 {
		c.GroundProbeRange = DefaultGroundProbeRange
	}
	if c.TerrainProbeRange == 0 {
		c.TerrainProbeRange = DefaultTerrainProbeRange
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.JumpBuffer < MinJumpBuffer || c.JumpBuffer > MaxJumpBuffer {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrJumpBufferRange, c.JumpBuffer, MinJumpBuffer, MaxJumpBuffer)
	}
	tuning := []struct {
		name  string
		value float64
	}{
		{"move_speed", c.MoveSpeed},
		{"vertical_rotation_speed", c.VerticalRotationSpeed},
		{"horizontal_rotation_speed", c.HorizontalRotationSpeed},
		{"jump_impulse", c.JumpImpulse},
		{"footstep_interval", c.FootstepInterval},
		{"ground_probe_radius", c.GroundProbeRadius},
		{"ground_probe_range", c.GroundProbeRange},
		{"terrain_probe_range", c.TerrainProbeRange},
	}
	for _, tv := range tuning {
		if tv.value < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeTuning, tv.name, tv.value)
		}
	}
	switch c.MoveDelta {
	case "", MoveDeltaFixed, MoveDeltaFrame:
	default:
		return fmt.Errorf("%w: %q", ErrMoveDeltaMode, c.MoveDelta)
	}
	if _, err := c.Terrain.DefaultProfile(); err != nil {
		return err
	}
	return nil
}
