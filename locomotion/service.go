package locomotion

//go:generate go tool mockgen -destination=./mocks/audio_mock.go -package=mocks . Audio

import (
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/sound"
)

// SurfaceID identifies a piece of world geometry returned by a probe.
type SurfaceID uint64

// Hit is the result of a successful ray probe.
type Hit struct {
	Surface  SurfaceID
	Distance float64
	Point    common.Vec3
}

// PhysicsQuery answers downward probes against world geometry.
type PhysicsQuery interface {
	Raycast(origin, dir common.Vec3, maxDist float64) (Hit, bool)
	SphereCast(origin common.Vec3, radius float64, dir common.Vec3, maxDist float64) bool
}

// Body is the controlled rigid body.
type Body interface {
	Position() common.Vec3
	SetPosition(p common.Vec3)
	Velocity() common.Vec3
	SetVelocity(v common.Vec3)
	ApplyImpulse(j common.Vec3)
}

// TerrainLookup classifies a surface, if it carries a terrain tag.
type TerrainLookup interface {
	TerrainOf(surface SurfaceID) (TerrainKind, bool)
}

// Audio instantiates and plays cue handles.
type Audio interface {
	NewInstance(cue sound.CueID) *sound.Instance
	Play(inst *sound.Instance)
	Stop(inst *sound.Instance)
}
