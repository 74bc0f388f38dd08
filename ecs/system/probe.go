package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
	"github.com/milk9111/bowstep/locomotion"
)

// SpaceProbe answers locomotion probes against the physics space. Shapes in
// the ignored group (the prober's own colliders) are skipped. Probes work in
// the X/Y plane; depth is not considered.
type SpaceProbe struct {
	physics *PhysicsSystem
	filter  cp.ShapeFilter
}

func NewSpaceProbe(physics *PhysicsSystem, ignoreGroup uint) *SpaceProbe {
	filter := cp.SHAPE_FILTER_ALL
	if ignoreGroup != 0 {
		filter = cp.NewShapeFilter(ignoreGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}
	return &SpaceProbe{physics: physics, filter: filter}
}

func (p *SpaceProbe) query(origin, dir common.Vec3, radius, maxDist float64) (cp.SegmentQueryInfo, bool) {
	space := p.physics.Space()
	if space == nil || maxDist <= 0 {
		return cp.SegmentQueryInfo{}, false
	}
	start := cp.Vector{X: origin.X, Y: origin.Y}
	end := cp.Vector{X: origin.X + dir.X*maxDist, Y: origin.Y + dir.Y*maxDist}

	// The space's segment query culls candidates with the bare segment, so a
	// thick cast that starts beside a shape's box would miss it. Gather by the
	// swept box instead and test each shape with the radius applied.
	swept := cp.NewBBForCircle(start, radius).Merge(cp.NewBBForCircle(end, radius))
	best := cp.SegmentQueryInfo{Point: end, Alpha: 1}
	space.BBQuery(swept, p.filter, func(shape *cp.Shape, _ interface{}) {
		if shape.Sensor() {
			return
		}
		var info cp.SegmentQueryInfo
		if shape.SegmentQuery(start, end, radius, &info) && (best.Shape == nil || info.Alpha < best.Alpha) {
			best = info
		}
	}, nil)
	return best, best.Shape != nil
}

func (p *SpaceProbe) Raycast(origin, dir common.Vec3, maxDist float64) (locomotion.Hit, bool) {
	info, ok := p.query(origin, dir, 0, maxDist)
	if !ok {
		return locomotion.Hit{}, false
	}
	hit := locomotion.Hit{
		Distance: info.Alpha * maxDist,
		Point:    common.Vec3{X: info.Point.X, Y: info.Point.Y, Z: origin.Z},
	}
	if e, ok := p.physics.EntityOf(info.Shape); ok {
		hit.Surface = locomotion.SurfaceID(e)
	}
	return hit, true
}

func (p *SpaceProbe) SphereCast(origin common.Vec3, radius float64, dir common.Vec3, maxDist float64) bool {
	_, ok := p.query(origin, dir, radius, maxDist)
	return ok
}

// WorldTerrain classifies surfaces by their Terrain component.
type WorldTerrain struct {
	world *ecs.World
}

func NewWorldTerrain(w *ecs.World) *WorldTerrain {
	return &WorldTerrain{world: w}
}

func (t *WorldTerrain) TerrainOf(surface locomotion.SurfaceID) (locomotion.TerrainKind, bool) {
	e := ecs.Entity(surface)
	if surface == 0 || !t.world.IsAlive(e) {
		return "", false
	}
	terrain, ok := ecs.Get(t.world, e, component.TerrainComponent.Kind())
	if !ok || terrain.Kind == "" {
		return "", false
	}
	return terrain.Kind, true
}
