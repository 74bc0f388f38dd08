package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs/component"
)

// BodyAdapter exposes a PhysicsBody component as a locomotion body. The cp
// body is resolved lazily because it only exists after the physics system
// has synced the entity.
type BodyAdapter struct {
	comp *component.PhysicsBody
}

func NewBodyAdapter(comp *component.PhysicsBody) *BodyAdapter {
	return &BodyAdapter{comp: comp}
}

func (b *BodyAdapter) Position() common.Vec3 {
	if b.comp.Body == nil {
		return common.Vec3{Z: b.comp.Depth}
	}
	p := b.comp.Body.Position()
	return common.Vec3{X: p.X, Y: p.Y, Z: b.comp.Depth}
}

func (b *BodyAdapter) SetPosition(p common.Vec3) {
	b.comp.Depth = p.Z
	if b.comp.Body == nil {
		return
	}
	b.comp.Body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

func (b *BodyAdapter) Velocity() common.Vec3 {
	if b.comp.Body == nil {
		return common.Vec3{Z: b.comp.DepthVelocity}
	}
	v := b.comp.Body.Velocity()
	return common.Vec3{X: v.X, Y: v.Y, Z: b.comp.DepthVelocity}
}

func (b *BodyAdapter) SetVelocity(v common.Vec3) {
	b.comp.DepthVelocity = v.Z
	if b.comp.Body == nil {
		return
	}
	b.comp.Body.SetVelocity(v.X, v.Y)
}

func (b *BodyAdapter) ApplyImpulse(j common.Vec3) {
	mass := b.comp.Mass
	if b.comp.Body != nil {
		b.comp.Body.ApplyImpulseAtLocalPoint(cp.Vector{X: j.X, Y: j.Y}, cp.Vector{})
		mass = b.comp.Body.Mass()
	}
	if mass > 0 {
		b.comp.DepthVelocity += j.Z / mass
	}
}
