package system

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

const (
	// arrowEmbedDepth pulls a stuck arrow back along its flight direction so
	// it looks embedded rather than buried.
	arrowEmbedDepth   = 0.4
	// teleportClearance is the minimum free space above an arrow for the
	// player to fit when a ceiling is present.
	teleportClearance = 1.1
	clearanceProbe    = 50.0
	// usedArrowTTL keeps a used arrow alive until the frame after the
	// teleport.
	usedArrowTTL      = 2
	arrowKillY        = 200.0
)

// Teleported is the payload of ecs.EventTeleported.
type Teleported struct {
	Arrow ecs.Entity
	To    common.Vec3
}

// ArrowSystem sticks arrows to what they hit and teleports the player to the
// newest arrow on request. Sticking runs on the fixed tick right after the
// physics step that reported the contact.
type ArrowSystem struct {
	physics *PhysicsSystem
	hub     *PlayerHubSystem
	log     *slog.Logger
}

func NewArrowSystem(physics *PhysicsSystem, hub *PlayerHubSystem, log *slog.Logger) *ArrowSystem {
	if log == nil {
		log = slog.Default()
	}
	return &ArrowSystem{physics: physics, hub: hub, log: log.With("system", "arrow")}
}

func (s *ArrowSystem) FixedUpdate(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ArrowComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, arrow *component.Arrow, t *component.Transform) {
		if contact, ok := ecs.Get(w, e, component.ArrowContactComponent.Kind()); ok {
			c := *contact
			ecs.Remove(w, e, component.ArrowContactComponent.Kind())
			if !arrow.Stuck && s.shouldStick(w, c) {
				s.stick(w, e, arrow, t, c)
				return
			}
		}

		switch {
		case arrow.Stuck && arrow.Parent != nil:
			pos := arrow.Parent.LocalToWorld(arrow.LocalOffset)
			t.X, t.Y = pos.X, pos.Y
			t.Rotation = arrow.Parent.Angle() + arrow.LocalAngle
		case !arrow.Stuck:
			s.trackFlight(w, e, arrow, t)
		}
	})
}

// shouldStick filters contacts with reflectors, the player and other arrows.
func (s *ArrowSystem) shouldStick(w *ecs.World, c component.ArrowContact) bool {
	other := ecs.Entity(c.OtherEntity)
	if c.OtherEntity == 0 || !w.IsAlive(other) {
		return true
	}
	return !ecs.Has(w, other, component.ReflectorTagComponent.Kind()) &&
		!ecs.Has(w, other, component.PlayerTagComponent.Kind()) &&
		!ecs.Has(w, other, component.ArrowTagComponent.Kind())
}

func (s *ArrowSystem) trackFlight(w *ecs.World, e ecs.Entity, arrow *component.Arrow, t *component.Transform) {
	if t.Y > arrowKillY {
		ecs.DestroyEntity(w, e)
		return
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return
	}
	v := body.Body.Velocity()
	if v.LengthSq() < 1e-6 {
		return
	}
	arrow.Rotation = math.Atan2(v.Y, v.X)
	body.Body.SetAngle(arrow.Rotation)
}

func (s *ArrowSystem) stick(w *ecs.World, e ecs.Entity, arrow *component.Arrow, t *component.Transform, c component.ArrowContact) {
	fwd := cp.ForAngle(arrow.Rotation)
	pos := c.Point.Sub(fwd.Mult(arrowEmbedDepth))
	up := cp.Vector{X: fwd.Y, Y: -fwd.X}

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	var group uint
	if ok {
		group = body.Group
	}

	arrow.Clearance, arrow.HasCeiling = s.clearance(pos, up, group)
	arrow.Stuck = true
	t.X, t.Y = pos.X, pos.Y
	t.Rotation = arrow.Rotation

	if ok && body.Body != nil {
		body.Body.SetType(cp.BODY_KINEMATIC)
		body.Body.SetVelocity(0, 0)
		body.Body.SetAngularVelocity(0)
		body.Body.SetAngle(arrow.Rotation)
		body.Body.SetPosition(pos)
		body.Kinematic = true
		body.DepthVelocity = 0
	}

	if c.Other != nil && c.Other.GetType() == cp.BODY_DYNAMIC {
		arrow.Parent = c.Other
		arrow.LocalOffset = c.Other.WorldToLocal(pos)
		arrow.LocalAngle = arrow.Rotation - c.Other.Angle()
		// Attached arrows ride their parent and leave the simulation.
		ecs.Remove(w, e, component.PhysicsBodyComponent.Kind())
	}
	s.log.Debug("arrow stuck", "entity", e, "clearance", arrow.Clearance, "ceiling", arrow.HasCeiling, "attached", arrow.Parent != nil)
}

// clearance measures free space from pos along up, ignoring shapes of
// group. ok is false when nothing was found within range.
func (s *ArrowSystem) clearance(pos, up cp.Vector, group uint) (float64, bool) {
	if s.physics == nil || s.physics.Space() == nil {
		return 0, false
	}
	end := pos.Add(up.Mult(clearanceProbe))
	info := s.physics.Space().SegmentQueryFirst(pos, end, 0, cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	if info.Shape == nil {
		return 0, false
	}
	return info.Alpha * clearanceProbe, true
}

func (s *ArrowSystem) Update(w *ecs.World) {
	if w == nil || w.Time().Scale == 0 || s.hub == nil {
		return
	}
	player, _, ok := s.hub.Hub(w)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.TeleportPressed {
		return
	}
	s.Teleport(w, player)
}

// Teleport uses every live arrow and moves the player to the most recently
// fired one when there is room above it.
func (s *ArrowSystem) Teleport(w *ecs.World, player ecs.Entity) bool {
	var (
		newest    ecs.Entity
		newestArr *component.Arrow
	)
	ecs.ForEach(w, component.ArrowComponent.Kind(), func(e ecs.Entity, arrow *component.Arrow) {
		if arrow.Used {
			return
		}
		arrow.Used = true
		_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: usedArrowTTL})
		if newestArr == nil || arrow.Serial > newestArr.Serial {
			newest, newestArr = e, arrow
		}
	})
	if newestArr == nil {
		return false
	}
	if newestArr.HasCeiling && newestArr.Clearance <= teleportClearance {
		s.log.Debug("teleport blocked", "arrow", newest, "clearance", newestArr.Clearance)
		return false
	}

	t, ok := ecs.Get(w, newest, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	to := common.Vec3{X: t.X, Y: t.Y, Z: t.Z}
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		adapter := NewBodyAdapter(body)
		adapter.SetPosition(to)
		adapter.SetVelocity(common.Vec3{})
	}
	if pt, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		pt.X, pt.Y, pt.Z = to.X, to.Y, to.Z
	}
	if audio, ok := ecs.Get(w, player, component.AudioComponent.Kind()); ok {
		audio.Request(audioTeleport)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventTeleported, Data: Teleported{Arrow: newest, To: to}})
	return true
}
