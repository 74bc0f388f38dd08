package system

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bowstep/common"
	"github.com/milk9111/bowstep/ecs"
	"github.com/milk9111/bowstep/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeArrow
)

// PhysicsSystem owns the Chipmunk space. It mirrors PhysicsBody components
// into cp bodies, steps the space on the fixed tick and writes results back
// into transforms. Depth is integrated here since cp only knows X/Y.
type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool
	log           *slog.Logger

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	arrows   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]component.ArrowContact
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem(gravity float64, log *slog.Logger) *PhysicsSystem {
	if gravity == 0 {
		gravity = common.Gravity
	}
	if log == nil {
		log = slog.Default()
	}
	ps := &PhysicsSystem{
		gravity:  gravity,
		log:      log.With("system", "physics"),
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		arrows:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity]component.ArrowContact),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// EntityOf returns the entity a shape was created for.
func (ps *PhysicsSystem) EntityOf(shape *cp.Shape) (ecs.Entity, bool) {
	if ps == nil || shape == nil {
		return 0, false
	}
	e, ok := ps.shapes[shape]
	return e, ok
}

// Reset drops every body and starts from an empty space, used when the
// level is rebuilt.
func (ps *PhysicsSystem) Reset() {
	ps.space = ps.newSpace()
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
	ps.arrows = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity]component.ArrowContact)
}

// Sync creates cp bodies for new PhysicsBody components and removes bodies
// of destroyed entities without stepping.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) FixedUpdate(w *ecs.World, dt float64) {
	if ps == nil || w == nil || dt <= 0 {
		return
	}

	ps.Sync(w)
	ps.space.Step(dt)
	ps.integrateDepth(w, dt)
	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	arrowHandler := ps.space.NewWildcardCollisionHandler(collisionTypeArrow)
	arrowHandler.UserData = ps
	arrowHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		arrowShape, otherShape := arb.Shapes()
		arrowEntity, ok := sys.arrows[arrowShape]
		if !ok {
			arrowShape, otherShape = otherShape, arrowShape
			if arrowEntity, ok = sys.arrows[arrowShape]; !ok {
				return true
			}
		}
		if _, pending := sys.contacts[arrowEntity]; pending {
			return true
		}

		contact := component.ArrowContact{Other: otherShape.Body()}
		if otherEntity, ok := sys.shapes[otherShape]; ok {
			contact.OtherEntity = uint64(otherEntity)
		}
		if set := arb.ContactPointSet(); set.Count > 0 {
			contact.Point = set.Points[0].PointA
		} else {
			contact.Point = arrowShape.Body().Position()
		}
		sys.contacts[arrowEntity] = contact
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		isArrow := ecs.Has(w, e, component.ArrowTagComponent.Kind())
		info := ps.createBodyInfo(transform, bodyComp, isPlayer, isArrow)
		if info == nil {
			return
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapes[shape] = e
			if isArrow {
				ps.arrows[shape] = e
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
		bodyComp.Depth = transform.Z
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer, isArrow bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 1, 1
	}

	filter := cp.SHAPE_FILTER_ALL
	if bodyComp.Group != 0 {
		filter = cp.NewShapeFilter(bodyComp.Group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	switch {
	case bodyComp.FixedRotation:
		moment = cp.INFINITY
	case radius > 0:
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	default:
		moment = cp.MomentForBox(mass, width, height)
	}

	var body *cp.Body
	if bodyComp.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetVelocityVector(bodyComp.Launch)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetFilter(filter)
	switch {
	case isArrow:
		shape.SetCollisionType(collisionTypeArrow)
	case isPlayer:
		shape.SetCollisionType(collisionTypePlayer)
	default:
		shape.SetCollisionType(collisionTypeSolid)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) integrateDepth(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody) {
		if bodyComp.Static || bodyComp.DepthVelocity == 0 {
			return
		}
		bodyComp.Depth += bodyComp.DepthVelocity * dt
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Z = bodyComp.Depth
		transform.Rotation = bodyComp.Body.Angle()
	})
}

// flushContacts hands arrow contacts recorded during the step to the ECS.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, contact := range ps.contacts {
		delete(ps.contacts, e)
		if !w.IsAlive(e) || ecs.Has(w, e, component.ArrowContactComponent.Kind()) {
			continue
		}
		c := contact
		if err := ecs.Add(w, e, component.ArrowContactComponent.Kind(), &c); err != nil {
			ps.log.Error("record arrow contact", "entity", e, "err", err)
		}
	}
}

func (ps *PhysicsSystem) removeInfo(info *bodyInfo) {
	for _, shape := range info.shapes {
		if shape == nil {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.shapes, shape)
		delete(ps.arrows, shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.removeInfo(info)
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}
