package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tandem/common"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	defaultBodySize = 32.0
	spaceIterations = 20
)

// PhysicsSystem owns the chipmunk space. Character bodies never rotate; static
// bodies are attached to the space's static body.
type PhysicsSystem struct {
	space *cp.Space
	step  float64

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		step:     1.0 / common.TPS,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.applyTeleports(w)

	ps.space.Step(ps.step)

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		isCharacter := ecs.Has(w, e, component.CharacterComponent.Kind())

		info := ps.createBodyInfo(*transform, bodyComp, isCharacter)
		if info == nil {
			continue
		}
		ps.entities[e] = info
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp *component.PhysicsBody, isCharacter bool) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = defaultBodySize, defaultBodySize
	}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		bodyComp.Body = ps.space.StaticBody
		bodyComp.Shape = shape
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForBox(mass, width, height)
	if isCharacter {
		moment = math.Inf(1)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetAngularVelocity(0)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeSolid)
	if isCharacter {
		shape.SetCollisionType(collisionTypeCharacter)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	bodyComp.Body = body
	bodyComp.Shape = shape
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

// applyTeleports moves bodies that were teleported before they existed.
func (ps *PhysicsSystem) applyTeleports(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody) {
		pose, ok := bodyComp.TakePending()
		if !ok {
			return
		}
		bodyComp.Teleport(pose)
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y, t.Rotation = pose.X, pose.Y, pose.Angle
		}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
