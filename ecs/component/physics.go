package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tandem/party"
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// physics system creates Body and Shape on first sight; until then teleports
// are parked in pending.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Static   bool

	pending *party.Pose
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// ZeroHorizontalVelocity stops sideways drift and keeps the fall speed.
func (b *PhysicsBody) ZeroHorizontalVelocity() {
	if b == nil || b.Body == nil {
		return
	}
	v := b.Body.Velocity()
	b.Body.SetVelocity(0, v.Y)
}

// ZeroVelocity stops all linear and angular motion.
func (b *PhysicsBody) ZeroVelocity() {
	if b == nil || b.Body == nil {
		return
	}
	b.Body.SetVelocityVector(cp.Vector{})
	b.Body.SetAngularVelocity(0)
}

// Kinematic reports whether the body is currently driven outside the solver.
func (b *PhysicsBody) Kinematic() bool {
	if b == nil || b.Body == nil {
		return false
	}
	return b.Body.GetType() == cp.BODY_KINEMATIC
}

// Teleport moves the body center to p.
func (b *PhysicsBody) Teleport(p party.Pose) {
	if b == nil {
		return
	}
	if b.Body == nil {
		b.pending = &p
		return
	}
	b.Body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	b.Body.SetAngle(p.Angle)
}

// TakePending returns and clears a teleport requested before the body existed.
func (b *PhysicsBody) TakePending() (party.Pose, bool) {
	if b == nil || b.pending == nil {
		return party.Pose{}, false
	}
	p := *b.pending
	b.pending = nil
	return p, true
}

// Velocity returns the body velocity, zero before the body exists.
func (b *PhysicsBody) Velocity() (x, y float64) {
	if b == nil || b.Body == nil {
		return 0, 0
	}
	v := b.Body.Velocity()
	return v.X, v.Y
}

var _ party.Body = (*PhysicsBody)(nil)
