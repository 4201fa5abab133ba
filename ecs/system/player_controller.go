package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
)

const (
	defaultMoveSpeed = 260.0
	defaultJumpSpeed = 600.0
	groundedEpsilon  = 1.0
	moveDeadzone     = 0.01
)

// PlayerControllerSystem drives the controlled character's body from its Input.
// Characters without control are left to the physics solver.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.CharacterComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if !ok || ch.Health == nil || !ch.Health.HasControl() {
			continue
		}
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || bodyComp.Kinematic() {
			continue
		}

		moveSpeed, jumpSpeed := defaultMoveSpeed, defaultJumpSpeed
		if player.MoveSpeed > 0 {
			moveSpeed = player.MoveSpeed
		}
		if player.JumpSpeed > 0 {
			jumpSpeed = player.JumpSpeed
		}

		vel := bodyComp.Body.Velocity()
		vel.X = input.Move.X * moveSpeed
		if input.JumpPressed && math.Abs(vel.Y) < groundedEpsilon {
			vel.Y = -jumpSpeed
		}
		bodyComp.Body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
		bodyComp.Body.SetAngle(0)
		bodyComp.Body.SetAngularVelocity(0)

		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			anim.SetBool(party.MovingFlag, math.Abs(input.Move.X) > moveDeadzone)
		}
	}
}
