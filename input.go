package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
)

const stickDeadzone = 0.2

// KeyboardInput polls keyboard and the first standard gamepad.
type KeyboardInput struct {
	debug bool
}

func NewKeyboardInput(debug bool) *KeyboardInput {
	return &KeyboardInput{debug: debug}
}

func (k *KeyboardInput) Poll() component.Input {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	jumpPressed := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	switchPressed := inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyQ)

	moveX := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		jumpPressed = jumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		switchPressed = switchPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
	}

	in := component.Input{
		Move:          party.Vec2{X: moveX},
		Jump:          jump,
		JumpPressed:   jumpPressed,
		SwitchPressed: switchPressed,
	}
	if k.debug {
		in.DebugDamage = inpututil.IsKeyJustPressed(ebiten.KeyK)
		in.DebugHeal = inpututil.IsKeyJustPressed(ebiten.KeyH)
	}
	return in
}
