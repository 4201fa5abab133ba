package system

import (
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
)

// InputSource produces the player's intents for one frame.
type InputSource interface {
	Poll() component.Input
}

// InputSourceFunc adapts a function to InputSource.
type InputSourceFunc func() component.Input

func (f InputSourceFunc) Poll() component.Input {
	if f == nil {
		return component.Input{}
	}
	return f()
}

// InputSystem hands the polled intents to every character's control gate.
// Characters without control end the frame with an empty Input.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the intent source, nil disables input.
func (i *InputSystem) SetSource(source InputSource) {
	if i == nil {
		return
	}
	i.source = source
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	var polled component.Input
	if i.source != nil {
		polled = i.source.Poll()
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ch *component.Character, input *component.Input) {
		*input = component.Input{}
		if ch.Health == nil {
			return
		}

		gate := ch.Health.Gate()
		gate.OnMove(polled.Move)
		input.Move = gate.Move()
		if !gate.OnJump() {
			return
		}
		input.Jump = polled.Jump
		input.JumpPressed = polled.JumpPressed
		input.SwitchPressed = polled.SwitchPressed
		input.DebugDamage = polled.DebugDamage
		input.DebugHeal = polled.DebugHeal
	})
}
