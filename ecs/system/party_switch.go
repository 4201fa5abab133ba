package system

import (
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
)

// PartySwitchSystem hands control to the next member when the controlled
// character asks for it.
type PartySwitchSystem struct {
	coord *party.Coordinator
}

func NewPartySwitchSystem(coord *party.Coordinator) *PartySwitchSystem {
	return &PartySwitchSystem{coord: coord}
}

func (s *PartySwitchSystem) Update(w *ecs.World) {
	if s == nil || s.coord == nil || w == nil {
		return
	}

	requested := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		if input.SwitchPressed {
			requested = true
			input.SwitchPressed = false
		}
	})
	if !requested {
		return
	}

	s.coord.SwitchControl()
}
