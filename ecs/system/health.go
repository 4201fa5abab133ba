package system

import (
	"time"

	"github.com/milk9111/tandem/common"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
)

const (
	debugDamageAmount = 1.0
	debugHealAmount   = 1.0
)

// HealthSystem owns the simulation clock. Each frame it advances the clock,
// applies debug damage and heal intents of the controlled character, then ticks
// every character's regen and death wait.
type HealthSystem struct {
	clock *party.ManualClock
	step  time.Duration
}

func NewHealthSystem(clock *party.ManualClock) *HealthSystem {
	if clock == nil {
		clock = &party.ManualClock{}
	}
	return &HealthSystem{clock: clock, step: time.Second / common.TPS}
}

func (h *HealthSystem) Clock() *party.ManualClock {
	if h == nil {
		return nil
	}
	return h.clock
}

// Step is the simulated duration of one frame.
func (h *HealthSystem) Step() time.Duration {
	if h == nil {
		return 0
	}
	return h.step
}

func (h *HealthSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}

	h.clock.Advance(h.step)

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ch *component.Character, input *component.Input) {
		if ch.Health == nil || !ch.Health.HasControl() {
			return
		}
		if input.DebugDamage {
			ch.Health.TakeDamage(debugDamageAmount)
			w.Events().Push(ecs.Event{Type: ecs.EventCharacterDamaged, Data: DamageEvent{
				Character: ch.ID,
				Amount:    debugDamageAmount,
				Remaining: ch.Health.Current(),
				Source:    "debug",
			}})
		}
		if input.DebugHeal {
			ch.Health.Heal(debugHealAmount)
		}
	})

	// Ticking one character may finish its death wait and respawn the whole
	// party; the query snapshot keeps the loop valid through that.
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, ch *component.Character) {
		if ch.Health == nil {
			return
		}
		ch.Health.Tick(h.step)
	})
}
