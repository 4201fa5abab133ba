package system_test

import (
	"testing"

	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/ecs/entity"
	"github.com/milk9111/tandem/party"
	"github.com/milk9111/tandem/prefabs"
)

func loadParty(t *testing.T) (*ecs.World, *entity.Party) {
	t.Helper()
	spec, err := prefabs.LoadPartySpec(prefabs.PartyFile)
	if err != nil {
		t.Fatalf("load party: %v", err)
	}
	w := ecs.NewWorld()
	p, err := entity.BuildParty(w, spec, nil)
	if err != nil {
		t.Fatalf("build party: %v", err)
	}
	return w, p
}

func character(t *testing.T, w *ecs.World, p *entity.Party, name string) (ecs.Entity, *component.Character) {
	t.Helper()
	e, ch, ok := p.Character(w, name)
	if !ok {
		t.Fatalf("no character %q", name)
	}
	return e, ch
}

// addCharacter builds a bare character entity without physics bodies so
// systems can be driven one at a time.
func addCharacter(t *testing.T, w *ecs.World, id party.CharacterID, x, y float64, control bool) (ecs.Entity, *party.CharacterHealth) {
	t.Helper()
	return addClockedCharacter(t, w, nil, id, x, y, control)
}

func addClockedCharacter(t *testing.T, w *ecs.World, clock *party.ManualClock, id party.CharacterID, x, y float64, control bool) (ecs.Entity, *party.CharacterHealth) {
	t.Helper()
	var c party.Clock
	if clock != nil {
		c = clock
	}
	anim := &component.Animator{
		Defs: map[string]component.AnimationDef{
			"idle":  {Name: "idle", FrameCount: 1, FPS: 1, Loop: true},
			"death": {Name: "death", Tag: party.DefaultDeathTag, FrameCount: 2, FPS: 60, Next: "idle"},
		},
		Triggers: map[string]string{party.DefaultDieTrigger: "death", party.DefaultRespawnTrigger: "idle"},
	}
	anim.Play("idle")
	body := &component.PhysicsBody{Width: 20, Height: 20}
	health := party.NewCharacterHealth(party.HealthConfig{ID: id, Name: id.String(), MaxHealth: 10, HasControl: control}, party.HealthDeps{
		Clock:     c,
		Body:      body,
		Presenter: anim,
	})

	e := w.CreateEntity()
	mustAdd(t, ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{ID: id, Name: id.String(), Health: health}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body))
	mustAdd(t, ecs.Add(w, e, component.AnimatorComponent.Kind(), anim))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	return e, health
}

func addHazard(t *testing.T, w *ecs.World, x, y float64, h component.Hazard) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	if h.Width == 0 {
		h.Width, h.Height = 20, 20
	}
	mustAdd(t, ecs.Add(w, e, component.HazardComponent.Kind(), &h))
	mustAdd(t, ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Name: "spikes"}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	return e
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func eventsOf(evts []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, e := range evts {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
