package entity

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/ecs/system"
	"github.com/milk9111/tandem/party"
	"github.com/milk9111/tandem/prefabs"
)

var ErrNilWorld = errors.New("entity: world is nil")

var defaultColors = []component.Appearance{
	{R: 0xd9, G: 0x8c, B: 0x3f, A: 0xff},
	{R: 0x7f, G: 0x9c, B: 0xf5, A: 0xff},
}

// Party is everything BuildParty wires together.
type Party struct {
	Spec        *prefabs.PartySpec
	Clock       *party.ManualClock
	State       *party.PartyState
	Coordinator *party.Coordinator
	Anchors     *system.AnchorIndex

	// Characters are in prefab order; index i has CharacterID i.
	Characters []ecs.Entity
}

// Character returns the entity of the named character.
func (p *Party) Character(w *ecs.World, name string) (ecs.Entity, *component.Character, bool) {
	for _, e := range p.Characters {
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if ok && ch.Name == name {
			return e, ch, true
		}
	}
	return 0, nil, false
}

// BuildParty creates the characters, respawn anchors, hazards and platforms of
// spec and registers the characters with a fresh coordinator. Respawn and
// control changes are published on the world event queue.
func BuildParty(w *ecs.World, spec *prefabs.PartySpec, logger *log.Logger) (*Party, error) {
	if w == nil {
		return nil, ErrNilWorld
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("party: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	p := &Party{
		Spec:    spec,
		Clock:   &party.ManualClock{},
		State:   party.NewPartyState(),
		Anchors: system.NewAnchorIndex(w),
	}
	p.Coordinator = party.NewCoordinator(p.State, p.Anchors, logger)

	ids := make(map[string]party.CharacterID, len(spec.Characters))
	for i, cs := range spec.Characters {
		id := party.CharacterID(i)
		e, err := buildCharacter(w, p, id, cs, spec.Death, logger)
		if err != nil {
			return nil, fmt.Errorf("party: build character %q: %w", cs.Name, err)
		}
		ids[cs.Name] = id
		p.Characters = append(p.Characters, e)
	}

	for _, as := range spec.Anchors {
		if _, err := buildAnchor(w, ids[as.Owner], as); err != nil {
			return nil, fmt.Errorf("party: build anchor %q: %w", as.Name, err)
		}
	}
	for _, hs := range spec.Hazards {
		if _, err := buildHazard(w, hs); err != nil {
			return nil, fmt.Errorf("party: build hazard %q: %w", hs.Name, err)
		}
	}
	for _, ps := range spec.Platforms {
		if _, err := buildPlatform(w, ps); err != nil {
			return nil, fmt.Errorf("party: build platform %q: %w", ps.Name, err)
		}
	}

	p.Coordinator.OnRespawn(func(evt party.RespawnEvent) {
		w.Events().Push(ecs.Event{Type: ecs.EventPartyRespawned, Data: evt})
	})
	p.Coordinator.OnControlChanged(func(id party.CharacterID) {
		w.Events().Push(ecs.Event{Type: ecs.EventControlChanged, Data: id})
	})

	return p, nil
}

func buildCharacter(w *ecs.World, p *Party, id party.CharacterID, cs prefabs.CharacterSpec, death prefabs.DeathSpec, logger *log.Logger) (ecs.Entity, error) {
	e := w.CreateEntity()

	transform := &component.Transform{X: cs.Transform.X, Y: cs.Transform.Y, Rotation: cs.Transform.Rotation}
	body := &component.PhysicsBody{
		Width:    cs.Collider.Width,
		Height:   cs.Collider.Height,
		Mass:     cs.Collider.Mass,
		Friction: cs.Collider.Friction,
	}
	anim := buildAnimator(cs.Animation)
	bar := &component.HealthBar{Owner: id}

	health := party.NewCharacterHealth(party.HealthConfig{
		ID:             id,
		Name:           cs.Name,
		MaxHealth:      cs.MaxHealth,
		RegenDelay:     cs.RegenDelay,
		RegenRate:      cs.RegenPerSecond,
		DieTrigger:     death.DieTrigger,
		RespawnTrigger: death.RespawnTrigger,
		Watch: party.DeathWatcherConfig{
			Tag:              death.Tag,
			EnterTimeout:     death.EnterTimeout,
			FallbackDuration: death.Fallback,
		},
		HasControl: cs.StartWithControl,
	}, party.HealthDeps{
		Clock:     p.Clock,
		Party:     p.Coordinator,
		Body:      body,
		Presenter: anim,
		Display:   bar,
		Logger:    logger,
	})

	appearance := defaultColors[int(id)%len(defaultColors)]
	if cs.Color != nil && cs.Color.Color != nil {
		appearance = toAppearance(cs.Color.Color)
	}

	adds := []func() error{
		func() error {
			return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{ID: id, Name: cs.Name, Health: health})
		},
		func() error { return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Name: cs.Name}) },
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), transform) },
		func() error { return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body) },
		func() error { return ecs.Add(w, e, component.AnimatorComponent.Kind(), anim) },
		func() error { return ecs.Add(w, e, component.HealthBarComponent.Kind(), bar) },
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error { return ecs.Add(w, e, component.AppearanceComponent.Kind(), &appearance) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: cs.MoveSpeed, JumpSpeed: cs.JumpSpeed})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return 0, err
		}
	}

	p.Coordinator.Register(health)
	return e, nil
}

func buildAnimator(spec prefabs.AnimationSpec) *component.Animator {
	anim := &component.Animator{
		Defs:     make(map[string]component.AnimationDef, len(spec.Defs)),
		Triggers: make(map[string]string, len(spec.Triggers)),
		Bools:    map[string]bool{},
	}
	for name, def := range spec.Defs {
		anim.Defs[name] = component.AnimationDef{
			Name:       name,
			Tag:        def.Tag,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			Loop:       def.Loop,
			Next:       def.Next,
		}
	}
	for trigger, target := range spec.Triggers {
		anim.Triggers[trigger] = target
	}

	initial := spec.Initial
	if initial == "" {
		initial = component.AnimationIdle
	}
	anim.Play(initial)
	return anim
}

func buildAnchor(w *ecs.World, owner party.CharacterID, as prefabs.AnchorSpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.RespawnAnchorComponent.Kind(), &component.RespawnAnchor{Name: as.Name, Owner: owner}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transformFromSpec(as.Transform)); err != nil {
		return 0, err
	}
	return e, nil
}

func buildHazard(w *ecs.World, hs prefabs.HazardSpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	hazard := &component.Hazard{
		Width:           hs.Collider.Width,
		Height:          hs.Collider.Height,
		OffsetX:         hs.Collider.OffsetX,
		OffsetY:         hs.Collider.OffsetY,
		Damage:          hs.Damage,
		PreventMultiHit: hs.PreventMultiHit,
		DestroyOnHit:    hs.DestroyOnHit,
	}
	if err := ecs.Add(w, e, component.HazardComponent.Kind(), hazard); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.HazardTagComponent.Kind(), &component.HazardTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Name: hs.Name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transformFromSpec(hs.Transform)); err != nil {
		return 0, err
	}
	return e, nil
}

func buildPlatform(w *ecs.World, ps prefabs.PlatformSpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	body := &component.PhysicsBody{
		Width:    ps.Collider.Width,
		Height:   ps.Collider.Height,
		Friction: ps.Collider.Friction,
		Static:   true,
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Name: ps.Name}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transformFromSpec(ps.Transform)); err != nil {
		return 0, err
	}
	return e, nil
}

func transformFromSpec(t prefabs.TransformSpec) *component.Transform {
	return &component.Transform{X: t.X, Y: t.Y, Rotation: t.Rotation}
}

func toAppearance(c color.Color) component.Appearance {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return component.Appearance{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ApplyTuning pushes regen and hazard damage from a reloaded spec onto the
// running party. Structural changes need a restart and are reported.
func ApplyTuning(w *ecs.World, p *Party, spec *prefabs.PartySpec, logger *log.Logger) error {
	if w == nil || p == nil {
		return ErrNilWorld
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("party: reload: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	for _, e := range p.Characters {
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if !ok || ch.Health == nil {
			continue
		}
		cs, ok := spec.Character(ch.Name)
		if !ok {
			logger.Printf("party: reload dropped %s; restart to apply", ch.Name)
			continue
		}
		ch.Health.SetRegen(cs.RegenDelay, cs.RegenPerSecond)
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			player.MoveSpeed = cs.MoveSpeed
			player.JumpSpeed = cs.JumpSpeed
		}
	}

	damage := make(map[string]float64, len(spec.Hazards))
	for _, hs := range spec.Hazards {
		damage[hs.Name] = hs.Damage
	}
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.NameComponent.Kind(), func(e ecs.Entity, h *component.Hazard, n *component.Name) {
		if d, ok := damage[n.Name]; ok {
			h.Damage = d
		}
	})

	p.Spec = spec
	logger.Printf("party: reloaded tuning for %q", spec.Name)
	return nil
}
