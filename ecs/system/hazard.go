package system

import (
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
)

// HazardSystem damages characters when they come into contact with a hazard.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

type hazardAABB struct {
	x float64
	y float64
	w float64
	h float64
}

func overlapsAABB(a, b hazardAABB) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

func centeredAABB(cx, cy, width, height float64) (hazardAABB, bool) {
	if width <= 0 || height <= 0 {
		return hazardAABB{}, false
	}
	return hazardAABB{x: cx - width/2, y: cy - height/2, w: width, h: height}, true
}

func hazardBounds(h *component.Hazard, t *component.Transform) (hazardAABB, bool) {
	if h == nil || t == nil {
		return hazardAABB{}, false
	}
	return centeredAABB(t.X+h.OffsetX, t.Y+h.OffsetY, h.Width, h.Height)
}

func physicsBodyAABB(t *component.Transform, b *component.PhysicsBody) (hazardAABB, bool) {
	if t == nil || b == nil {
		return hazardAABB{}, false
	}
	return centeredAABB(t.X, t.Y, b.Width, b.Height)
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	respawned := false
	for _, evt := range w.Events().Previous() {
		if evt.Type == ecs.EventPartyRespawned {
			respawned = true
			break
		}
	}

	characters := w.Query(
		component.CharacterComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)

	hazards := w.Query(component.HazardComponent.Kind(), component.TransformComponent.Kind())
	for _, he := range hazards {
		hazard, _ := ecs.Get(w, he, component.HazardComponent.Kind())
		ht, _ := ecs.Get(w, he, component.TransformComponent.Kind())
		if hazard.Contacts == nil {
			hazard.Contacts = make(map[uint64]bool)
		}
		if hazard.Hit == nil {
			hazard.Hit = make(map[uint64]bool)
		}
		if respawned {
			clear(hazard.Hit)
		}

		bounds, ok := hazardBounds(hazard, ht)
		if !ok {
			continue
		}
		name := ""
		if ref, ok := ecs.Get(w, he, component.NameComponent.Kind()); ok {
			name = ref.Name
		}

		for _, ce := range characters {
			ch, _ := ecs.Get(w, ce, component.CharacterComponent.Kind())
			ct, _ := ecs.Get(w, ce, component.TransformComponent.Kind())
			body, _ := ecs.Get(w, ce, component.PhysicsBodyComponent.Kind())
			target, ok := physicsBodyAABB(ct, body)
			key := uint64(ce)
			if !ok || !overlapsAABB(bounds, target) {
				delete(hazard.Contacts, key)
				continue
			}
			if hazard.Contacts[key] {
				continue
			}
			hazard.Contacts[key] = true

			if ch.Health == nil || ch.Health.IsDead() {
				continue
			}
			if hazard.PreventMultiHit && hazard.Hit[key] {
				continue
			}

			ch.Health.TakeDamage(hazard.Damage)
			if hazard.PreventMultiHit {
				hazard.Hit[key] = true
			}

			w.Events().Push(ecs.Event{Type: ecs.EventCharacterDamaged, Data: DamageEvent{
				Character: ch.ID,
				Amount:    hazard.Damage,
				Remaining: ch.Health.Current(),
				Source:    name,
			}})
			w.Events().Push(ecs.Event{Type: ecs.EventHazardHit, Data: HazardHitEvent{
				Hazard:    name,
				Character: ch.ID,
				Destroyed: hazard.DestroyOnHit,
			}})

			if hazard.DestroyOnHit {
				w.DestroyEntity(he)
				break
			}
		}
	}
}
