package system

import (
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
)

// AnchorIndex resolves respawn anchors from the world at respawn time, so
// anchors added or removed mid-session are honored.
type AnchorIndex struct {
	world *ecs.World
}

func NewAnchorIndex(w *ecs.World) *AnchorIndex {
	return &AnchorIndex{world: w}
}

// RespawnAnchor returns the pose of the first anchor owned by id.
func (a *AnchorIndex) RespawnAnchor(id party.CharacterID) (party.Pose, bool) {
	if a == nil || a.world == nil {
		return party.Pose{}, false
	}
	for _, e := range a.world.Query(component.RespawnAnchorComponent.Kind(), component.TransformComponent.Kind()) {
		anchor, _ := ecs.Get(a.world, e, component.RespawnAnchorComponent.Kind())
		if anchor.Owner != id {
			continue
		}
		t, _ := ecs.Get(a.world, e, component.TransformComponent.Kind())
		return t.Pose(), true
	}
	return party.Pose{}, false
}

// Remove destroys every anchor owned by id and reports how many were removed.
func (a *AnchorIndex) Remove(id party.CharacterID) int {
	if a == nil || a.world == nil {
		return 0
	}
	removed := 0
	for _, e := range a.world.Query(component.RespawnAnchorComponent.Kind()) {
		anchor, _ := ecs.Get(a.world, e, component.RespawnAnchorComponent.Kind())
		if anchor.Owner == id && a.world.DestroyEntity(e) {
			removed++
		}
	}
	return removed
}

var _ party.AnchorSource = (*AnchorIndex)(nil)
