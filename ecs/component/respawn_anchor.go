package component

import "github.com/milk9111/tandem/party"

// RespawnAnchor marks an entity whose Transform is where Owner respawns.
type RespawnAnchor struct {
	Name  string
	Owner party.CharacterID
}

var RespawnAnchorComponent = NewComponent[RespawnAnchor]()
