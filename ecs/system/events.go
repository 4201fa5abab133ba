package system

import "github.com/milk9111/tandem/party"

// DamageEvent is the payload of ecs.EventCharacterDamaged.
type DamageEvent struct {
	Character party.CharacterID
	Amount    float64
	Remaining float64
	// Source names what dealt the damage: a hazard name, "debug" or "script".
	Source string
}

// HazardHitEvent is the payload of ecs.EventHazardHit.
type HazardHitEvent struct {
	Hazard    string
	Character party.CharacterID
	Destroyed bool
}
