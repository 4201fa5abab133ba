package component

import "github.com/milk9111/tandem/party"

// Character binds an entity to its party member.
type Character struct {
	ID     party.CharacterID
	Name   string
	Health *party.CharacterHealth
}

var CharacterComponent = NewComponent[Character]()

// Player holds locomotion tuning for a controllable character.
type Player struct {
	MoveSpeed float64
	JumpSpeed float64
}

var PlayerComponent = NewComponent[Player]()
