package component

import "github.com/milk9111/tandem/party"

// Input stores the intents polled this frame.
type Input struct {
	Move          party.Vec2
	Jump          bool
	JumpPressed   bool
	SwitchPressed bool
	DebugDamage   bool
	DebugHeal     bool
}

var InputComponent = NewComponent[Input]()
