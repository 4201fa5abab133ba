package party

// Presenter is the narrow animation surface the party logic relies on.
type Presenter interface {
	// InState reports whether the current presentation state carries tag.
	InState(tag string) bool
	Trigger(name string)
	SetBool(name string, value bool)
}

// Body is the physics surface used for velocity resets and teleports.
type Body interface {
	ZeroHorizontalVelocity()
	ZeroVelocity()
	// Kinematic reports whether the body is locked out of dynamic simulation.
	Kinematic() bool
	Teleport(p Pose)
}

// HealthDisplay receives health updates for the UI.
type HealthDisplay interface {
	UpdateDisplay(maxHealth, currentHealth float64)
}

// AnchorSource resolves a member's respawn anchor.
type AnchorSource interface {
	RespawnAnchor(id CharacterID) (Pose, bool)
}

// AnchorFunc adapts a function to AnchorSource.
type AnchorFunc func(id CharacterID) (Pose, bool)

func (f AnchorFunc) RespawnAnchor(id CharacterID) (Pose, bool) {
	if f == nil {
		return Pose{}, false
	}
	return f(id)
}
