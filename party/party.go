// Package party holds the shared-fate rules for a two-character party: per-character
// health and control, the death presentation wait, and the coordinator that respawns
// everybody when somebody dies.
package party

import (
	"strconv"
	"time"
)

// CharacterID is the stable identity of a party member.
type CharacterID uint8

func (id CharacterID) String() string {
	return "character#" + strconv.Itoa(int(id))
}

// Pose is a position plus facing angle in world units.
type Pose struct {
	X     float64
	Y     float64
	Angle float64
}

// Vec2 is a directional intent.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Clock reports simulation time since the session started.
type Clock interface {
	Now() time.Duration
}

// ManualClock is a Clock advanced by the tick loop.
type ManualClock struct {
	now time.Duration
}

func (c *ManualClock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward by dt. Negative steps are ignored.
func (c *ManualClock) Advance(dt time.Duration) {
	if c == nil || dt <= 0 {
		return
	}
	c.now += dt
}

// Reset rewinds the clock to zero for a new session.
func (c *ManualClock) Reset() {
	if c == nil {
		return
	}
	c.now = 0
}
