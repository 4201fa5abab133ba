package party

import (
	"io"
	"log"
)

// Member is a character the coordinator respawns and hands control to.
type Member interface {
	ID() CharacterID
	Name() string
	IsDead() bool
	HasControl() bool
	SetControl(value bool)
	Respawn(anchor *Pose)
}

// RespawnEvent describes a finished respawn cycle.
type RespawnEvent struct {
	Cycle              int
	Deceased           CharacterID
	DeceasedHadControl bool
	// Controller is the member holding control after the cycle.
	Controller    CharacterID
	HasController bool
}

// Coordinator turns member deaths into party-wide respawns.
type Coordinator struct {
	state   *PartyState
	anchors AnchorSource
	logger  *log.Logger

	members []Member

	respawnListeners []func(RespawnEvent)
	controlListeners []func(CharacterID)
}

// NewCoordinator creates a coordinator over state. anchors may be nil, in which
// case members respawn in place.
func NewCoordinator(state *PartyState, anchors AnchorSource, logger *log.Logger) *Coordinator {
	if state == nil {
		state = NewPartyState()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Coordinator{state: state, anchors: anchors, logger: logger}
}

func (c *Coordinator) State() *PartyState { return c.state }

// Members returns the registered members in registration order.
func (c *Coordinator) Members() []Member {
	return append([]Member(nil), c.members...)
}

// Member returns the registered member with id.
func (c *Coordinator) Member(id CharacterID) (Member, bool) {
	for _, m := range c.members {
		if m.ID() == id {
			return m, true
		}
	}
	return nil, false
}

// Register adds m to the respawn broadcast. Registering an id twice replaces
// the earlier member.
func (c *Coordinator) Register(m Member) {
	if m == nil {
		return
	}
	for i, existing := range c.members {
		if existing.ID() == m.ID() {
			c.members[i] = m
			return
		}
	}
	c.members = append(c.members, m)
}

// Unregister removes a member and forgets it as the last deceased.
func (c *Coordinator) Unregister(id CharacterID) {
	out := c.members[:0]
	for _, m := range c.members {
		if m.ID() != id {
			out = append(out, m)
		}
	}
	for i := len(out); i < len(c.members); i++ {
		c.members[i] = nil
	}
	c.members = out
	c.state.forget(id)
}

// OnRespawn registers a listener called after every respawn cycle.
func (c *Coordinator) OnRespawn(fn func(RespawnEvent)) {
	if fn != nil {
		c.respawnListeners = append(c.respawnListeners, fn)
	}
}

// OnControlChanged registers a listener called when a switch or assignment
// moves control.
func (c *Coordinator) OnControlChanged(fn func(CharacterID)) {
	if fn != nil {
		c.controlListeners = append(c.controlListeners, fn)
	}
}

// OnCharacterDied starts a respawn cycle for who. Calls made while a cycle is
// being broadcast are dropped; later calls start a new cycle.
func (c *Coordinator) OnCharacterDied(who CharacterID, hadControlBeforeDeath bool) {
	if c.state.respawning {
		c.logger.Printf("party: ignoring death of %s during respawn", who)
		return
	}
	if _, ok := c.Member(who); !ok {
		c.logger.Printf("party: ignoring death of unknown member %s", who)
		return
	}

	c.state.respawning = true
	c.state.record(who, hadControlBeforeDeath)
	c.RespawnAll()
	c.state.respawning = false
}

// RespawnAll moves every member to its anchor, restores health and re-derives
// control from the party state. With no recorded death the current controller
// keeps control, or the first member when nobody holds it.
func (c *Coordinator) RespawnAll() {
	c.state.cycles++
	_, derive := c.state.LastDeceased()
	keep, ok := c.Controller()
	if !ok && len(c.members) > 0 {
		keep = c.members[0].ID()
	}

	// copy so a listener registering members mid-broadcast does not shift the loop
	members := append([]Member(nil), c.members...)
	for _, m := range members {
		var anchor *Pose
		if c.anchors != nil {
			if p, ok := c.anchors.RespawnAnchor(m.ID()); ok {
				anchor = &p
			}
		}
		if anchor == nil {
			c.logger.Printf("party: missing respawn anchor for %s", m.Name())
		}

		m.Respawn(anchor)
		if derive {
			m.SetControl(c.state.ShouldHaveControl(m.ID()))
		} else {
			m.SetControl(m.ID() == keep)
		}
	}

	evt := RespawnEvent{
		Cycle:              c.state.cycles,
		DeceasedHadControl: c.state.deceasedHadControl,
	}
	evt.Deceased, _ = c.state.LastDeceased()
	evt.Controller, evt.HasController = c.Controller()

	c.logger.Printf("party: respawn cycle %d after death of %s", evt.Cycle, evt.Deceased)
	for _, fn := range c.respawnListeners {
		fn(evt)
	}
}

// Controller returns the member currently holding control.
func (c *Coordinator) Controller() (CharacterID, bool) {
	for _, m := range c.members {
		if m.HasControl() {
			return m.ID(), true
		}
	}
	return 0, false
}

// AssignControl gives control to id and takes it from every other member.
func (c *Coordinator) AssignControl(id CharacterID) bool {
	if _, ok := c.Member(id); !ok {
		return false
	}
	for _, m := range c.members {
		m.SetControl(m.ID() == id)
	}
	for _, fn := range c.controlListeners {
		fn(id)
	}
	return true
}

// SwitchControl hands control to the next member in registration order. It is
// refused while a cycle runs or any member is dead.
func (c *Coordinator) SwitchControl() bool {
	if c.state.respawning || len(c.members) < 2 {
		return false
	}
	current := -1
	for i, m := range c.members {
		if m.IsDead() {
			return false
		}
		if m.HasControl() && current < 0 {
			current = i
		}
	}
	next := c.members[(current+1)%len(c.members)]
	return c.AssignControl(next.ID())
}

// Reset clears the party state for a new session.
func (c *Coordinator) Reset() {
	c.state.Reset()
}

var (
	_ Member    = (*CharacterHealth)(nil)
	_ DeathSink = (*Coordinator)(nil)
)
