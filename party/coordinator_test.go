package party

import (
	"testing"
)

type testParty struct {
	clock   *ManualClock
	state   *PartyState
	coord   *Coordinator
	members [2]*CharacterHealth
	bodies  [2]*fakeBody
	pres    [2]*fakePresenter
	events  []RespawnEvent
}

var testAnchors = map[CharacterID]Pose{
	0: {X: 100, Y: 50},
	1: {X: 140, Y: 50},
}

func newTestParty(t *testing.T, controller CharacterID, anchors AnchorSource) *testParty {
	t.Helper()
	p := &testParty{clock: &ManualClock{}, state: NewPartyState()}
	if anchors == nil {
		anchors = AnchorFunc(func(id CharacterID) (Pose, bool) {
			pose, ok := testAnchors[id]
			return pose, ok
		})
	}
	p.coord = NewCoordinator(p.state, anchors, nil)
	p.coord.OnRespawn(func(evt RespawnEvent) { p.events = append(p.events, evt) })

	for i := range p.members {
		id := CharacterID(i)
		p.bodies[i] = &fakeBody{}
		p.pres[i] = newFakePresenter()
		p.members[i] = NewCharacterHealth(HealthConfig{
			ID:         id,
			MaxHealth:  10,
			HasControl: id == controller,
		}, HealthDeps{
			Clock:     p.clock,
			Party:     p.coord,
			Body:      p.bodies[i],
			Presenter: p.pres[i],
		})
		p.coord.Register(p.members[i])
	}
	return p
}

func (p *testParty) tick(n int) {
	for i := 0; i < n; i++ {
		p.clock.Advance(frame)
		for _, m := range p.members {
			m.Tick(frame)
		}
	}
}

func (p *testParty) controllers() int {
	n := 0
	for _, m := range p.members {
		if m.HasControl() {
			n++
		}
	}
	return n
}

func TestRespawnKeepsControlWithPreviousHolder(t *testing.T) {
	cases := []struct {
		name       string
		controller CharacterID
		dies       CharacterID
		wantCtrl   CharacterID
	}{
		{"controlled_dies", 0, 0, 0},
		{"uncontrolled_dies", 0, 1, 0},
		{"partner_controlled_dies", 1, 1, 1},
		{"partner_uncontrolled_dies", 1, 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestParty(t, c.controller, nil)
			p.members[c.dies].TakeDamage(10)
			p.tick(3 * 60)

			if len(p.events) != 1 {
				t.Fatalf("expected one respawn cycle, got %d", len(p.events))
			}
			if p.controllers() != 1 {
				t.Fatalf("expected exactly one controller, got %d", p.controllers())
			}
			if !p.members[c.wantCtrl].HasControl() {
				t.Fatalf("expected %v to hold control", c.wantCtrl)
			}

			deceased, ok := p.state.LastDeceased()
			if !ok || deceased != c.dies {
				t.Fatalf("expected last deceased %v, got %v ok=%v", c.dies, deceased, ok)
			}
			if p.members[c.dies].HasControl() != p.state.DeceasedHadControl() {
				t.Fatalf("deceased control does not match recorded state")
			}
			for i, m := range p.members {
				if m.IsDead() || m.Current() != m.Max() {
					t.Fatalf("member %d not restored: dead=%v hp=%v", i, m.IsDead(), m.Current())
				}
				if got := p.bodies[i].pose; got != testAnchors[CharacterID(i)] {
					t.Fatalf("member %d at %+v, want %+v", i, got, testAnchors[CharacterID(i)])
				}
			}
			if p.state.RespawnInProgress() {
				t.Fatalf("guard left set after cycle")
			}
		})
	}
}

func TestRespawnWaitsForDeathAnimation(t *testing.T) {
	p := newTestParty(t, 0, nil)
	p.members[1].TakeDamage(10)

	p.pres[1].tags[DefaultDeathTag] = true
	p.tick(5 * 60)
	if len(p.events) != 0 {
		t.Fatalf("respawned while death animation still playing")
	}
	if !p.members[0].HasControl() {
		t.Fatalf("survivor lost control during the death")
	}

	p.pres[1].tags[DefaultDeathTag] = false
	p.tick(1)
	if len(p.events) != 1 {
		t.Fatalf("expected respawn right after the animation, got %d", len(p.events))
	}
}

func TestMissingAnchorStillResets(t *testing.T) {
	anchors := AnchorFunc(func(id CharacterID) (Pose, bool) {
		if id == 1 {
			return Pose{}, false
		}
		return testAnchors[id], true
	})
	p := newTestParty(t, 1, anchors)
	p.bodies[1].pose = Pose{X: 7, Y: 9}

	p.members[1].TakeDamage(10)
	p.tick(3 * 60)

	if len(p.bodies[1].teleports) != 0 || p.bodies[1].pose != (Pose{X: 7, Y: 9}) {
		t.Fatalf("member without anchor moved: %+v", p.bodies[1].teleports)
	}
	if p.members[1].IsDead() || p.members[1].Current() != 10 {
		t.Fatalf("member without anchor not restored")
	}
	if !p.members[1].HasControl() || p.members[0].HasControl() {
		t.Fatalf("control not restored to member 1")
	}
}

// reentrantMember reports another death while being respawned.
type reentrantMember struct {
	*CharacterHealth
	coord    *Coordinator
	respawns int
}

func (m *reentrantMember) Respawn(anchor *Pose) {
	m.respawns++
	m.coord.OnCharacterDied(m.ID(), true)
	m.CharacterHealth.Respawn(anchor)
}

func TestReentrantDeathIgnored(t *testing.T) {
	state := NewPartyState()
	coord := NewCoordinator(state, nil, nil)
	a := NewCharacterHealth(HealthConfig{ID: 0, MaxHealth: 1, HasControl: true}, HealthDeps{Party: coord})
	b := &reentrantMember{
		CharacterHealth: NewCharacterHealth(HealthConfig{ID: 1, MaxHealth: 1}, HealthDeps{Party: coord}),
		coord:           coord,
	}
	coord.Register(a)
	coord.Register(b)

	var cycles int
	coord.OnRespawn(func(RespawnEvent) { cycles++ })

	coord.OnCharacterDied(0, true)

	if cycles != 1 || b.respawns != 1 {
		t.Fatalf("expected one cycle, got %d (respawns %d)", cycles, b.respawns)
	}
	if deceased, _ := state.LastDeceased(); deceased != 0 {
		t.Fatalf("reentrant call overwrote last deceased with %v", deceased)
	}
	if !a.HasControl() || b.HasControl() {
		t.Fatalf("unexpected control after reentrant cycle")
	}
}

func TestSequentialDeathsStartNewCycles(t *testing.T) {
	p := newTestParty(t, 0, nil)

	p.members[0].TakeDamage(10)
	p.tick(3 * 60)
	p.members[1].TakeDamage(10)
	p.tick(3 * 60)

	if len(p.events) != 2 {
		t.Fatalf("expected two independent cycles, got %d", len(p.events))
	}
	if p.events[1].Deceased != 1 || p.events[1].Cycle != 2 {
		t.Fatalf("unexpected second cycle %+v", p.events[1])
	}
	if !p.members[0].HasControl() || p.controllers() != 1 {
		t.Fatalf("control should stay with member 0")
	}
}

func TestSimultaneousDeathsCollapseIntoOneCycle(t *testing.T) {
	p := newTestParty(t, 1, nil)
	p.members[0].TakeDamage(10)
	p.members[1].TakeDamage(10)
	p.tick(3 * 60)

	if len(p.events) != 1 {
		t.Fatalf("expected a single cycle, got %d", len(p.events))
	}
	if p.controllers() != 1 {
		t.Fatalf("expected one controller, got %d", p.controllers())
	}
}

func TestSwitchControl(t *testing.T) {
	p := newTestParty(t, 0, nil)
	var changes []CharacterID
	p.coord.OnControlChanged(func(id CharacterID) { changes = append(changes, id) })

	if !p.coord.SwitchControl() {
		t.Fatalf("switch refused")
	}
	if p.members[0].HasControl() || !p.members[1].HasControl() {
		t.Fatalf("control did not move to member 1")
	}
	if !p.coord.SwitchControl() || !p.members[0].HasControl() {
		t.Fatalf("control did not move back")
	}
	if len(changes) != 2 || changes[0] != 1 || changes[1] != 0 {
		t.Fatalf("unexpected change notifications %v", changes)
	}

	p.members[1].TakeDamage(10)
	if p.coord.SwitchControl() {
		t.Fatalf("switch allowed while a member is dead")
	}
	if !p.members[0].HasControl() {
		t.Fatalf("refused switch changed control")
	}
}

func TestSwitchClearsCachedInput(t *testing.T) {
	p := newTestParty(t, 0, nil)
	gate := p.members[0].Gate()
	gate.OnMove(Vec2{X: 1})
	p.bodies[0].vx = 5

	p.coord.SwitchControl()
	p.coord.SwitchControl()

	if gate.Move() != (Vec2{}) {
		t.Fatalf("cached input survived control change: %+v", gate.Move())
	}
	if p.bodies[0].vx != 0 {
		t.Fatalf("horizontal velocity not cleared")
	}
	if p.pres[0].bools["IsMoving"] {
		t.Fatalf("moving flag left set")
	}
}

func TestUnregisterForgetsDeceased(t *testing.T) {
	p := newTestParty(t, 0, nil)
	p.coord.OnCharacterDied(1, false)
	p.coord.Unregister(1)

	if _, ok := p.state.LastDeceased(); ok {
		t.Fatalf("stale last deceased survived unregister")
	}
	if len(p.coord.Members()) != 1 {
		t.Fatalf("expected one member left")
	}
}

func TestResetClearsState(t *testing.T) {
	p := newTestParty(t, 0, nil)
	p.coord.OnCharacterDied(0, true)
	p.coord.Reset()

	if p.state.RespawnInProgress() || p.state.DeceasedHadControl() || p.state.Cycles() != 0 {
		t.Fatalf("state not reset: %+v", *p.state)
	}
	if _, ok := p.state.LastDeceased(); ok {
		t.Fatalf("last deceased survived reset")
	}
}

func TestRespawnWithoutDeathKeepsController(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(p *testParty)
		want    CharacterID
	}{
		{"fresh", func(*testParty) {}, 0},
		{"after_reset", func(p *testParty) {
			p.coord.OnCharacterDied(1, false)
			p.coord.AssignControl(1)
			p.coord.Reset()
		}, 1},
		{"after_unregister", func(p *testParty) {
			p.coord.OnCharacterDied(1, false)
			p.coord.Unregister(1)
			p.coord.Register(p.members[1])
			p.coord.AssignControl(1)
		}, 1},
		{"nobody_in_control", func(p *testParty) {
			p.members[0].SetControl(false)
		}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestParty(t, 0, nil)
			c.prepare(p)

			p.coord.RespawnAll()

			if p.controllers() != 1 {
				t.Fatalf("expected one controller, got %d", p.controllers())
			}
			if id, ok := p.coord.Controller(); !ok || id != c.want {
				t.Fatalf("expected %v in control, got %v", c.want, id)
			}
		})
	}
}

func TestUnknownDeathIgnored(t *testing.T) {
	p := newTestParty(t, 0, nil)

	p.coord.OnCharacterDied(7, true)

	if len(p.events) != 0 || p.state.Cycles() != 0 {
		t.Fatalf("unknown member started a cycle")
	}
	if _, ok := p.state.LastDeceased(); ok {
		t.Fatalf("unknown member recorded as deceased")
	}
	if !p.members[0].HasControl() || p.controllers() != 1 {
		t.Fatalf("control changed after unknown death")
	}
}
