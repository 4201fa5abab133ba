package party

// PartyState is the record a respawn cycle is derived from. One value exists per
// party; only the Coordinator writes it.
type PartyState struct {
	respawning         bool
	hasDeceased        bool
	lastDeceased       CharacterID
	deceasedHadControl bool
	cycles             int
}

// NewPartyState returns a state with no respawn in progress and nobody deceased.
func NewPartyState() *PartyState {
	return &PartyState{}
}

// Reset clears the record so nothing leaks into the next session.
func (s *PartyState) Reset() {
	if s == nil {
		return
	}
	*s = PartyState{}
}

func (s *PartyState) RespawnInProgress() bool {
	return s != nil && s.respawning
}

// LastDeceased returns the member whose death drove the latest cycle.
func (s *PartyState) LastDeceased() (CharacterID, bool) {
	if s == nil || !s.hasDeceased {
		return 0, false
	}
	return s.lastDeceased, true
}

func (s *PartyState) DeceasedHadControl() bool {
	return s != nil && s.deceasedHadControl
}

// Cycles counts respawn broadcasts since the last Reset.
func (s *PartyState) Cycles() int {
	if s == nil {
		return 0
	}
	return s.cycles
}

// ShouldHaveControl applies the handoff rule: the deceased keeps whatever it had,
// everybody else gets the opposite. Whoever held control before the death holds
// it after the respawn.
func (s *PartyState) ShouldHaveControl(id CharacterID) bool {
	if s == nil {
		return false
	}
	if s.hasDeceased && id == s.lastDeceased {
		return s.deceasedHadControl
	}
	return !s.deceasedHadControl
}

func (s *PartyState) record(who CharacterID, hadControl bool) {
	s.hasDeceased = true
	s.lastDeceased = who
	s.deceasedHadControl = hadControl
}

func (s *PartyState) forget(id CharacterID) {
	if s.hasDeceased && s.lastDeceased == id {
		s.hasDeceased = false
		s.lastDeceased = 0
	}
}
