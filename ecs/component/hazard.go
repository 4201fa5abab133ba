package component

// Hazard damages characters it overlaps. Bounds are world units centered on the
// Transform, shifted by the offsets.
type Hazard struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	Damage  float64

	// PreventMultiHit skips targets in Hit until the party respawns.
	PreventMultiHit bool
	DestroyOnHit    bool

	// Contacts holds the raw entity handles currently touching the hazard.
	Contacts map[uint64]bool
	Hit      map[uint64]bool
}

var HazardComponent = NewComponent[Hazard]()
