package party

// MovingFlag is the presenter parameter cleared when control changes hands.
const MovingFlag = "IsMoving"

// ControlGate decides whether a character accepts player input.
type ControlGate struct {
	acceptsInput bool
	move         Vec2

	body      Body
	presenter Presenter
}

// NewControlGate creates a gate in the given state. body and presenter may be nil.
func NewControlGate(hasControl bool, body Body, presenter Presenter) *ControlGate {
	return &ControlGate{acceptsInput: hasControl, body: body, presenter: presenter}
}

// HasControl reports whether the character currently receives input.
func (g *ControlGate) HasControl() bool {
	return g != nil && g.acceptsInput
}

// SetControl toggles input acceptance. Setting the current value is a no-op.
// A real transition drops cached input, stops horizontal drift and clears the
// moving animation flag.
func (g *ControlGate) SetControl(value bool) {
	if g == nil || g.acceptsInput == value {
		return
	}
	g.acceptsInput = value
	g.move = Vec2{}

	// mid-teleport bodies are kinematic and must not be written to
	if g.body != nil && !g.body.Kinematic() {
		g.body.ZeroHorizontalVelocity()
	}
	if g.presenter != nil {
		g.presenter.SetBool(MovingFlag, false)
	}
}

// OnMove caches a directional intent. Dropped while the gate is closed.
func (g *ControlGate) OnMove(v Vec2) {
	if !g.HasControl() {
		return
	}
	g.move = v
}

// OnJump reports whether a jump intent should be acted on.
func (g *ControlGate) OnJump() bool {
	return g.HasControl()
}

// Move returns the cached intent, or zero when the gate is closed.
func (g *ControlGate) Move() Vec2 {
	if !g.HasControl() {
		return Vec2{}
	}
	return g.move
}

// Attach swaps the collaborators, used when the body is rebuilt.
func (g *ControlGate) Attach(body Body, presenter Presenter) {
	if g == nil {
		return
	}
	g.body = body
	g.presenter = presenter
}
