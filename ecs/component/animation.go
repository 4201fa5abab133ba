package component

import "github.com/milk9111/tandem/party"

// Locomotion states the animation system switches between.
const (
	AnimationIdle = "idle"
	AnimationRun  = "run"
)

type AnimationDef struct {
	Name       string
	Tag        string
	FrameCount int
	FPS        float64
	Loop       bool
	// Next is entered when a non-looping animation finishes.
	Next string
}

// Animator is a small state graph: named animations, triggers that jump to a
// state, and boolean parameters the animation system reads to pick locomotion.
// It implements party.Presenter.
type Animator struct {
	Defs     map[string]AnimationDef
	Triggers map[string]string
	Bools    map[string]bool

	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimatorComponent = NewComponent[Animator]()

// Play switches to name from its first frame. Unknown names are ignored.
func (a *Animator) Play(name string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

// CurrentDef returns the definition of the playing animation.
func (a *Animator) CurrentDef() (AnimationDef, bool) {
	if a == nil {
		return AnimationDef{}, false
	}
	def, ok := a.Defs[a.Current]
	return def, ok
}

func (a *Animator) InState(tag string) bool {
	def, ok := a.CurrentDef()
	return ok && tag != "" && def.Tag == tag
}

func (a *Animator) Trigger(name string) {
	if a == nil {
		return
	}
	if target, ok := a.Triggers[name]; ok {
		a.Play(target)
	}
}

func (a *Animator) SetBool(name string, value bool) {
	if a == nil {
		return
	}
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	a.Bools[name] = value
}

var _ party.Presenter = (*Animator)(nil)
