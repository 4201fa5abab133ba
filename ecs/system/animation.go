package system

import (
	"github.com/milk9111/tandem/common"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
)

// AnimationSystem advances animator frames at the fixed tick rate and swaps
// between idle and run from the moving flag.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		def, ok := anim.CurrentDef()
		if !ok {
			return
		}

		if anim.Current == component.AnimationIdle || anim.Current == component.AnimationRun {
			want := component.AnimationIdle
			if anim.Bools[party.MovingFlag] {
				want = component.AnimationRun
			}
			if want != anim.Current && anim.Play(want) {
				return
			}
		}

		if !anim.Playing || def.FrameCount <= 0 {
			return
		}

		fps := def.FPS
		if fps <= 0 {
			fps = common.TPS
		}
		// Advance frame every N ticks based on FPS and the fixed tick rate
		ticksPerFrame := int(common.TPS / fps)
		if ticksPerFrame < 1 {
			ticksPerFrame = 1
		}

		anim.FrameTimer++
		if anim.FrameTimer < ticksPerFrame {
			return
		}
		anim.FrameTimer = 0
		anim.Frame++
		if anim.Frame < def.FrameCount {
			return
		}

		switch {
		case def.Loop:
			anim.Frame = 0
		case def.Next != "" && anim.Play(def.Next):
		default:
			anim.Frame = def.FrameCount - 1
			anim.Playing = false
		}
	})
}
