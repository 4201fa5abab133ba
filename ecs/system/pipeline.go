package system

import (
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/party"
)

// Pipeline is the per-frame system order shared by the game and the headless
// simulator.
type Pipeline struct {
	Input      *InputSystem
	Switch     *PartySwitchSystem
	Controller *PlayerControllerSystem
	Physics    *PhysicsSystem
	Hazards    *HazardSystem
	Scenario   *ScenarioRuntime
	Health     *HealthSystem
	Animation  *AnimationSystem
	Reload     *ReloadSystem
}

// NewPipeline builds the default systems. scenario and reload may be nil.
func NewPipeline(source InputSource, coord *party.Coordinator, clock *party.ManualClock, scenario *ScenarioRuntime, reload *ReloadSystem) *Pipeline {
	return &Pipeline{
		Input:      NewInputSystem(source),
		Switch:     NewPartySwitchSystem(coord),
		Controller: NewPlayerControllerSystem(),
		Physics:    NewPhysicsSystem(),
		Hazards:    NewHazardSystem(),
		Scenario:   scenario,
		Health:     NewHealthSystem(clock),
		Animation:  NewAnimationSystem(),
		Reload:     reload,
	}
}

// Install registers the systems on w. Scripted damage lands before the health
// tick so a death starts its presentation wait in the same frame.
func (p *Pipeline) Install(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	if p.Reload != nil {
		w.AddSystem(p.Reload)
	}
	w.AddSystem(p.Input)
	w.AddSystem(p.Switch)
	w.AddSystem(p.Controller)
	w.AddSystem(p.Physics)
	w.AddSystem(p.Hazards)
	if p.Scenario != nil {
		w.AddSystem(p.Scenario)
	}
	w.AddSystem(p.Health)
	w.AddSystem(p.Animation)
}
