package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/entity"
	"github.com/milk9111/tandem/ecs/system"
	"github.com/milk9111/tandem/party"
	"github.com/milk9111/tandem/prefabs"
)

var (
	ErrScenarioTimeout = errors.New("partysim: scenario did not finish")
	ErrScenarioFailed  = errors.New("partysim: scenario expectations failed")
)

// Result summarizes one scenario run.
type Result struct {
	Scenario string
	Ticks    int
	Cycles   int
	Failures []string
	Respawns []party.RespawnEvent
}

// runScenario builds a fresh world from prefab and steps it until the script
// finishes or maxTicks frames have run.
func runScenario(prefab, scenario string, maxTicks int, logger *log.Logger) (Result, error) {
	res := Result{Scenario: scenario}

	spec, err := prefabs.LoadPartySpec(prefab)
	if err != nil {
		return res, err
	}

	w := ecs.NewWorld()
	p, err := entity.BuildParty(w, spec, logger)
	if err != nil {
		return res, err
	}

	rt, err := system.NewScenarioRuntime(scenario, p.Coordinator, p.Anchors, logger)
	if err != nil {
		return res, err
	}

	pipeline := system.NewPipeline(nil, p.Coordinator, p.Clock, rt, nil)
	pipeline.Install(w)

	for i := 0; i < maxTicks && !rt.Done(); i++ {
		w.Update()
		for _, evt := range w.Events().Previous() {
			if evt.Type != ecs.EventPartyRespawned {
				continue
			}
			if re, ok := evt.Data.(party.RespawnEvent); ok {
				res.Respawns = append(res.Respawns, re)
			}
		}
	}

	res.Ticks = rt.Ticks()
	res.Cycles = p.State.Cycles()
	res.Failures = rt.Failures()

	switch {
	case rt.Err() != nil:
		return res, rt.Err()
	case len(res.Failures) > 0:
		return res, fmt.Errorf("%w: %s", ErrScenarioFailed, strings.Join(res.Failures, "; "))
	case !rt.Finished():
		return res, fmt.Errorf("%w: %s after %d ticks", ErrScenarioTimeout, scenario, res.Ticks)
	}
	return res, nil
}
