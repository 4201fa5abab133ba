package system

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"github.com/milk9111/tandem/party"
	"github.com/milk9111/tandem/prefabs"
)

// ScenarioRuntime runs a tengo script once per frame against the party. The
// script sees the frame number as __tick, the party API as __party and a map
// that survives between frames as __vars.
type ScenarioRuntime struct {
	name     string
	compiled *tengo.Compiled
	vars     *tengo.Map

	coord   *party.Coordinator
	anchors *AnchorIndex
	logger  *log.Logger

	tick     int
	finished bool
	failures []string
	err      error
}

// NewScenarioRuntime compiles the named script from prefabs/scripts.
func NewScenarioRuntime(name string, coord *party.Coordinator, anchors *AnchorIndex, logger *log.Logger) (*ScenarioRuntime, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	rt := &ScenarioRuntime{name: name, coord: coord, anchors: anchors, logger: logger}
	if err := rt.Reload(); err != nil {
		return nil, err
	}
	return rt, nil
}

// Reload recompiles the script and restarts it from tick zero.
func (rt *ScenarioRuntime) Reload() error {
	src, err := prefabs.LoadScript(rt.name)
	if err != nil {
		return fmt.Errorf("scenario %s: load: %w", rt.name, err)
	}

	script := tengo.NewScript(src)
	for name, value := range map[string]any{
		"__tick":  0,
		"__party": map[string]any{},
		"__vars":  map[string]any{},
	} {
		if err := script.Add(name, value); err != nil {
			return fmt.Errorf("scenario %s: add %s: %w", rt.name, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("scenario %s: compile: %w", rt.name, err)
	}

	rt.compiled = compiled
	rt.vars = &tengo.Map{Value: map[string]tengo.Object{}}
	rt.tick = 0
	rt.finished = false
	rt.failures = nil
	rt.err = nil
	return nil
}

func (rt *ScenarioRuntime) Name() string { return rt.name }

// Ticks is the number of frames the script has run.
func (rt *ScenarioRuntime) Ticks() int { return rt.tick }

// Finished reports whether the script called finish().
func (rt *ScenarioRuntime) Finished() bool { return rt.finished }

// Failures lists the messages of expectations that did not hold.
func (rt *ScenarioRuntime) Failures() []string {
	return append([]string(nil), rt.failures...)
}

// Err returns the runtime error that stopped the script, if any.
func (rt *ScenarioRuntime) Err() error { return rt.err }

// Done reports whether the script will no longer run.
func (rt *ScenarioRuntime) Done() bool { return rt.finished || rt.err != nil }

func (rt *ScenarioRuntime) Update(w *ecs.World) {
	if rt == nil || rt.compiled == nil || w == nil || rt.Done() {
		return
	}

	rt.tick++
	if err := rt.run(w); err != nil {
		rt.err = fmt.Errorf("scenario %s: tick %d: %w", rt.name, rt.tick, err)
		rt.logger.Printf("%v", rt.err)
	}
}

func (rt *ScenarioRuntime) run(w *ecs.World) (err error) {
	// the tengo VM panics on some runtime faults, e.g. integer division by zero
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if err := rt.compiled.Set("__tick", rt.tick); err != nil {
		return err
	}
	if err := rt.compiled.Set("__party", rt.buildPartyAPI(w)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__vars", rt.vars); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (rt *ScenarioRuntime) buildPartyAPI(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	character := func(args []tengo.Object) (ecs.Entity, *component.Character, bool) {
		if len(args) < 1 {
			return 0, nil, false
		}
		return findCharacter(w, objectAsString(args[0]))
	}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		if !ok || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		amount := objectAsFloat(args[1])
		ch.Health.TakeDamage(amount)
		w.Events().Push(ecs.Event{Type: ecs.EventCharacterDamaged, Data: DamageEvent{
			Character: ch.ID,
			Amount:    amount,
			Remaining: ch.Health.Current(),
			Source:    "script",
		}})
		return tengo.TrueValue, nil
	}}

	values["heal"] = &tengo.UserFunction{Name: "heal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		if !ok || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		ch.Health.Heal(objectAsFloat(args[1]))
		return tengo.TrueValue, nil
	}}

	values["hp"] = &tengo.UserFunction{Name: "hp", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: ch.Health.Current()}, nil
	}}

	values["max_hp"] = &tengo.UserFunction{Name: "max_hp", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: ch.Health.Max()}, nil
	}}

	values["dead"] = &tengo.UserFunction{Name: "dead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		return boolObject(ok && ch.Health.IsDead()), nil
	}}

	values["has_control"] = &tengo.UserFunction{Name: "has_control", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		return boolObject(ok && ch.Health.HasControl()), nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y := 0.0, 0.0
		if e, _, ok := character(args); ok {
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				x, y = t.X, t.Y
			}
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	values["cycles"] = &tengo.UserFunction{Name: "cycles", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.coord == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(rt.coord.State().Cycles())}, nil
	}}

	values["switch_control"] = &tengo.UserFunction{Name: "switch_control", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(rt.coord != nil && rt.coord.SwitchControl()), nil
	}}

	values["remove_anchor"] = &tengo.UserFunction{Name: "remove_anchor", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, ch, ok := character(args)
		if !ok || rt.anchors == nil {
			return tengo.FalseValue, nil
		}
		return boolObject(rt.anchors.Remove(ch.ID) > 0), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		msg := strings.Join(parts, " ")
		rt.logger.Printf("scenario %s: %s", rt.name, msg)
		w.Events().Push(ecs.Event{Type: ecs.EventScenarioLog, Data: msg})
		return tengo.UndefinedValue, nil
	}}

	values["expect"] = &tengo.UserFunction{Name: "expect", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		if !args[0].IsFalsy() {
			return tengo.TrueValue, nil
		}
		msg := "expectation failed"
		if len(args) > 1 {
			msg = objectAsString(args[1])
		}
		rt.failures = append(rt.failures, fmt.Sprintf("tick %d: %s", rt.tick, msg))
		rt.logger.Printf("scenario %s: FAIL tick %d: %s", rt.name, rt.tick, msg)
		return tengo.FalseValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.finished = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func findCharacter(w *ecs.World, name string) (ecs.Entity, *component.Character, bool) {
	name = strings.TrimSpace(name)
	for _, e := range w.Query(component.CharacterComponent.Kind()) {
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if ok && ch.Health != nil && ch.Name == name {
			return e, ch, true
		}
	}
	return 0, nil, false
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return 0
	}
}
