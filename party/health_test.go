package party

import (
	"math"
	"testing"
	"time"
)

const frame = time.Second / 60

func newTestHealth(t *testing.T, max float64, hasControl bool) (*CharacterHealth, *ManualClock, *fakeDisplay, *recordingSink) {
	t.Helper()
	clock := &ManualClock{}
	display := &fakeDisplay{}
	sink := &recordingSink{}
	h := NewCharacterHealth(HealthConfig{
		ID:         1,
		Name:       "capy",
		MaxHealth:  max,
		RegenDelay: DefaultRegenDelay,
		RegenRate:  DefaultRegenRate,
		HasControl: hasControl,
	}, HealthDeps{Clock: clock, Party: sink, Display: display})
	return h, clock, display, sink
}

func TestTakeDamageClamps(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		amount float64
		want   float64
		dead   bool
	}{
		{"partial", 10, 3, 7, false},
		{"zero_amount", 10, 0, 10, false},
		{"exact_kill", 4, 4, 0, true},
		{"overkill", 2, 50, 0, true},
		{"negative_rejected", 10, -5, 10, false},
		{"nan_rejected", 10, math.NaN(), 10, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, _, _, _ := newTestHealth(t, 10, true)
			if c.start < 10 {
				h.TakeDamage(10 - c.start)
			}
			h.TakeDamage(c.amount)
			if h.Current() != c.want {
				t.Fatalf("expected health %v, got %v", c.want, h.Current())
			}
			if h.IsDead() != c.dead {
				t.Fatalf("expected dead=%v, got %v", c.dead, h.IsDead())
			}
			if h.Current() < 0 || h.Current() > h.Max() {
				t.Fatalf("health %v escaped [0, %v]", h.Current(), h.Max())
			}
		})
	}
}

func TestHealClamps(t *testing.T) {
	cases := []struct {
		name   string
		damage float64
		heal   float64
		want   float64
	}{
		{"partial", 5, 2, 7},
		{"overheal", 1, 20, 10},
		{"negative_rejected", 5, -1, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, _, _, _ := newTestHealth(t, 10, true)
			h.TakeDamage(c.damage)
			h.Heal(c.heal)
			if h.Current() != c.want {
				t.Fatalf("expected %v, got %v", c.want, h.Current())
			}
		})
	}
}

func TestDamageAndHealIgnoredWhileDead(t *testing.T) {
	h, _, display, sink := newTestHealth(t, 3, true)
	h.TakeDamage(3)
	if !h.IsDead() {
		t.Fatalf("expected death")
	}
	calls := display.calls

	h.TakeDamage(1)
	h.Heal(2)
	h.TakeDamage(5)

	if h.Current() != 0 {
		t.Fatalf("expected health to stay 0, got %v", h.Current())
	}
	if display.calls != calls {
		t.Fatalf("expected no display updates while dead, got %d more", display.calls-calls)
	}
	if len(sink.calls) != 0 {
		t.Fatalf("death should not be reported before the presentation finishes")
	}
}

func TestScenarioSevenThenThreeHits(t *testing.T) {
	h, _, _, sink := newTestHealth(t, 10, true)
	for i := 0; i < 7; i++ {
		h.TakeDamage(1)
	}
	if h.Current() != 3 || h.IsDead() {
		t.Fatalf("expected 3 hp alive, got %v dead=%v", h.Current(), h.IsDead())
	}

	for i := 0; i < 3; i++ {
		h.TakeDamage(1)
	}
	if h.Current() != 0 || !h.IsDead() {
		t.Fatalf("expected 0 hp dead, got %v dead=%v", h.Current(), h.IsDead())
	}

	// no presenter: fallback wait
	for i := 0; i < 3*60; i++ {
		h.Tick(frame)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("expected exactly one death report, got %d", len(sink.calls))
	}
	if sink.calls[0].who != 1 || !sink.calls[0].hadControl {
		t.Fatalf("unexpected death report %+v", sink.calls[0])
	}
}

func TestDeathClosesGateAndStopsBody(t *testing.T) {
	clock := &ManualClock{}
	body := &fakeBody{vx: 3, vy: 4}
	pres := newFakePresenter()
	h := NewCharacterHealth(HealthConfig{ID: 0, MaxHealth: 1, HasControl: true}, HealthDeps{
		Clock:     clock,
		Body:      body,
		Presenter: pres,
	})

	h.TakeDamage(1)

	if h.HasControl() {
		t.Fatalf("dead character kept control")
	}
	if body.vx != 0 || body.vy != 0 {
		t.Fatalf("expected velocity zeroed, got (%v,%v)", body.vx, body.vy)
	}
	if len(pres.triggers) != 1 || pres.triggers[0] != DefaultDieTrigger {
		t.Fatalf("expected die trigger, got %v", pres.triggers)
	}
	if h.Watcher() == nil || h.Watcher().State() != WaitingForEnter {
		t.Fatalf("expected watcher waiting for enter")
	}
}

func TestRegen(t *testing.T) {
	t.Run("waits_for_delay", func(t *testing.T) {
		h, clock, _, _ := newTestHealth(t, 10, true)
		h.TakeDamage(4)

		clock.Advance(DefaultRegenDelay - frame)
		h.Tick(frame)
		if h.Current() != 6 {
			t.Fatalf("regen before delay: %v", h.Current())
		}

		clock.Advance(frame)
		h.Tick(time.Second)
		if !approx(h.Current(), 6.5) {
			t.Fatalf("expected 6.5 after one second of regen, got %v", h.Current())
		}
	})

	t.Run("never_overshoots", func(t *testing.T) {
		h, clock, _, _ := newTestHealth(t, 10, true)
		h.TakeDamage(0.1)
		clock.Advance(DefaultRegenDelay)
		h.Tick(10 * time.Second)
		if h.Current() != 10 {
			t.Fatalf("expected clamp to max, got %v", h.Current())
		}
	})

	t.Run("display_only_on_whole_hp_change", func(t *testing.T) {
		h, clock, display, _ := newTestHealth(t, 10, true)
		h.TakeDamage(2)
		clock.Advance(DefaultRegenDelay)
		before := display.calls

		// 0.5 hp/s: 8 -> 8.75 crosses the 8.5 rounding boundary once
		for i := 0; i < 90; i++ {
			clock.Advance(frame)
			h.Tick(frame)
		}
		if display.calls-before != 1 {
			t.Fatalf("expected one display update crossing 8.5, got %d", display.calls-before)
		}
	})

	t.Run("not_while_dead", func(t *testing.T) {
		h, clock, _, _ := newTestHealth(t, 10, true)
		h.TakeDamage(10)
		clock.Advance(DefaultRegenDelay * 2)
		h.Tick(time.Second)
		if h.Current() != 0 {
			t.Fatalf("dead character regenerated to %v", h.Current())
		}
	})
}

func TestRespawnResets(t *testing.T) {
	clock := &ManualClock{}
	body := &fakeBody{}
	pres := newFakePresenter()
	display := &fakeDisplay{}
	h := NewCharacterHealth(HealthConfig{ID: 0, MaxHealth: 5, RegenDelay: time.Second, RegenRate: 1}, HealthDeps{
		Clock:     clock,
		Body:      body,
		Presenter: pres,
		Display:   display,
	})
	h.TakeDamage(5)
	clock.Advance(3 * time.Second)

	anchor := Pose{X: 10, Y: 20, Angle: 1}
	h.Respawn(&anchor)

	if h.IsDead() || h.Current() != 5 {
		t.Fatalf("expected alive at full health, got dead=%v hp=%v", h.IsDead(), h.Current())
	}
	if len(body.teleports) != 1 || body.teleports[0] != anchor {
		t.Fatalf("expected teleport to %+v, got %+v", anchor, body.teleports)
	}
	if h.LastDamage() != clock.Now() {
		t.Fatalf("expected regen timer reset to %v, got %v", clock.Now(), h.LastDamage())
	}
	if display.current != 5 {
		t.Fatalf("display not refreshed, got %v", display.current)
	}
	if pres.triggers[len(pres.triggers)-1] != DefaultRespawnTrigger {
		t.Fatalf("expected respawn trigger last, got %v", pres.triggers)
	}
	if h.Watcher() != nil {
		t.Fatalf("watcher should be dropped on respawn")
	}
}

func TestRespawnWithoutAnchorKeepsPosition(t *testing.T) {
	body := &fakeBody{pose: Pose{X: 3, Y: 4}}
	h := NewCharacterHealth(HealthConfig{MaxHealth: 2}, HealthDeps{Body: body})
	h.TakeDamage(2)
	h.Respawn(nil)

	if len(body.teleports) != 0 {
		t.Fatalf("expected no teleport, got %v", body.teleports)
	}
	if body.pose != (Pose{X: 3, Y: 4}) {
		t.Fatalf("position moved to %+v", body.pose)
	}
	if h.IsDead() || h.Current() != 2 {
		t.Fatalf("expected full reset without anchor")
	}
}

func TestKinematicBodyNotZeroed(t *testing.T) {
	body := &fakeBody{kinematic: true, vx: 2}
	h := NewCharacterHealth(HealthConfig{MaxHealth: 1}, HealthDeps{Body: body})
	h.TakeDamage(1)
	if body.zeroAll != 0 {
		t.Fatalf("kinematic body should not be written")
	}
}

func TestMissingDisplayIsNotFatal(t *testing.T) {
	h := NewCharacterHealth(HealthConfig{MaxHealth: 3}, HealthDeps{})
	h.TakeDamage(1)
	h.Heal(1)
	if h.Current() != 3 {
		t.Fatalf("expected 3, got %v", h.Current())
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRegenDefaults(t *testing.T) {
	cases := []struct {
		name  string
		delay time.Duration
		rate  float64
		want  float64
	}{
		{"zero_uses_defaults", 0, 0, 10},
		{"custom", time.Second, 1, 10},
		{"negative_rate_disables", 0, -1, 8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := &ManualClock{}
			h := NewCharacterHealth(HealthConfig{MaxHealth: 10, RegenDelay: c.delay, RegenRate: c.rate}, HealthDeps{Clock: clock})
			h.TakeDamage(2)

			for i := 0; i < 20*60; i++ {
				clock.Advance(frame)
				h.Tick(frame)
			}
			if h.Current() != c.want {
				t.Fatalf("expected hp %v after 20s, got %v", c.want, h.Current())
			}
		})
	}

	t.Run("default_delay_holds", func(t *testing.T) {
		clock := &ManualClock{}
		h := NewCharacterHealth(HealthConfig{MaxHealth: 10}, HealthDeps{Clock: clock})
		h.TakeDamage(2)
		for i := 0; i < 4*60; i++ {
			clock.Advance(frame)
			h.Tick(frame)
		}
		if h.Current() != 8 {
			t.Fatalf("regen before default delay, hp=%v", h.Current())
		}
	})

	t.Run("set_regen_zero_restores_defaults", func(t *testing.T) {
		h := NewCharacterHealth(HealthConfig{MaxHealth: 10, RegenRate: -1}, HealthDeps{})
		if h.RegenEnabled() {
			t.Fatalf("negative rate should disable regen")
		}
		h.SetRegen(0, 0)
		if !h.RegenEnabled() {
			t.Fatalf("zero rate should fall back to the default")
		}
	})
}
