package party

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/milk9111/tandem/common"
)

const (
	DefaultMaxHealth      = 10.0
	DefaultRegenDelay     = 5 * time.Second
	DefaultRegenRate      = 0.5
	DefaultDeathTag       = "Death"
	DefaultDieTrigger     = "Die"
	DefaultRespawnTrigger = "Respawn"
)

// DeathSink is told when a member's death presentation has finished.
type DeathSink interface {
	OnCharacterDied(who CharacterID, hadControlBeforeDeath bool)
}

// HealthConfig describes one character's health tuning.
type HealthConfig struct {
	ID   CharacterID
	Name string

	MaxHealth float64
	// RegenDelay defaults to DefaultRegenDelay when not positive.
	RegenDelay time.Duration
	// RegenRate is health restored per second once RegenDelay has passed. Zero
	// means DefaultRegenRate; a negative rate disables regen.
	RegenRate float64

	DieTrigger     string
	RespawnTrigger string
	Watch          DeathWatcherConfig

	HasControl bool
}

// HealthDeps are the collaborators of a CharacterHealth. Everything except
// Clock is optional.
type HealthDeps struct {
	Clock     Clock
	Party     DeathSink
	Body      Body
	Presenter Presenter
	Display   HealthDisplay
	Logger    *log.Logger
}

// CharacterHealth owns a character's health, its death transition and its
// reset on respawn.
type CharacterHealth struct {
	id   CharacterID
	name string
	cfg  HealthConfig

	maxHealth     float64
	currentHealth float64
	lastDamage    time.Duration
	dead          bool
	// shown is the last whole-HP value handed to the display by regen.
	shown float64

	gate    *ControlGate
	watcher *DeathWatcher

	clock     Clock
	party     DeathSink
	body      Body
	presenter Presenter
	display   HealthDisplay
	logger    *log.Logger

	warnedDisplay bool
}

// NewCharacterHealth creates a character at full health.
func NewCharacterHealth(cfg HealthConfig, deps HealthDeps) *CharacterHealth {
	if cfg.MaxHealth <= 0 || math.IsNaN(cfg.MaxHealth) {
		cfg.MaxHealth = 1
	}
	cfg.RegenDelay, cfg.RegenRate = regenTuning(cfg.RegenDelay, cfg.RegenRate)
	if cfg.DieTrigger == "" {
		cfg.DieTrigger = DefaultDieTrigger
	}
	if cfg.RespawnTrigger == "" {
		cfg.RespawnTrigger = DefaultRespawnTrigger
	}
	if cfg.Watch.Tag == "" {
		cfg.Watch.Tag = DefaultDeathTag
	}
	if deps.Clock == nil {
		deps.Clock = &ManualClock{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}

	h := &CharacterHealth{
		id:            cfg.ID,
		name:          cfg.Name,
		cfg:           cfg,
		maxHealth:     cfg.MaxHealth,
		currentHealth: cfg.MaxHealth,
		shown:         math.Round(cfg.MaxHealth),
		gate:          NewControlGate(cfg.HasControl, deps.Body, deps.Presenter),
		clock:         deps.Clock,
		party:         deps.Party,
		body:          deps.Body,
		presenter:     deps.Presenter,
		display:       deps.Display,
		logger:        deps.Logger,
	}
	h.lastDamage = h.clock.Now()
	h.notify()
	return h
}

func (h *CharacterHealth) ID() CharacterID { return h.id }

func (h *CharacterHealth) Name() string {
	if h.name == "" {
		return h.id.String()
	}
	return h.name
}

func (h *CharacterHealth) Current() float64 { return h.currentHealth }

func (h *CharacterHealth) Max() float64 { return h.maxHealth }

func (h *CharacterHealth) IsDead() bool { return h.dead }

// LastDamage is the simulation time of the most recent TakeDamage or respawn.
func (h *CharacterHealth) LastDamage() time.Duration { return h.lastDamage }

func (h *CharacterHealth) Gate() *ControlGate { return h.gate }

func (h *CharacterHealth) HasControl() bool { return h.gate.HasControl() }

func (h *CharacterHealth) SetControl(value bool) { h.gate.SetControl(value) }

// Watcher returns the running death watcher, nil while alive.
func (h *CharacterHealth) Watcher() *DeathWatcher { return h.watcher }

// SetRegen updates regen tuning, used by prefab hot reload. Zero values fall
// back to the defaults like in NewCharacterHealth.
func (h *CharacterHealth) SetRegen(delay time.Duration, rate float64) {
	h.cfg.RegenDelay, h.cfg.RegenRate = regenTuning(delay, rate)
}

// RegenEnabled reports whether the character heals over time.
func (h *CharacterHealth) RegenEnabled() bool { return h.cfg.RegenRate > 0 }

func regenTuning(delay time.Duration, rate float64) (time.Duration, float64) {
	if delay <= 0 {
		delay = DefaultRegenDelay
	}
	if rate == 0 || math.IsNaN(rate) {
		rate = DefaultRegenRate
	}
	if rate < 0 {
		rate = -1
	}
	return delay, rate
}

// SetDisplay replaces the UI collaborator and pushes the current value to it.
func (h *CharacterHealth) SetDisplay(d HealthDisplay) {
	h.display = d
	h.warnedDisplay = false
	h.notify()
}

// Attach replaces the physics and presentation collaborators.
func (h *CharacterHealth) Attach(body Body, presenter Presenter) {
	h.body = body
	h.presenter = presenter
	h.gate.Attach(body, presenter)
}

// TakeDamage lowers health. Negative amounts and damage to the dead are ignored.
func (h *CharacterHealth) TakeDamage(amount float64) {
	if h.dead || !validAmount(amount) {
		return
	}

	old := h.currentHealth
	h.currentHealth = common.Clamp(h.currentHealth-amount, 0, h.maxHealth)
	h.lastDamage = h.clock.Now()

	if !common.ApproxEqual(old, h.currentHealth) {
		h.notify()
	}
	if h.currentHealth <= 0 {
		h.die()
	}
}

// Heal raises health up to the maximum. Ignored while dead.
func (h *CharacterHealth) Heal(amount float64) {
	if h.dead || !validAmount(amount) {
		return
	}

	old := h.currentHealth
	h.currentHealth = common.Clamp(h.currentHealth+amount, 0, h.maxHealth)
	if !common.ApproxEqual(old, h.currentHealth) {
		h.notify()
	}
}

// Tick advances regen, or the death wait while dead.
func (h *CharacterHealth) Tick(dt time.Duration) {
	if h.dead {
		// the watcher may respawn the whole party, which clears h.watcher
		h.watcher.Advance(dt)
		return
	}
	if dt <= 0 || h.cfg.RegenRate <= 0 || h.currentHealth >= h.maxHealth {
		return
	}
	if h.clock.Now()-h.lastDamage < h.cfg.RegenDelay {
		return
	}

	h.currentHealth = math.Min(h.maxHealth, h.currentHealth+h.cfg.RegenRate*dt.Seconds())
	if shown := math.Round(h.currentHealth); shown != h.shown {
		h.notify()
	}
}

// Respawn restores the character at anchor. A nil anchor leaves the position
// untouched.
func (h *CharacterHealth) Respawn(anchor *Pose) {
	if anchor != nil {
		if h.body != nil {
			h.body.Teleport(*anchor)
		}
	} else {
		h.logger.Printf("party: %s has no respawn anchor, respawning in place", h.Name())
	}
	h.zeroVelocity()

	h.currentHealth = h.maxHealth
	h.dead = false
	h.watcher = nil
	h.lastDamage = h.clock.Now()

	if h.presenter != nil {
		h.presenter.Trigger(h.cfg.RespawnTrigger)
	}
	h.notify()
}

func (h *CharacterHealth) die() {
	if h.dead {
		return
	}
	h.dead = true

	hadControl := h.gate.HasControl()
	h.gate.SetControl(false)
	h.zeroVelocity()

	if h.presenter != nil {
		h.presenter.Trigger(h.cfg.DieTrigger)
	}

	h.logger.Printf("party: %s died (had control: %t)", h.Name(), hadControl)

	id := h.id
	h.watcher = NewDeathWatcher(h.cfg.Watch, h.presenter, func() {
		if h.party == nil {
			h.logger.Printf("party: %s finished dying with no party to respawn it", h.Name())
			return
		}
		h.party.OnCharacterDied(id, hadControl)
	})
}

func (h *CharacterHealth) zeroVelocity() {
	if h.body == nil || h.body.Kinematic() {
		return
	}
	h.body.ZeroVelocity()
}

func (h *CharacterHealth) notify() {
	h.shown = math.Round(h.currentHealth)
	if h.display == nil {
		if !h.warnedDisplay {
			h.logger.Printf("party: no health display for %s", h.Name())
			h.warnedDisplay = true
		}
		return
	}
	h.display.UpdateDisplay(h.maxHealth, h.currentHealth)
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
