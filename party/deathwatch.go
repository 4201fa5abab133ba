package party

import "time"

const (
	// DefaultEnterTimeout bounds the wait for the death state to start.
	DefaultEnterTimeout = time.Second
	// DefaultFallbackDuration replaces the animation wait when the death state never starts.
	DefaultFallbackDuration = 1100 * time.Millisecond
)

// WatchState is the phase of a DeathWatcher.
type WatchState int

const (
	WaitingForEnter WatchState = iota
	WaitingForExit
	TimedOutFallback
	Done
)

func (s WatchState) String() string {
	switch s {
	case WaitingForEnter:
		return "waiting_for_enter"
	case WaitingForExit:
		return "waiting_for_exit"
	case TimedOutFallback:
		return "timed_out_fallback"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// DeathWatcherConfig tunes a DeathWatcher. Zero durations use the defaults.
type DeathWatcherConfig struct {
	Tag              string
	EnterTimeout     time.Duration
	FallbackDuration time.Duration
}

// DeathWatcher waits for a death presentation to play out before reporting
// completion. Entry into the tagged state is bounded by EnterTimeout; once
// entered, exit is waited for without limit. A watcher without a presenter, or
// whose presenter never enters the state, waits FallbackDuration instead.
type DeathWatcher struct {
	cfg       DeathWatcherConfig
	presenter Presenter
	onDone    func()

	state   WatchState
	elapsed time.Duration
}

// NewDeathWatcher starts a watcher. onDone is called exactly once.
func NewDeathWatcher(cfg DeathWatcherConfig, presenter Presenter, onDone func()) *DeathWatcher {
	if cfg.EnterTimeout <= 0 {
		cfg.EnterTimeout = DefaultEnterTimeout
	}
	if cfg.FallbackDuration <= 0 {
		cfg.FallbackDuration = DefaultFallbackDuration
	}

	w := &DeathWatcher{cfg: cfg, presenter: presenter, onDone: onDone}
	if presenter == nil {
		w.state = TimedOutFallback
	}
	return w
}

// State returns the current phase.
func (w *DeathWatcher) State() WatchState {
	if w == nil {
		return Done
	}
	return w.state
}

// Advance runs one tick of the wait.
func (w *DeathWatcher) Advance(dt time.Duration) {
	if w == nil || w.state == Done {
		return
	}
	if dt < 0 {
		dt = 0
	}

	switch w.state {
	case WaitingForEnter:
		if w.presenter.InState(w.cfg.Tag) {
			w.state = WaitingForExit
			return
		}
		w.elapsed += dt
		if w.elapsed >= w.cfg.EnterTimeout {
			w.state = TimedOutFallback
			w.elapsed = 0
		}
	case WaitingForExit:
		if !w.presenter.InState(w.cfg.Tag) {
			w.finish()
		}
	case TimedOutFallback:
		w.elapsed += dt
		if w.elapsed >= w.cfg.FallbackDuration {
			w.finish()
		}
	}
}

func (w *DeathWatcher) finish() {
	w.state = Done
	if w.onDone != nil {
		w.onDone()
	}
}
