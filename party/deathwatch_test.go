package party

import (
	"testing"
	"time"
)

func runWatcher(w *DeathWatcher, ticks int) {
	for i := 0; i < ticks; i++ {
		w.Advance(frame)
	}
}

func TestDeathWatcherFollowsAnimation(t *testing.T) {
	pres := newFakePresenter()
	done := 0
	w := NewDeathWatcher(DeathWatcherConfig{Tag: "Death"}, pres, func() { done++ })

	runWatcher(w, 10)
	if w.State() != WaitingForEnter {
		t.Fatalf("expected waiting for enter, got %v", w.State())
	}

	pres.tags["Death"] = true
	w.Advance(frame)
	if w.State() != WaitingForExit {
		t.Fatalf("expected waiting for exit, got %v", w.State())
	}

	// exit wait has no timeout
	runWatcher(w, 600)
	if w.State() != WaitingForExit || done != 0 {
		t.Fatalf("exit wait should be unbounded, state=%v done=%d", w.State(), done)
	}

	pres.tags["Death"] = false
	w.Advance(frame)
	if w.State() != Done || done != 1 {
		t.Fatalf("expected done once, state=%v done=%d", w.State(), done)
	}

	runWatcher(w, 10)
	if done != 1 {
		t.Fatalf("completion fired %d times", done)
	}
}

func TestDeathWatcherEnterTimeout(t *testing.T) {
	cases := []struct {
		name      string
		presenter Presenter
		maxWait   time.Duration
	}{
		{"never_enters", newFakePresenter(), DefaultEnterTimeout + DefaultFallbackDuration + 3*frame},
		{"no_presenter", nil, DefaultFallbackDuration + 3*frame},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			done := false
			w := NewDeathWatcher(DeathWatcherConfig{Tag: "Death"}, c.presenter, func() { done = true })

			var waited time.Duration
			for !done && waited <= c.maxWait {
				w.Advance(frame)
				waited += frame
			}
			if !done {
				t.Fatalf("watcher did not finish within %v", c.maxWait)
			}
			if waited < DefaultFallbackDuration {
				t.Fatalf("finished early after %v", waited)
			}
		})
	}
}

func TestDeathWatcherCustomDurations(t *testing.T) {
	done := false
	w := NewDeathWatcher(DeathWatcherConfig{
		Tag:              "Death",
		EnterTimeout:     2 * frame,
		FallbackDuration: 3 * frame,
	}, newFakePresenter(), func() { done = true })

	runWatcher(w, 2)
	if w.State() != TimedOutFallback {
		t.Fatalf("expected fallback after enter timeout, got %v", w.State())
	}
	runWatcher(w, 2)
	if done {
		t.Fatalf("finished before fallback elapsed")
	}
	w.Advance(frame)
	if !done {
		t.Fatalf("expected done after fallback")
	}
}

func TestWatchStateString(t *testing.T) {
	if Done.String() != "done" || WatchState(42).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}
