package system_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/tandem/ecs/system"
	"github.com/milk9111/tandem/prefabs"
)

// withScript points prefab loading at a temp dir holding one script.
func withScript(t *testing.T, name, src string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", name+".tengo"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
}

func TestScenarioRuntime(t *testing.T) {
	cases := []struct {
		name         string
		src          string
		wantFinished bool
		wantFailures int
		wantErr      bool
	}{
		{
			name:         "passes",
			src:          "p := __party\nif __tick == 2 {\n\tp.expect(p.has_control(\"capybarda\"), \"control\")\n\tp.finish()\n}\n",
			wantFinished: true,
		},
		{
			name:         "records_failures",
			src:          "p := __party\np.expect(p.hp(\"spellbun\") == 1.0, \"wrong hp\")\np.finish()\n",
			wantFinished: true,
			wantFailures: 1,
		},
		{
			name:    "runtime_error",
			src:     "x := [1]\ny := x[0] / 0\n",
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			withScript(t, c.name, c.src)
			w, p := loadParty(t)
			rt, err := system.NewScenarioRuntime(c.name, p.Coordinator, p.Anchors, nil)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			system.NewPipeline(nil, p.Coordinator, p.Clock, rt, nil).Install(w)

			for i := 0; i < 10 && !rt.Done(); i++ {
				w.Update()
			}

			if rt.Finished() != c.wantFinished {
				t.Fatalf("finished=%v, want %v", rt.Finished(), c.wantFinished)
			}
			if got := len(rt.Failures()); got != c.wantFailures {
				t.Fatalf("expected %d failures, got %v", c.wantFailures, rt.Failures())
			}
			if (rt.Err() != nil) != c.wantErr {
				t.Fatalf("unexpected error state: %v", rt.Err())
			}
		})
	}
}

func TestScenarioCompileError(t *testing.T) {
	withScript(t, "broken", "p := \n")
	_, p := loadParty(t)
	_, err := system.NewScenarioRuntime("broken", p.Coordinator, p.Anchors, nil)
	if err == nil || !strings.Contains(err.Error(), "compile") {
		t.Fatalf("expected compile error, got %v", err)
	}
}

func TestScenarioDrivesParty(t *testing.T) {
	withScript(t, "drive", `
p := __party
if __tick == 1 {
	p.damage("spellbun", 2)
	p.heal("spellbun", 1)
	p.remove_anchor("spellbun")
	p.log("hp", p.hp("spellbun"))
	p.finish()
}
`)
	w, p := loadParty(t)
	rt, err := system.NewScenarioRuntime("drive", p.Coordinator, p.Anchors, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.AddSystem(rt)
	w.Update()

	_, bun := character(t, w, p, "spellbun")
	if bun.Health.Current() != 7 {
		t.Fatalf("expected 7 hp, got %v", bun.Health.Current())
	}
	if _, ok := p.Anchors.RespawnAnchor(bun.ID); ok {
		t.Fatalf("anchor should be removed")
	}
	if !rt.Finished() || rt.Ticks() != 1 {
		t.Fatalf("expected to finish on tick 1")
	}
}

func TestScenarioFaultDoesNotStopWorld(t *testing.T) {
	withScript(t, "divide", "if __tick == 2 {\n\tx := [1]\n\ty := x[0] / 0\n}\n")
	w, p := loadParty(t)
	rt, err := system.NewScenarioRuntime("divide", p.Coordinator, p.Anchors, nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	system.NewPipeline(nil, p.Coordinator, p.Clock, rt, nil).Install(w)

	for i := 0; i < 5; i++ {
		w.Update()
	}

	if rt.Err() == nil || !strings.Contains(rt.Err().Error(), "tick 2") {
		t.Fatalf("expected error on tick 2, got %v", rt.Err())
	}
	if rt.Ticks() != 2 || !rt.Done() {
		t.Fatalf("script kept running after fault, ticks=%d", rt.Ticks())
	}
	if w.Frame() != 5 {
		t.Fatalf("world stopped at frame %d", w.Frame())
	}
}
