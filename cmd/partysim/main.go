// Command partysim runs tengo party scenarios headless against the real
// systems and exits non-zero when one fails.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/milk9111/tandem/config"
	"github.com/milk9111/tandem/prefabs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("partysim: %v", err)
	}

	prefab := flag.String("prefab", cfg.Prefab, "party prefab in prefabs/")
	scenario := flag.String("scenario", cfg.Scenario, "scenario script in prefabs/scripts (empty runs all)")
	maxTicks := flag.Int("ticks", cfg.MaxTicks, "frames to run before a scenario times out")
	verbose := flag.Bool("v", cfg.Debug, "log party and script output")
	flag.Parse()

	logger := log.New(os.Stderr, "partysim: ", log.LstdFlags)
	sim := logger
	if !*verbose {
		sim = nil
	}

	names := []string{*scenario}
	if strings.TrimSpace(*scenario) == "" {
		names, err = prefabs.ScriptNames()
		if err != nil {
			config.Exitf("partysim: %v", err)
		}
	}

	failed := 0
	for _, name := range names {
		res, err := runScenario(*prefab, name, *maxTicks, sim)
		if err != nil {
			failed++
			logger.Printf("FAIL %s (%d ticks): %v", name, res.Ticks, err)
			continue
		}
		logger.Printf("ok   %s (%d ticks, %d respawn cycles)", name, res.Ticks, res.Cycles)
	}

	if failed > 0 {
		config.Exitf("partysim: %d of %d scenarios failed", failed, len(names))
	}
}
