package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tandem/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("tandem: %v", err)
	}

	flag.StringVar(&cfg.Prefab, "prefab", cfg.Prefab, "party prefab in prefabs/")
	flag.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario script to run alongside play")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode (K damages, H heals the controlled character)")
	flag.BoolVar(&cfg.Watch, "watch", cfg.Watch, "hot reload prefabs and scripts from disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("tandem")

	logger := log.New(os.Stderr, "tandem: ", log.LstdFlags)
	game, err := NewGame(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
