package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tandem/common"
	"github.com/milk9111/tandem/config"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/entity"
	"github.com/milk9111/tandem/ecs/system"
	"github.com/milk9111/tandem/party"
	"github.com/milk9111/tandem/prefabs"
)

var errQuit = errors.New("quit")

type Game struct {
	cfg    config.Config
	logger *log.Logger

	world    *ecs.World
	party    *entity.Party
	pipeline *system.Pipeline
	scenario *system.ScenarioRuntime
	watcher  *prefabs.Watcher
	hud      *HUD

	frames int
	paused bool
	quit   bool
	banner string
}

func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	spec, err := prefabs.LoadPartySpec(cfg.Prefab)
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, logger: logger, world: ecs.NewWorld()}
	g.party, err = entity.BuildParty(g.world, spec, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Scenario != "" {
		g.scenario, err = system.NewScenarioRuntime(cfg.Scenario, g.party.Coordinator, g.party.Anchors, logger)
		if err != nil {
			return nil, err
		}
	}

	var reload *system.ReloadSystem
	if cfg.Watch {
		g.watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			// running outside the repo has no prefab directory to watch
			logger.Printf("hot reload disabled: %v", err)
		} else {
			reload = system.NewReloadSystem(g.watcher, g.reloadSpec, g.reloadScript)
		}
	}

	g.pipeline = system.NewPipeline(NewKeyboardInput(cfg.Debug), g.party.Coordinator, g.party.Clock, g.scenario, reload)
	g.pipeline.Install(g.world)
	g.hud = NewHUD(g)
	return g, nil
}

func (g *Game) reloadSpec(path string) {
	if filepath.Base(path) != filepath.Base(g.cfg.Prefab) {
		return
	}
	spec, err := prefabs.LoadPartySpec(g.cfg.Prefab)
	if err != nil {
		g.logger.Printf("reload %s: %v", path, err)
		return
	}
	if err := entity.ApplyTuning(g.world, g.party, spec, g.logger); err != nil {
		g.logger.Printf("reload %s: %v", path, err)
	}
}

func (g *Game) reloadScript(path string) {
	if g.scenario == nil {
		return
	}
	if scriptBase(path) != scriptBase(g.scenario.Name()) {
		return
	}
	if err := g.scenario.Reload(); err != nil {
		g.logger.Printf("reload %s: %v", path, err)
		return
	}
	g.logger.Printf("reloaded scenario %s", g.scenario.Name())
}

func scriptBase(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".tengo")
}

func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

func (g *Game) Update() error {
	if g.quit {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.SetPaused(!g.paused)
	}

	g.hud.Sync(g.world, g.paused)
	g.hud.Update()
	if g.paused {
		return nil
	}

	g.frames++
	g.world.Update()

	for _, evt := range g.world.Events().Previous() {
		g.observe(evt)
	}
	return nil
}

func (g *Game) observe(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventPartyRespawned:
		re, ok := evt.Data.(party.RespawnEvent)
		if !ok {
			return
		}
		g.banner = fmt.Sprintf("respawn #%d", re.Cycle)
	case ecs.EventCharacterDamaged:
		if d, ok := evt.Data.(system.DamageEvent); ok && g.cfg.Debug {
			g.logger.Printf("%s took %.1f from %s (%.1f left)", d.Character, d.Amount, d.Source, d.Remaining)
		}
	case ecs.EventScenarioLog:
		if msg, ok := evt.Data.(string); ok {
			g.banner = msg
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawLevel(screen, g.world, g.cfg.Debug)
	drawCharacters(screen, g.world)
	g.hud.ui.Draw(screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    %s", g.frames, ebiten.ActualFPS(), g.banner), 12, common.BaseHeight-20)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
