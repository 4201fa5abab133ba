package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"golang.org/x/image/colornames"
)

var backgroundColor = color.RGBA{R: 0x1d, G: 0x20, B: 0x2b, A: 0xff}

const (
	healthBarWidth  = 44
	healthBarHeight = 5
)

func drawLevel(screen *ebiten.Image, w *ecs.World, debug bool) {
	ecs.ForEach2(w, component.PlatformTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlatformTag, t *component.Transform) {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return
		}
		fillCentered(screen, t.X, t.Y, body.Width, body.Height, colornames.Slategray)
	})

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		x := float32(t.X + h.OffsetX - h.Width/2)
		y := float32(t.Y + h.OffsetY - h.Height/2)
		vector.FillRect(screen, x, y, float32(h.Width), float32(h.Height), color.RGBA{R: 255, G: 0, B: 0, A: 48}, false)
		vector.StrokeRect(screen, x, y, float32(h.Width), float32(h.Height), 1.0, color.RGBA{R: 255, G: 0, B: 0, A: 200}, false)
	})

	if !debug {
		return
	}
	ecs.ForEach2(w, component.RespawnAnchorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.RespawnAnchor, t *component.Transform) {
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), 6, 1, colornames.Lightgreen, true)
	})
}

func drawCharacters(screen *ebiten.Image, w *ecs.World) {
	entities := w.Query(
		component.CharacterComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		fill := color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
		if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok {
			fill = color.RGBA{R: a.R, G: a.G, B: a.B, A: a.A}
		}
		if ch.Health != nil && ch.Health.IsDead() {
			fill.A = 0x60
		}
		fillCentered(screen, t.X, t.Y, body.Width, body.Height, fill)

		if ch.Health != nil && ch.Health.HasControl() {
			x := float32(t.X - body.Width/2 - 2)
			y := float32(t.Y - body.Height/2 - 2)
			vector.StrokeRect(screen, x, y, float32(body.Width+4), float32(body.Height+4), 2, colornames.Gold, false)
		}

		bar, ok := ecs.Get(w, e, component.HealthBarComponent.Kind())
		if !ok {
			continue
		}
		bx := float32(t.X - healthBarWidth/2)
		by := float32(t.Y - body.Height/2 - 12)
		vector.FillRect(screen, bx, by, healthBarWidth, healthBarHeight, colornames.Darkred, false)
		vector.FillRect(screen, bx, by, float32(healthBarWidth*bar.Fill), healthBarHeight, colornames.Limegreen, false)
	}
}

func fillCentered(screen *ebiten.Image, cx, cy, width, height float64, c color.Color) {
	vector.FillRect(screen, float32(cx-width/2), float32(cy-height/2), float32(width), float32(height), c, false)
}
