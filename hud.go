package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/tandem/common"
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/ecs/component"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	hudTextColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	hudControlColor = color.NRGBA{R: 0xff, G: 0xd8, B: 0x4a, A: 0xff}
	hudDeadColor    = color.NRGBA{R: 0xb0, G: 0x40, B: 0x40, A: 0xff}
)

// HUD shows one health row per party member plus the pause panel.
type HUD struct {
	ui    *ebitenui.UI
	pause *widget.Container
	rows  map[ecs.Entity]*widget.Text
	order []ecs.Entity
}

// NewHUD builds the health panel for the party's characters and a pause panel
// with Resume and Quit buttons.
func NewHUD(g *Game) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	h := &HUD{rows: make(map[ecs.Entity]*widget.Text)}

	health := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	for _, e := range g.party.Characters {
		row := widget.NewText(widget.TextOpts.Text("", &face, hudTextColor))
		health.AddChild(row)
		h.rows[e] = row
		h.order = append(h.order, e)
	}

	btnTextColor := &widget.ButtonTextColor{Idle: hudTextColor}
	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, hudTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.SetPaused(false)
		}),
	)
	quitBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Quit", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.quit = true
		}),
	)

	h.pause = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	h.pause.AddChild(title)
	h.pause.AddChild(resumeBtn)
	h.pause.AddChild(quitBtn)
	h.pause.GetWidget().Visibility = widget.Visibility_Hide

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(health)
	root.AddChild(h.pause)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

// Sync copies the health bars into the panel rows.
func (h *HUD) Sync(w *ecs.World, paused bool) {
	if paused {
		h.pause.GetWidget().Visibility = widget.Visibility_Show
	} else {
		h.pause.GetWidget().Visibility = widget.Visibility_Hide
	}

	for _, e := range h.order {
		row := h.rows[e]
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		bar, okBar := ecs.Get(w, e, component.HealthBarComponent.Kind())
		if !ok || !okBar || ch.Health == nil {
			continue
		}

		status := ""
		row.SetColor(hudTextColor)
		switch {
		case ch.Health.IsDead():
			status = "  down"
			row.SetColor(hudDeadColor)
		case ch.Health.HasControl():
			status = "  <"
			row.SetColor(hudControlColor)
		}
		row.Label = fmt.Sprintf("%-10s %s%s", ch.Name, bar.Label, status)
	}
}

func (h *HUD) Update() { h.ui.Update() }
