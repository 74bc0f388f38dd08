package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/milk9111/bowstep/pause"
	"github.com/milk9111/bowstep/sound"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

const volumeStep = 0.1

// NewPauseUI builds the centered pause panel. Buttons use colored
// nine-slices and the built-in basic font so no theme assets are needed.
func NewPauseUI(menu *pause.Menu, mixer *sound.Mixer, log *slog.Logger) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		Hover:   imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255}),
		Pressed: imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered, widget.WidgetOpts.MinSize(160, 28)),
			widget.ButtonOpts.CursorEnteredHandler(func(args *widget.ButtonHoverEventArgs) {
				menu.Hover()
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	volume := widget.NewText(
		widget.TextOpts.Text(volumeLabel(mixer), &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	// The volume buttons stand in for a slider: each step clicks, rate
	// limited by the menu.
	nudge := func(delta float64) func() {
		return func() {
			if mixer == nil {
				return
			}
			mixer.SetMaster(mixer.Master() + delta)
			volume.Label = volumeLabel(mixer)
			menu.SliderClick()
		}
	}

	volumeRow := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(centered),
	)
	volumeRow.AddChild(button("-", nudge(-volumeStep)))
	volumeRow.AddChild(volume)
	volumeRow.AddChild(button("+", nudge(volumeStep)))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/2, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(button("Resume", menu.Resume))
	panel.AddChild(button("Restart", func() {
		if err := menu.Restart(); err != nil {
			log.Error("restart level", "err", err)
		}
	}))
	panel.AddChild(volumeRow)
	panel.AddChild(button("Quit", menu.Quit))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func volumeLabel(mixer *sound.Mixer) string {
	if mixer == nil {
		return "Volume --"
	}
	return fmt.Sprintf("Volume %3.0f%%", mixer.Master()*100)
}
