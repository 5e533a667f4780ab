package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/render"
)

const lineH = 16

var (
	skyCol      = color.RGBA{R: 0x10, G: 0x18, B: 0x30, A: 0xff}
	panelBg     = color.RGBA{R: 6, G: 10, B: 20, A: 210}
	panelBorder = color.RGBA{R: 90, G: 110, B: 160, A: 200}
	textCol     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	activeCol   = color.RGBA{R: 255, G: 224, B: 48, A: 255}
	dimCol      = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

// Draw renders one frame.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(skyCol)

	if v.g.Phase().InGame() {
		v.drawScene(screen)
	}

	switch v.hud.Screen() {
	case game.ScreenMainMenu:
		v.drawMainMenu(screen)
	case game.ScreenControls:
		v.drawDialog(screen, game.ControlsTitle, game.ControlsText)
	case game.ScreenAbout:
		v.drawDialog(screen, game.AboutTitle, game.AboutText)
	case game.ScreenGameHUD:
		v.drawHUD(screen)
	}

	if v.showLog {
		v.drawLogTail(screen)
	}
	if v.status != "" && v.g.Clock() < v.statusUntil {
		v.print(screen, v.status, 8, float64(v.height-lineH-4), dimCol)
	}
}

func (v *View) drawScene(screen *ebiten.Image) {
	frame := render.Collect(v.g.Context(), v.width, v.height)
	for _, p := range frame.Primitives {
		switch p.Kind {
		case render.PrimLine:
			vector.StrokeLine(screen, p.X0, p.Y0, p.X1, p.Y1, 1.0, p.Colour, true)
		case render.PrimDot:
			vector.FillCircle(screen, p.X0, p.Y0, p.Radius, p.Colour, true)
		}
	}
}

func (v *View) drawHUD(screen *ebiten.Image) {
	active := v.hud.Active()
	for i := 0; i < 2; i++ {
		s, shown := v.hud.PlayerText(i)
		if !shown {
			continue
		}
		col := textCol
		if i == active {
			col = activeCol
		}
		x := 12.0
		if i == 1 {
			w, _ := text.Measure(s, v.face, lineH)
			x = float64(v.width) - w - 12
		}
		v.print(screen, s, x, 10, col)
	}

	if params := v.hud.ParamsText(); params != "" {
		w, _ := text.Measure(params, v.face, lineH)
		x := (float64(v.width) - w) / 2
		y := float64(v.height) - 34
		vector.FillRect(screen, float32(x-8), float32(y-4), float32(w+16), lineH+8, panelBg, false)
		vector.StrokeRect(screen, float32(x-8), float32(y-4), float32(w+16), lineH+8, 1.0, panelBorder, false)
		v.print(screen, params, x, y, activeCol)
	}

	if wind := v.g.Wind(); wind.Speed > 0 {
		v.print(screen, fmt.Sprintf("WIND %3.0f m/s @ %d°", wind.Speed, wind.Angle), 12, 10+lineH, dimCol)
	}
}

func (v *View) drawMainMenu(screen *ebiten.Image) {
	title := "GORILLAS 3D"
	w, _ := text.Measure(title, v.face, lineH)
	v.print(screen, title, (float64(v.width)-w)/2, float64(v.height)/4, activeCol)
	v.drawButtons(screen)
	if err := v.g.LastError(); err != nil {
		msg := "last match aborted: " + err.Error()
		w, _ := text.Measure(msg, v.face, lineH)
		v.print(screen, msg, (float64(v.width)-w)/2, float64(v.height)-3*lineH, color.RGBA{R: 255, G: 96, B: 96, A: 255})
	}
}

func (v *View) drawDialog(screen *ebiten.Image, title, body string) {
	const pad = 24
	x, y := float32(v.width/8), float32(v.height/8)
	w, h := float32(v.width*3/4), float32(v.height*3/4)
	vector.FillRect(screen, x, y, w, h, panelBg, false)
	vector.StrokeRect(screen, x, y, w, h, 1.0, panelBorder, false)

	v.print(screen, title, float64(x)+pad, float64(y)+pad, activeCol)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x)+pad, float64(y)+pad+2*lineH)
	op.ColorScale.ScaleWithColor(textCol)
	op.LineSpacing = lineH
	text.Draw(screen, body, v.face, op)

	v.drawButtons(screen)
}

func (v *View) drawButtons(screen *ebiten.Image) {
	for i, b := range render.MenuLayout(v.g.Phase(), v.width, v.height) {
		r := b.Rect
		border := panelBorder
		col := textCol
		if i == v.menuCursor {
			border, col = activeCol, activeCol
		}
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), panelBg, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1.0, border, false)
		label := b.Item.String()
		w, _ := text.Measure(label, v.face, lineH)
		v.print(screen, label, float64(r.X)+(float64(r.W)-w)/2, float64(r.Y)+float64(r.H-13)/2, col)
	}
}

// drawLogTail shows the last few match log lines in the lower left.
func (v *View) drawLogTail(screen *ebiten.Image) {
	const maxLines = 12
	entries := v.g.MatchLog().Entries()
	if len(entries) > maxLines {
		entries = entries[len(entries)-maxLines:]
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	body := strings.Join(lines, "\n")
	w, h := text.Measure(body, v.face, lineH)
	y := float64(v.height) - h - 60
	vector.FillRect(screen, 4, float32(y-4), float32(w+8), float32(h+8), panelBg, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, y)
	op.ColorScale.ScaleWithColor(dimCol)
	op.LineSpacing = lineH
	text.Draw(screen, body, v.face, op)
}

func (v *View) print(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, v.face, op)
}
