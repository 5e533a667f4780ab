package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/render"
)

// mapTop is the first screen row of the city map.
const mapTop = 4

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStreet = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBanana = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBoom   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlayer = [2]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorOrange),
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
	}
)

// Draw renders one frame to the screen.
func (t *Term) Draw() {
	t.screen.Clear()
	switch t.hud.Screen() {
	case game.ScreenMainMenu:
		t.drawMenu("GORILLAS 3D", "")
	case game.ScreenControls:
		t.drawMenu(game.ControlsTitle, game.ControlsText)
	case game.ScreenAbout:
		t.drawMenu(game.AboutTitle, game.AboutText)
	case game.ScreenGameHUD:
		t.drawHUD()
		t.drawMap()
	}
	t.screen.Show()
}

func (t *Term) putStr(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *Term) drawMenu(title, body string) {
	w, _ := t.screen.Size()
	y := 2
	t.putStr((w-len(title))/2, y, title, styleActive)
	y += 2
	for _, line := range strings.Split(body, "\n") {
		if body == "" {
			break
		}
		t.putStr(4, y, line, styleText)
		y++
	}
	y++
	if p := t.g.Phase(); p != t.menuPhase {
		t.menuPhase = p
		t.menuCursor = 0
	}
	for i, item := range game.MenuItems(t.g.Phase()) {
		label := "  " + item.String()
		style := styleText
		if i == t.menuCursor {
			label = "> " + item.String()
			style = styleActive
		}
		t.putStr((w-12)/2, y+i, label, style)
	}
	if err := t.g.LastError(); err != nil {
		_, h := t.screen.Size()
		t.putStr(1, h-1, "last match aborted: "+err.Error(), styleBoom)
	}
}

func (t *Term) drawHUD() {
	w, _ := t.screen.Size()
	active := t.hud.Active()
	for i := 0; i < 2; i++ {
		s, shown := t.hud.PlayerText(i)
		if !shown {
			continue
		}
		style := styleText
		if i == active {
			style = styleActive
		}
		x := 1
		if i == 1 {
			x = w - len(s) - 1
		}
		t.putStr(x, 0, s, style)
	}
	if params := t.hud.ParamsText(); params != "" {
		t.putStr(1, 1, params, styleActive)
	}
	status := t.g.Phase().String()
	if wind := t.g.Wind(); wind.Speed > 0 {
		status += fmt.Sprintf("  wind %.0f m/s @ %d", wind.Speed, wind.Angle)
	}
	for i := 0; i < 2; i++ {
		if t.autoPlay[i] {
			status += fmt.Sprintf("  [bot P%d]", i+1)
		}
	}
	t.putStr(1, 2, status, styleDim)
}

// cell maps a ground cell to screen coordinates; +Z is up, +X is right.
func (t *Term) cell(l *game.Level, x, z int) (int, int) {
	return 1 + (x+1)*2, mapTop + (l.SizeZ - z)
}

func (t *Term) drawMap() {
	l := t.g.Level()
	if l == nil {
		return
	}
	for _, gt := range l.Ground {
		cx, cy := t.cell(l, gt.X, gt.Z)
		r := '·'
		if gt.Info.Kind == game.TileCorner || gt.Info.Kind == game.TileJunction {
			r = '+'
		}
		t.screen.SetContent(cx, cy, r, nil, styleStreet)
	}
	for _, b := range l.Buildings() {
		cx, cy := t.cell(l, b.Lot.X, b.Lot.Z)
		c := render.Colour(game.BuildingTexture(b.Skin))
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		t.screen.SetContent(cx, cy, heightRune(b.Height), nil, style)
	}

	players := t.g.Players()
	active := t.g.ActivePlayer()
	for i, p := range players {
		if p == nil || p.Node == nil || !p.Node.Visible {
			continue
		}
		cx, cy := t.cell(l, p.Position.X, p.Position.Z)
		style := stylePlayer[i]
		if p == active {
			style = style.Reverse(true)
		}
		t.screen.SetContent(cx+1, cy, rune('1'+i), nil, style)
	}

	if b := t.g.Projectile(); b != nil && b.Visible && t.g.Phase() == game.PhaseProjectileFlight {
		tile := l.SceneToTile(b.Transform.Translation)
		cx, cy := t.cell(l, tile.X, tile.Z)
		t.screen.SetContent(cx+1, cy, '*', nil, styleBanana)
		t.putStr(1, mapTop+l.SizeZ+3, fmt.Sprintf("banana altitude %d", tile.Y), styleDim)
	}
	if e := t.g.Explosion(); e != nil && e.Node.Visible {
		tile := l.SceneToTile(e.Node.Transform.Translation)
		cx, cy := t.cell(l, tile.X, tile.Z)
		t.screen.SetContent(cx, cy, '#', nil, styleBoom)
		t.screen.SetContent(cx+1, cy, '#', nil, styleBoom)
	}
}

// heightRune shows a building's live floor count.
func heightRune(h int) rune {
	switch {
	case h <= 0:
		return '_'
	case h < 10:
		return rune('0' + h)
	default:
		return '+'
	}
}
