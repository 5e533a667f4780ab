package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/render"
)

// Held arrow keys repeat after keyRepeatDelay ticks, every keyRepeatEvery.
const (
	keyRepeatDelay = 18
	keyRepeatEvery = 3
)

var gameKeys = map[ebiten.Key]game.Key{
	ebiten.KeyEscape:     game.KeyEscape,
	ebiten.KeyEnter:      game.KeyEnter,
	ebiten.KeyArrowLeft:  game.KeyLeft,
	ebiten.KeyArrowRight: game.KeyRight,
	ebiten.KeyArrowUp:    game.KeyUp,
	ebiten.KeyArrowDown:  game.KeyDown,
	ebiten.KeyPageUp:     game.KeyPageUp,
	ebiten.KeyPageDown:   game.KeyPageDown,
}

// pressed reports a key that went down this tick. With repeat set, a key
// held long enough also fires periodically.
func (v *View) pressed(k ebiten.Key, current map[ebiten.Key]bool, repeat bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	if current[k] && !v.prevKeys[k] {
		return true
	}
	if !repeat || !current[k] {
		return false
	}
	d := inpututil.KeyPressDuration(k)
	return d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatEvery == 0
}

func (v *View) handleInput() {
	current := map[ebiten.Key]bool{}
	defer func() { v.prevKeys = current }()

	// F2: copy the match log. F3: toggle the on-screen log tail.
	current[ebiten.KeyF2] = ebiten.IsKeyPressed(ebiten.KeyF2)
	if current[ebiten.KeyF2] && !v.prevKeys[ebiten.KeyF2] {
		v.copyLog()
	}
	current[ebiten.KeyF3] = ebiten.IsKeyPressed(ebiten.KeyF3)
	if current[ebiten.KeyF3] && !v.prevKeys[ebiten.KeyF3] {
		v.showLog = !v.showLog
	}

	phase := v.g.Phase()
	if items := game.MenuItems(phase); items != nil {
		v.handleMenuInput(phase, items, current)
		return
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for ek, gk := range gameKeys {
		if v.pressed(ek, current, gk != game.KeyEscape && gk != game.KeyEnter) {
			v.g.HandleInput(game.InputEvent{Kind: game.InputKeyDown, Key: gk, Shift: shift})
		}
	}

	mx, my := ebiten.CursorPosition()
	buttons := [2]ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight}
	for i, b := range buttons {
		down := ebiten.IsMouseButtonPressed(b)
		switch {
		case down && !v.prevMouse[i]:
			v.g.HandleInput(game.InputEvent{Kind: game.InputMouseDown, Button: game.MouseButton(i)})
		case !down && v.prevMouse[i]:
			v.g.HandleInput(game.InputEvent{Kind: game.InputMouseUp, Button: game.MouseButton(i)})
		}
		v.prevMouse[i] = down
	}
	if dx, dy := mx-v.lastX, my-v.lastY; dx != 0 || dy != 0 {
		v.g.HandleInput(game.InputEvent{Kind: game.InputMouseMove, DX: dx, DY: dy})
	}
	v.lastX, v.lastY = mx, my

	if _, wy := ebiten.Wheel(); wy != 0 {
		v.g.HandleInput(game.InputEvent{Kind: game.InputWheel, Wheel: wy})
	}
}

func (v *View) handleMenuInput(phase game.Phase, items []game.MenuItem, current map[ebiten.Key]bool) {
	if phase != v.menuPhase {
		v.menuPhase = phase
		v.menuCursor = 0
	}

	if v.pressed(ebiten.KeyEscape, current, false) {
		v.g.HandleInput(game.InputEvent{Kind: game.InputKeyDown, Key: game.KeyEscape})
		return
	}
	if v.pressed(ebiten.KeyArrowDown, current, true) {
		v.menuCursor = (v.menuCursor + 1) % len(items)
	}
	if v.pressed(ebiten.KeyArrowUp, current, true) {
		v.menuCursor = (v.menuCursor + len(items) - 1) % len(items)
	}
	if v.pressed(ebiten.KeyEnter, current, false) {
		v.g.Select(items[v.menuCursor])
		return
	}

	mx, my := ebiten.CursorPosition()
	buttons := render.MenuLayout(phase, v.width, v.height)
	if mx != v.lastX || my != v.lastY {
		for i, b := range buttons {
			if b.Rect.Contains(mx, my) {
				v.menuCursor = i
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if item, ok := render.MenuHit(buttons, mx, my); ok {
			v.g.Select(item)
		}
	}
	v.lastX, v.lastY = mx, my
	v.prevMouse[0] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	v.prevMouse[1] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
}
