package render

import "github.com/Garsondee/Gorillas-3D/internal/game"

// Menu metrics in pixels.
const (
	MenuItemWidth  = 200
	MenuItemHeight = 32
	MenuItemGap    = 12
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// MenuButton is a laid-out menu entry.
type MenuButton struct {
	Item game.MenuItem
	Rect Rect
}

// MenuLayout stacks the phase's menu items. The main menu is centred on
// the screen; a dialog's Back button sits near the bottom.
func MenuLayout(p game.Phase, width, height int) []MenuButton {
	items := game.MenuItems(p)
	if len(items) == 0 {
		return nil
	}
	total := len(items)*MenuItemHeight + (len(items)-1)*MenuItemGap
	y := (height - total) / 2
	if p != game.PhaseMainMenu {
		y = height - total - 3*MenuItemGap
	}
	x := (width - MenuItemWidth) / 2

	out := make([]MenuButton, len(items))
	for i, it := range items {
		out[i] = MenuButton{
			Item: it,
			Rect: Rect{X: x, Y: y + i*(MenuItemHeight+MenuItemGap), W: MenuItemWidth, H: MenuItemHeight},
		}
	}
	return out
}

// MenuHit returns the item under (x, y).
func MenuHit(buttons []MenuButton, x, y int) (game.MenuItem, bool) {
	for _, b := range buttons {
		if b.Rect.Contains(x, y) {
			return b.Item, true
		}
	}
	return 0, false
}
