// Package view is the ebiten window front end: it feeds input to the game,
// ticks it once per frame and draws the projected scene and HUD.
package view

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

// View adapts a game.Game to ebiten.Game.
type View struct {
	g      *game.Game
	hud    *game.HUDState
	logger zerolog.Logger

	width, height int
	face          *text.GoXFace

	prevKeys     map[ebiten.Key]bool
	prevMouse    [2]bool
	lastX, lastY int
	menuCursor   int
	menuPhase    game.Phase
	showLog      bool
	status       string
	statusUntil  float64

	copyText func(string) error
}

// New wraps g. hud must be the HUDState the game was built with.
func New(g *game.Game, hud *game.HUDState, width, height int, logger zerolog.Logger) *View {
	return &View{
		g:        g,
		hud:      hud,
		logger:   logger,
		width:    width,
		height:   height,
		face:     text.NewGoXFace(basicfont.Face7x13),
		prevKeys: make(map[ebiten.Key]bool),
		copyText: clipboard.WriteAll,
	}
}

// Update polls input and advances the game by one tick.
func (v *View) Update() error {
	v.handleInput()
	if v.g.Quitting() {
		return ebiten.Termination
	}
	v.g.Update(1 / float64(ebiten.TPS()))
	return nil
}

// Layout keeps a fixed logical resolution.
func (v *View) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

// copyLog puts the formatted match log on the clipboard.
func (v *View) copyLog() {
	log := v.g.MatchLog().Format()
	if err := v.copyText(log); err != nil {
		v.logger.Warn().Err(err).Msg("clipboard copy failed")
		v.flash("clipboard unavailable")
		return
	}
	v.logger.Info().Int("entries", len(v.g.MatchLog().Entries())).Msg("match log copied")
	v.flash("match log copied")
}

func (v *View) flash(msg string) {
	v.status = msg
	v.statusUntil = v.g.Clock() + 2
}
