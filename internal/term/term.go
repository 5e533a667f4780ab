// Package term is a terminal front end: a top-down map of the city drawn
// with tcell, driven by the same game core as the window.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

const frameInterval = 16 * time.Millisecond

// Term owns a tcell screen and a game.
type Term struct {
	screen tcell.Screen
	g      *game.Game
	hud    *game.HUDState
	bot    *game.Bot
	logger zerolog.Logger

	menuCursor int
	menuPhase  game.Phase
	autoPlay   [2]bool
	quit       bool
}

// New wraps an initialised screen. hud must be the HUDState the game was
// built with; bot may be nil to disable auto-aim.
func New(screen tcell.Screen, g *game.Game, hud *game.HUDState, bot *game.Bot, logger zerolog.Logger) *Term {
	return &Term{screen: screen, g: g, hud: hud, bot: bot, logger: logger}
}

// Run pumps events and ticks the game until the player exits or ctx ends.
func (t *Term) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.HandleEvent(ev)
		case now := <-ticker.C:
			t.Tick(now.Sub(last).Seconds())
			last = now
			t.Draw()
		}
		if t.quit || t.g.Quitting() {
			t.logger.Info().Msg("terminal front end exiting")
			return nil
		}
	}
}

// Tick advances the game and lets the bot play seats flagged for it.
func (t *Term) Tick(dt float64) {
	t.g.Update(dt)
	if t.bot == nil || t.g.Phase() != game.PhaseAimParameters {
		return
	}
	if p := t.g.ActivePlayer(); p != nil && t.autoPlay[p.Index] {
		t.bot.Play(t.g)
	}
}

var termKeys = map[tcell.Key]game.Key{
	tcell.KeyEscape: game.KeyEscape,
	tcell.KeyEnter:  game.KeyEnter,
	tcell.KeyLeft:   game.KeyLeft,
	tcell.KeyRight:  game.KeyRight,
	tcell.KeyUp:     game.KeyUp,
	tcell.KeyDown:   game.KeyDown,
	tcell.KeyPgUp:   game.KeyPageUp,
	tcell.KeyPgDn:   game.KeyPageDown,
}

// HandleEvent routes one tcell event.
func (t *Term) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.quit = true
			return
		}
		if items := game.MenuItems(t.g.Phase()); items != nil {
			t.handleMenuKey(ev, items)
			return
		}
		t.handleGameKey(ev)
	}
}

func (t *Term) handleMenuKey(ev *tcell.EventKey, items []game.MenuItem) {
	if p := t.g.Phase(); p != t.menuPhase {
		t.menuPhase = p
		t.menuCursor = 0
	}
	switch ev.Key() {
	case tcell.KeyUp:
		t.menuCursor = (t.menuCursor + len(items) - 1) % len(items)
	case tcell.KeyDown:
		t.menuCursor = (t.menuCursor + 1) % len(items)
	case tcell.KeyEnter:
		t.g.Select(items[t.menuCursor])
	case tcell.KeyEscape:
		t.g.HandleInput(game.InputEvent{Kind: game.InputKeyDown, Key: game.KeyEscape})
	}
}

func (t *Term) handleGameKey(ev *tcell.EventKey) {
	if k, ok := termKeys[ev.Key()]; ok {
		t.g.HandleInput(game.InputEvent{
			Kind:  game.InputKeyDown,
			Key:   k,
			Shift: ev.Modifiers()&tcell.ModShift != 0,
		})
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case '+', '=':
		t.g.HandleInput(game.InputEvent{Kind: game.InputWheel, Wheel: 1})
	case '-', '_':
		t.g.HandleInput(game.InputEvent{Kind: game.InputWheel, Wheel: -1})
	case ' ':
		t.g.HandleInput(game.InputEvent{Kind: game.InputKeyDown, Key: game.KeyEnter})
	case 'a':
		if t.bot != nil && t.g.Phase() == game.PhaseAimParameters {
			t.bot.Play(t.g)
		}
	case '1', '2':
		i := int(ev.Rune() - '1')
		t.autoPlay[i] = !t.autoPlay[i]
		t.logger.Debug().Int("player", i+1).Bool("auto", t.autoPlay[i]).Msg("autoplay toggled")
	}
}

// AutoPlay reports whether the bot plays for player i.
func (t *Term) AutoPlay(i int) bool { return t.autoPlay[i] }
