package game

// InputKind is the type of an InputEvent.
type InputKind uint8

const (
	InputKeyDown InputKind = iota
	InputMouseDown
	InputMouseUp
	InputMouseMove
	InputWheel
)

// Key is a keyboard key the game reacts to.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
)

// InputEvent is a front-end agnostic input event.
type InputEvent struct {
	Kind   InputKind
	Key    Key
	Shift  bool
	Button MouseButton
	DX, DY int     // mouse move delta in pixels
	Wheel  float64 // positive scrolls up
}

// Angle steps for the arrow keys.
const (
	aimStep     = 5
	aimFineStep = 1
)

// HandleInput routes one event and reports whether the game consumed it.
func (g *Game) HandleInput(ev InputEvent) bool {
	switch {
	case g.phase == PhaseDialogControls || g.phase == PhaseDialogAbout:
		if ev.Kind == InputKeyDown && ev.Key == KeyEscape {
			g.setPhase(PhaseMainMenu)
			return true
		}
		return false
	case g.phase.InGame():
		return g.handleGameInput(ev)
	}
	return false
}

func (g *Game) handleGameInput(ev InputEvent) bool {
	if ev.Kind == InputKeyDown && ev.Key == KeyEscape {
		g.StopGame()
		return true
	}
	if ev.Kind == InputMouseUp {
		g.dragging = false
	}
	if g.phase != PhaseAimParameters {
		return ev.Kind == InputKeyDown
	}

	p := g.active
	changed := false
	switch ev.Kind {
	case InputKeyDown:
		step := aimStep
		if ev.Shift {
			step = aimFineStep
		}
		switch ev.Key {
		case KeyEnter:
			g.Launch()
			return true
		case KeyRight:
			changed = p.SetLaunchHeading(p.LaunchHeading() - step)
		case KeyLeft:
			changed = p.SetLaunchHeading(p.LaunchHeading() + step)
		case KeyUp:
			changed = p.SetLaunchElevation(p.LaunchElevation() + step)
		case KeyDown:
			changed = p.SetLaunchElevation(p.LaunchElevation() - step)
		case KeyPageUp:
			changed = p.SetLaunchSpeed(p.LaunchSpeed() + 1)
		case KeyPageDown:
			changed = p.SetLaunchSpeed(p.LaunchSpeed() - 1)
		}
	case InputMouseDown:
		switch ev.Button {
		case MouseLeft:
			g.dragging = true
		case MouseRight:
			g.Launch()
		}
	case InputMouseMove:
		if g.dragging {
			h := p.SetLaunchHeading(p.LaunchHeading() - ev.DX/2)
			e := p.SetLaunchElevation(p.LaunchElevation() - ev.DY/2)
			changed = h || e
		}
	case InputWheel:
		switch {
		case ev.Wheel > 0:
			changed = p.SetLaunchSpeed(p.LaunchSpeed() + 1)
		case ev.Wheel < 0:
			changed = p.SetLaunchSpeed(p.LaunchSpeed() - 1)
		}
	}
	if changed {
		g.updatePlayer(p)
	}
	return true
}

// Select activates a menu or dialog button. It reports whether the button
// exists on the current page.
func (g *Game) Select(item MenuItem) bool {
	valid := false
	for _, it := range MenuItems(g.phase) {
		if it == item {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}
	g.sound.Play(SoundClick, false)
	switch item {
	case MenuPlay:
		g.setPhase(PhaseNewGame)
	case MenuControls:
		g.setPhase(PhaseDialogControls)
	case MenuAbout:
		g.setPhase(PhaseDialogAbout)
	case MenuExit:
		g.quit = true
	case MenuBack:
		g.setPhase(PhaseMainMenu)
	}
	return true
}
