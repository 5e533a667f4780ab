package game

import (
	"fmt"
	"sync"
)

// Sound effect names passed to SoundPlayer.Play.
const (
	SoundRising          = "Rising"
	SoundTransitionShort = "TransitionShort"
	SoundTransitionLong  = "TransitionLong"
	SoundBeep            = "Beep"
	SoundThrow           = "Throw"
	SoundExplosion       = "Explosion"
	SoundCollapse        = "Collapse"
	SoundClick           = "Click"
)

// SoundPlayer plays named effects. Implementations must not block.
type SoundPlayer interface {
	Play(name string, loop bool)
	StopAll()
}

// NopSound discards every request.
type NopSound struct{}

func (NopSound) Play(string, bool) {}
func (NopSound) StopAll()          {}

// Screen is the top-level UI page.
type Screen uint8

const (
	ScreenMainMenu Screen = iota
	ScreenControls
	ScreenAbout
	ScreenGameHUD
)

func (s Screen) String() string {
	switch s {
	case ScreenControls:
		return "controls"
	case ScreenAbout:
		return "about"
	case ScreenGameHUD:
		return "hud"
	default:
		return "menu"
	}
}

// HUD receives the game's UI commands.
type HUD interface {
	ShowScreen(s Screen)
	SetPlayerScore(player, score int)
	SetActivePlayer(player int) // -1 clears the highlight
	SetThrowParams(speed, heading, elevation int)
	ShowPlayerText(player int, show bool)
}

// HUDState is a HUD that just remembers what it was told. Front ends read
// it back every frame to draw the overlay. It is safe for concurrent use.
type HUDState struct {
	mu        sync.Mutex
	screen    Screen
	scores    [2]int
	active    int
	showText  [2]bool
	params    string
	paramsSet bool
	speed     int
	heading   int
	elevation int
}

// NewHUDState returns a HUD showing the main menu.
func NewHUDState() *HUDState {
	return &HUDState{active: -1}
}

func (h *HUDState) ShowScreen(s Screen) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.screen = s
	if s == ScreenGameHUD {
		h.scores = [2]int{}
		h.active = -1
		h.showText = [2]bool{true, true}
		h.params = ""
		h.paramsSet = false
	}
}

func (h *HUDState) SetPlayerScore(player, score int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if player < 0 || player > 1 {
		return
	}
	h.scores[player] = score
}

func (h *HUDState) SetActivePlayer(player int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = player
	if player < 0 {
		h.params = ""
		h.paramsSet = false
	}
}

func (h *HUDState) SetThrowParams(speed, heading, elevation int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.speed, h.heading, h.elevation = speed, heading, elevation
	h.params = fmt.Sprintf("SPEED:  %d m/s      ANGLE:  %d°H  %d°V", speed, heading, elevation)
	h.paramsSet = true
}

func (h *HUDState) ShowPlayerText(player int, show bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if player < 0 || player > 1 {
		return
	}
	h.showText[player] = show
}

// Screen returns the current page.
func (h *HUDState) Screen() Screen {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screen
}

// Active returns the highlighted player, or -1.
func (h *HUDState) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Score returns the last score shown for player.
func (h *HUDState) Score(player int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scores[player]
}

// PlayerText returns the score label for player and whether it is shown.
//
//	PLAYER 1       3
//	2       PLAYER 2
func (h *HUDState) PlayerText(player int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if player == 0 {
		return fmt.Sprintf("PLAYER 1       %d", h.scores[0]), h.showText[0]
	}
	return fmt.Sprintf("%d       PLAYER 2", h.scores[1]), h.showText[1]
}

// ParamsText returns the throw parameter line, empty when no player is
// aiming.
func (h *HUDState) ParamsText() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.params
}

// ThrowParams returns the last throw parameters and whether any are set.
func (h *HUDState) ThrowParams() (speed, heading, elevation int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.speed, h.heading, h.elevation, h.paramsSet
}

// Dialog texts for the menu pages.
const (
	ControlsTitle = "Controls Guide"
	ControlsText  = "MOUSE\n\n" +
		"[ Wheel ]  -  Adjust throw speed\n" +
		"[ Left drag ]  -  Adjust throw angle\n" +
		"[ Right click ]  -  Throw banana\n\n" +
		"KEYBOARD\n\n" +
		"[ PgUp, PgDn ]  -  Adjust throw speed\n" +
		"[ Left, Right, Up, Down ]  -  Adjust throw angle\n" +
		"[ Shift + Arrows ]  -  Fine tune throw angle\n" +
		"[ Enter ]  -  Throw banana\n" +
		"[ Esc ]  -  Exit to Main Menu"
	AboutTitle = "About Gorillas 3D"
	AboutText  = "Two gorillas, one city, a crate of bananas.\n\n" +
		"Take turns throwing across the rooftops.\n" +
		"Every direct hit scores a point and raises a new city."
)
