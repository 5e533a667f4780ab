package game

// Phase is the state of the match state machine. Exactly one is active.
// The order matters: everything after PhaseNewGame is gameplay.
type Phase uint8

const (
	PhaseMainMenu         Phase = iota // Menu screen
	PhaseDialogControls                // Controls help dialog
	PhaseDialogAbout                   // About dialog
	PhaseNewGame                       // Transient: scores reset, first level starts
	PhaseLevelGeneration               // City rises, camera orbits
	PhasePlayerSelection               // Camera flies to the next thrower
	PhaseAimParameters                 // Active player adjusts the throw
	PhaseProjectileFlight              // Banana in the air
	PhaseExplosion                     // Particle burst at the impact
	PhaseBuildingCollapse              // Floors above the hole slide down
)

func (p Phase) String() string {
	switch p {
	case PhaseMainMenu:
		return "main_menu"
	case PhaseDialogControls:
		return "dialog_controls"
	case PhaseDialogAbout:
		return "dialog_about"
	case PhaseNewGame:
		return "new_game"
	case PhaseLevelGeneration:
		return "level_generation"
	case PhasePlayerSelection:
		return "player_selection"
	case PhaseAimParameters:
		return "aim_parameters"
	case PhaseProjectileFlight:
		return "projectile_flight"
	case PhaseExplosion:
		return "explosion"
	case PhaseBuildingCollapse:
		return "building_collapse"
	default:
		return "unknown"
	}
}

// InGame reports whether p is a gameplay phase.
func (p Phase) InGame() bool { return p > PhaseNewGame }

// MenuItem is a button on the menu or dialog pages.
type MenuItem uint8

const (
	MenuPlay MenuItem = iota
	MenuControls
	MenuAbout
	MenuExit
	MenuBack
)

func (m MenuItem) String() string {
	switch m {
	case MenuPlay:
		return "Play"
	case MenuControls:
		return "Controls"
	case MenuAbout:
		return "About"
	case MenuExit:
		return "Exit"
	case MenuBack:
		return "Back"
	default:
		return "?"
	}
}

// MenuItems lists the buttons visible in phase p, top to bottom.
func MenuItems(p Phase) []MenuItem {
	switch p {
	case PhaseMainMenu:
		return []MenuItem{MenuPlay, MenuControls, MenuAbout, MenuExit}
	case PhaseDialogControls, PhaseDialogAbout:
		return []MenuItem{MenuBack}
	default:
		return nil
	}
}
