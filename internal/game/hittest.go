package game

import "github.com/Garsondee/Gorillas-3D/internal/geom"

// HitKind tags a HitResult.
type HitKind uint8

const (
	HitNone     HitKind = iota // Nothing at this point
	HitGround                  // Below street level
	HitBuilding                // A live floor of a building
	HitPlayer                  // The inactive player's gorilla
)

func (k HitKind) String() string {
	switch k {
	case HitGround:
		return "ground"
	case HitBuilding:
		return "building"
	case HitPlayer:
		return "player"
	default:
		return "none"
	}
}

// HitResult describes what occupies a point. Building is set only for
// HitBuilding and Player only for HitPlayer.
type HitResult struct {
	Kind     HitKind
	Tile     Tile
	Building *Building
	Player   *Player
}

// Hit reports whether anything was hit.
func (r HitResult) Hit() bool { return r.Kind != HitNone }

// HitTest resolves a scene point against the level. The thrower can never
// hit itself; only inactive is tested as a target.
func (l *Level) HitTest(p geom.Vec3, inactive *Player) HitResult {
	if p.Y < 0 {
		return HitResult{Kind: HitGround}
	}
	return l.HitTestTile(l.SceneToTile(p), inactive)
}

// HitTestTile resolves a tile against the level.
func (l *Level) HitTestTile(t Tile, inactive *Player) HitResult {
	if t.Y < 0 {
		return HitResult{Kind: HitGround, Tile: t}
	}
	if !l.IsBuildingTile(t.X, t.Z) {
		return HitResult{}
	}
	if inactive != nil && inactive.Position == t {
		return HitResult{Kind: HitPlayer, Tile: t, Player: inactive}
	}
	if b := l.BuildingAt(t.X, t.Z); b != nil && t.Y < b.Height {
		return HitResult{Kind: HitBuilding, Tile: t, Building: b}
	}
	return HitResult{}
}
