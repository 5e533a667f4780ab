package game

import (
	"fmt"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// Player is one of the two gorillas. Only Score survives from one level to
// the next; everything else is reset by the generator.
type Player struct {
	Index    int
	Score    int
	Position Tile // Y is the rooftop height

	speed     int
	elevation int // degrees, positive is up
	heading   int // degrees in [0,360); 0 faces +Z, 90 faces +X
	limits    LaunchTuning

	LaunchDirection geom.Vec3
	LaunchPosition  geom.Vec3
	Camera          Camera
	Node            *Node
}

// NewPlayer creates player index (0 or 1) with its launch limits.
func NewPlayer(index int, limits LaunchTuning) *Player {
	return &Player{
		Index:  index,
		limits: limits,
		speed:  limits.MinSpeed + (limits.MaxSpeed-limits.MinSpeed)/2,
	}
}

// Label is the short name used in logs, e.g. "P1".
func (p *Player) Label() string {
	return fmt.Sprintf("P%d", p.Index+1)
}

func (p *Player) LaunchSpeed() int     { return p.speed }
func (p *Player) LaunchElevation() int { return p.elevation }
func (p *Player) LaunchHeading() int   { return p.heading }

// SetLaunchSpeed clamps v to the allowed range and reports whether the
// stored value changed.
func (p *Player) SetLaunchSpeed(v int) bool {
	v = clampInt(v, p.limits.MinSpeed, p.limits.MaxSpeed)
	if v == p.speed {
		return false
	}
	p.speed = v
	return true
}

// SetLaunchElevation clamps v to the allowed range and reports whether the
// stored value changed.
func (p *Player) SetLaunchElevation(v int) bool {
	v = clampInt(v, p.limits.MinElevation, p.limits.MaxElevation)
	if v == p.elevation {
		return false
	}
	p.elevation = v
	return true
}

// SetLaunchHeading wraps v into [0,360) and reports whether it changed.
func (p *Player) SetLaunchHeading(v int) bool {
	v = geom.NormalizeAngle(v)
	if v == p.heading {
		return false
	}
	p.heading = v
	return true
}

// Rotation is the Euler orientation of the gorilla's view: pitch down by
// the negated elevation, yaw by the heading.
func (p *Player) Rotation() geom.Vec3 {
	return geom.Vec3{X: float64(-p.elevation), Y: float64(p.heading)}
}

// resetLaunch restores the opening aim for a new level.
func (p *Player) resetLaunch() {
	p.speed = p.limits.MinSpeed + (p.limits.MaxSpeed-p.limits.MinSpeed)/2
	p.elevation = 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
