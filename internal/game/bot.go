package game

import (
	"math"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// botElevation is the fixed throw angle the bot solves speed for.
const botElevation = 45

// Bot aims at the opponent with a flat-ground ballistic estimate plus some
// noise. It only uses the public aim controls, like a player would.
type Bot struct {
	rng           RNG
	HeadingJitter int     // degrees either side
	SpeedJitter   float64 // fraction of the solved speed
}

// NewBot returns a bot with mild aiming noise.
func NewBot(rng RNG) *Bot {
	return &Bot{rng: rng, HeadingJitter: 4, SpeedJitter: 0.08}
}

// Plan returns the throw the bot would make from thrower at target.
func (b *Bot) Plan(thrower, target *Player, phys PhysicsTuning) (speed, heading, elevation int) {
	from, to := thrower.Camera.Position, target.Camera.Position
	dx, dz := to.X-from.X, to.Z-from.Z

	bearing := geom.Deg(math.Atan2(dx, dz))
	heading = geom.NormalizeAngle(int(math.Round(bearing)) + randRange(b.rng, -b.HeadingJitter, b.HeadingJitter+1))

	// v² = g·R² / (R − Δh) for a 45° throw, in metres.
	scale := phys.TileScale
	if scale <= 0 {
		scale = 1
	}
	r := math.Hypot(dx, dz) / scale
	dh := (to.Y - from.Y) / scale
	g := math.Abs(phys.Gravity)
	v := math.Sqrt(g * r * r / math.Max(r-dh, 1))
	v *= 1 + randFloat(b.rng, -b.SpeedJitter, b.SpeedJitter)

	return int(math.Round(v)), heading, botElevation
}

// Play throws for the active player if the game is waiting for one. It
// reports whether a banana was launched.
func (b *Bot) Play(g *Game) bool {
	if g.Phase() != PhaseAimParameters {
		return false
	}
	active := g.ActivePlayer()
	target := g.Players()[1-active.Index]
	speed, heading, elevation := b.Plan(active, target, g.Tuning().Physics)
	g.Aim(speed, heading, elevation)
	return g.Launch()
}
