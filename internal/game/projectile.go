package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// ErrFlightUnbounded is returned when a throw never hits anything within
// the configured maximum flight time.
var ErrFlightUnbounded = errors.New("projectile flight exceeded maximum time")

// Trajectory is a throw frozen at launch time. Position is a pure function
// of elapsed time: the same inputs always give the same bits.
type Trajectory struct {
	Speed     float64 // m/s
	Elevation float64 // degrees, positive is up
	Heading   float64 // degrees, 0 faces +Z
	Origin    geom.Vec3
	Wind      Wind
	Physics   PhysicsTuning
}

// NewTrajectory captures p's current throw.
func NewTrajectory(p *Player, wind Wind, phys PhysicsTuning) Trajectory {
	return Trajectory{
		Speed:     float64(p.LaunchSpeed()),
		Elevation: float64(p.LaunchElevation()),
		Heading:   float64(p.LaunchHeading()),
		Origin:    p.LaunchPosition,
		Wind:      wind,
		Physics:   phys,
	}
}

// Position integrates the throw up to t seconds with fixed Euler steps of
// Physics.Step (the last one shortened) and returns the scene position.
// There is no drag; wind drifts the projectile linearly.
func (tr Trajectory) Position(t float64) geom.Vec3 {
	sin, cos := math.Sincos(geom.Rad(tr.Elevation))
	vx, vy := tr.Speed*cos, tr.Speed*sin
	var px, py float64

	step := tr.Physics.Step
	n := int(math.Floor(t/step + 1e-9))
	rem := t - float64(n)*step
	if rem < 1e-12 {
		rem = 0
	}
	for i := 0; i < n; i++ {
		vy += tr.Physics.Gravity * step
		px += vx * step
		py += vy * step
	}
	if rem > 0 {
		vy += tr.Physics.Gravity * rem
		px += vx * rem
		py += vy * rem
	}

	px *= tr.Physics.TileScale
	py *= tr.Physics.TileScale

	hs, hc := math.Sincos(geom.Rad(tr.Heading))
	pos := geom.Vec3{
		X: tr.Origin.X + px*hs,
		Y: tr.Origin.Y + py,
		Z: tr.Origin.Z + px*hc,
	}
	if tr.Wind.Speed > 0 {
		pos = pos.Add(tr.Wind.Direction.Scale(t * tr.Wind.Speed * tr.Physics.TileScale))
	}
	return pos
}

// StepTime is the time of sample k on the shared lookahead grid.
func (tr Trajectory) StepTime(k int) float64 {
	return float64(k) * tr.Physics.Step
}

// FlightTime walks the trajectory on the grid t_k = k*Step until hit
// reports something. It returns the step index of the impact and what was
// hit. The flight phase resolves the impact at exactly that step, so the
// lookahead and the flight always agree.
func FlightTime(tr Trajectory, hit func(geom.Vec3) HitResult) (int, HitResult, error) {
	if tr.Physics.Step <= 0 {
		return 0, HitResult{}, fmt.Errorf("invalid physics step %v: %w", tr.Physics.Step, ErrFlightUnbounded)
	}
	maxSteps := int(math.Ceil(tr.Physics.MaxFlightTime / tr.Physics.Step))
	for k := 1; k <= maxSteps; k++ {
		if r := hit(tr.Position(tr.StepTime(k))); r.Hit() {
			return k, r, nil
		}
	}
	return maxSteps, HitResult{}, fmt.Errorf("no impact within %.1fs: %w", tr.Physics.MaxFlightTime, ErrFlightUnbounded)
}
