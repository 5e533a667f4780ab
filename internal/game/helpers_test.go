package game

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

func vec(p [3]float64) geom.Vec3 { return geom.Vec3{X: p[0], Y: p[1], Z: p[2]} }

func abs(v float64) float64 { return math.Abs(v) }

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- tests
}

// newTestPlayers returns two fresh players with the default launch limits.
func newTestPlayers() [2]*Player {
	lt := DefaultTuning().Launch
	return [2]*Player{NewPlayer(0, lt), NewPlayer(1, lt)}
}

// smallTuning is the 9x9 city used by the generator tests.
func smallTuning() Tuning {
	tn := DefaultTuning()
	tn.Level.Size = 9
	return tn
}
