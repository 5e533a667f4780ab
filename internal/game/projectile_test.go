package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

func testTrajectory(speed, heading, elevation float64) Trajectory {
	return Trajectory{
		Speed:     speed,
		Heading:   heading,
		Elevation: elevation,
		Origin:    geom.Vec3{X: 1.25, Y: 5.5, Z: -2.75},
		Physics:   DefaultTuning().Physics,
	}
}

func TestTrajectory_StartsAtOrigin(t *testing.T) {
	tr := testTrajectory(33, 127, 61)
	tr.Wind = Wind{Angle: 40, Speed: 12, Direction: geom.RotateVector(geom.UnitX, 0, 40, 0)}
	if got := tr.Position(0); got != tr.Origin {
		t.Fatalf("Position(0) = %+v, want %+v", got, tr.Origin)
	}
}

func TestTrajectory_Deterministic(t *testing.T) {
	tr := testTrajectory(25, 45, 45)
	for _, ts := range []float64{0.005, 0.5, 1.234, 7} {
		if tr.Position(ts) != tr.Position(ts) {
			t.Fatalf("Position(%v) not reproducible", ts)
		}
	}
}

func TestTrajectory_FlatThrowStaysInPlane(t *testing.T) {
	tr := testTrajectory(20, 0, 0)
	for _, ts := range []float64{0.1, 1, 3} {
		p := tr.Position(ts)
		assert.Equal(t, tr.Origin.X, p.X, "heading 0 has no X drift at t=%v", ts)
		assert.Greater(t, p.Z, tr.Origin.Z)
	}

	tr.Heading = 90
	p := tr.Position(2)
	assert.InDelta(t, tr.Origin.Z, p.Z, 1e-9)
	assert.Greater(t, p.X, tr.Origin.X)
}

func TestTrajectory_EulerMatchesClosedSum(t *testing.T) {
	tr := testTrajectory(10, 0, 0)
	p := tr.Position(1)
	// 100 steps: vertical offset g·dt²·(1+2+...+100), then tile scale.
	wantY := -9.8 * 0.01 * 0.01 * 5050 * 0.2
	assert.InDelta(t, tr.Origin.Y+wantY, p.Y, 1e-9)
	assert.InDelta(t, tr.Origin.Z+10*0.2, p.Z, 1e-9)
}

func TestTrajectory_PartialStep(t *testing.T) {
	tr := testTrajectory(10, 0, 30)
	a := tr.Position(0.015)
	b := tr.Position(0.02)
	c := tr.Position(0.01)
	assert.Greater(t, a.Z, c.Z)
	assert.Less(t, a.Z, b.Z)
}

func TestTrajectory_WindDrift(t *testing.T) {
	calm := testTrajectory(20, 0, 30)
	windy := calm
	windy.Wind = Wind{Speed: 10, Direction: geom.UnitX}

	a, b := calm.Position(2), windy.Position(2)
	assert.InDelta(t, 2*10*0.2, b.X-a.X, 1e-9)
	assert.InDelta(t, 0, b.Y-a.Y, 1e-12)
	assert.InDelta(t, 0, b.Z-a.Z, 1e-12)
}

func TestFlightTime_HitsGroundWithinThirtySeconds(t *testing.T) {
	tn := DefaultTuning()
	players := newTestPlayers()
	l, _, err := GenerateLevel(seeded(11), tn, players)
	require.NoError(t, err)

	tr := testTrajectory(25, 0, 45)
	tr.Origin = l.TileToScene(players[0].Position)
	steps, hit, err := FlightTime(tr, func(p geom.Vec3) HitResult { return l.HitTest(p, players[1]) })
	require.NoError(t, err)
	assert.True(t, hit.Hit())
	assert.LessOrEqual(t, tr.StepTime(steps), 30.0)
	t.Logf("hit %s after %.2fs at %+v", hit.Kind, tr.StepTime(steps), hit.Tile)
}

func TestFlightTime_LookaheadAgreesWithSampling(t *testing.T) {
	l, target := hitFixture()
	hitFn := func(p geom.Vec3) HitResult { return l.HitTest(p, target) }

	for _, tr := range []Trajectory{
		testTrajectory(25, 0, 45),
		testTrajectory(12, 200, 10),
		testTrajectory(40, 315, 70),
	} {
		tr.Origin = geom.Vec3{X: 0, Y: 4.5, Z: 0}
		steps, hit, err := FlightTime(tr, hitFn)
		require.NoError(t, err)
		for k := 1; k < steps; k++ {
			if hitFn(tr.Position(tr.StepTime(k))).Hit() {
				t.Fatalf("sample %d hits before the reported impact at %d", k, steps)
			}
		}
		assert.Equal(t, hit, hitFn(tr.Position(tr.StepTime(steps))))
	}
}

func TestFlightTime_Unbounded(t *testing.T) {
	tr := testTrajectory(10, 0, 80)
	tr.Physics.MaxFlightTime = 1
	_, _, err := FlightTime(tr, func(geom.Vec3) HitResult { return HitResult{} })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFlightUnbounded))

	tr.Physics.Step = 0
	_, _, err = FlightTime(tr, func(geom.Vec3) HitResult { return HitResult{} })
	assert.True(t, errors.Is(err, ErrFlightUnbounded))
}
