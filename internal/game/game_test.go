package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

const maxFrames = 60 * 60

// dumpLog prints the MatchLog so it appears in `go test -v` output.
func dumpLog(t *testing.T, tm *TestMatch) {
	t.Helper()
	entries := tm.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// phasesSince lists the phases entered after the first n log entries.
func phasesSince(tm *TestMatch, n int) []string {
	var out []string
	for _, e := range tm.Log.Entries()[n:] {
		if e.Category == CatPhase && e.Key == "enter" {
			out = append(out, e.Value)
		}
	}
	return out
}

// --- Menus ---

func TestMenu_DialogsAndBack(t *testing.T) {
	tm := NewTestMatch()
	g := tm.Game
	require.Equal(t, PhaseMainMenu, g.Phase())
	assert.Equal(t, ScreenMainMenu, tm.HUD.Screen())

	assert.False(t, g.Select(MenuBack), "no Back on the main menu")

	require.True(t, g.Select(MenuControls))
	assert.Equal(t, PhaseDialogControls, g.Phase())
	assert.Equal(t, ScreenControls, tm.HUD.Screen())
	assert.False(t, g.Select(MenuPlay))
	require.True(t, g.Select(MenuBack))
	assert.Equal(t, PhaseMainMenu, g.Phase())

	require.True(t, g.Select(MenuAbout))
	assert.Equal(t, ScreenAbout, tm.HUD.Screen())
	assert.True(t, g.HandleInput(InputEvent{Kind: InputKeyDown, Key: KeyEscape}))
	assert.Equal(t, PhaseMainMenu, g.Phase())

	// three menu selections click; closing a dialog with Esc does not
	assert.Equal(t, 3, tm.Sound.Count(SoundClick))
	assert.False(t, g.Quitting())
	require.True(t, g.Select(MenuExit))
	assert.True(t, g.Quitting())
}

// --- Match flow ---

func TestMatch_IntroThenFirstAim(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(42))
	require.True(t, tm.Start())
	g := tm.Game
	assert.Equal(t, PhaseLevelGeneration, g.Phase())
	assert.Equal(t, ScreenGameHUD, tm.HUD.Screen())
	assert.True(t, g.Scene().Visible)
	assert.Equal(t, 0, g.Turns())

	require.True(t, tm.SkipToAim(maxFrames), "never reached aiming")
	t.Logf("aiming after %d frames (%.2fs)", tm.Frames, g.Clock())

	assert.Equal(t, 3, g.Turns())
	assert.Equal(t, 0, g.ActivePlayer().Index, "player 1 throws first")
	assert.Equal(t, 0, tm.HUD.Active())
	assert.NotEmpty(t, tm.HUD.ParamsText())
	assert.True(t, g.Projectile().Visible)
	assertVec(t, g.ActivePlayer().LaunchPosition, g.Projectile().Transform.Translation)
	assert.Equal(t, g.ActivePlayer().Camera, g.Camera())

	assert.Equal(t, 1, tm.Sound.Count(SoundRising))
	assert.Equal(t, 1, tm.Sound.Count(SoundTransitionShort))
	assert.Equal(t, 2, tm.Sound.Count(SoundTransitionLong))
	// Five blinks per intro turn plus the ready beep.
	assert.Equal(t, 11, tm.Sound.Count(SoundBeep))

	assert.Equal(t, []string{
		"new_game", "level_generation",
		"player_selection", "player_selection", "player_selection",
		"aim_parameters",
	}, phasesSince(tm, 0))
}

func TestMatch_RevealRaisesCity(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(3))
	tm.Start()
	g := tm.Game
	tm.Step()

	sizeY := float64(g.Level().SizeY)
	mapNode := g.Scene().Find("Map")
	require.NotNil(t, mapNode)
	assert.Less(t, mapNode.Transform.Translation.Y, -sizeY*0.9)

	hidden := 0
	for _, b := range g.Level().Buildings() {
		for _, f := range b.LiveFloors() {
			if !f.Node.Visible {
				hidden++
			}
		}
	}
	assert.Positive(t, hidden, "low floors are still underground")

	tm.RunUntilPhase(PhasePlayerSelection, maxFrames)
	assert.InDelta(t, 0, mapNode.Transform.Translation.Y, 1e-9)
	for _, b := range g.Level().Buildings() {
		for _, f := range b.LiveFloors() {
			require.True(t, f.Node.Visible, "floor of %+v hidden after the reveal", b.Lot)
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	run := func() (*Level, [2]Tile) {
		tm := NewTestMatch(WithMatchSeed(77), WithLevelSize(11))
		require.True(t, tm.SkipToAim(maxFrames))
		ps := tm.Game.Players()
		return tm.Game.Level(), [2]Tile{ps[0].Position, ps[1].Position}
	}
	la, pa := run()
	lb, pb := run()
	assert.Equal(t, pa, pb)
	for i, b := range la.Buildings() {
		assert.Equal(t, b.Height, lb.Buildings()[i].Height)
	}
}

func TestMatch_EscapeAborts(t *testing.T) {
	tm := NewTestMatch()
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game

	assert.True(t, g.HandleInput(InputEvent{Kind: InputKeyDown, Key: KeyEscape}))
	assert.Equal(t, PhaseMainMenu, g.Phase())
	assert.Equal(t, ScreenMainMenu, tm.HUD.Screen())
	assert.False(t, g.Scene().Visible)
	assert.Equal(t, 1, tm.Sound.Stopped)
	assert.NoError(t, g.LastError())

	// A new match starts from scratch.
	require.True(t, tm.SkipToAim(maxFrames))
	assert.Equal(t, 3, g.Turns())
	assert.Equal(t, 2, g.Levels())
}

// --- Aiming ---

func TestAim_KeyboardAndMouse(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(5))
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game
	p := g.ActivePlayer()
	h0, e0, s0 := p.LaunchHeading(), p.LaunchElevation(), p.LaunchSpeed()

	key := func(k Key, shift bool) {
		g.HandleInput(InputEvent{Kind: InputKeyDown, Key: k, Shift: shift})
	}
	key(KeyUp, false)
	assert.Equal(t, e0+5, p.LaunchElevation())
	key(KeyDown, true)
	assert.Equal(t, e0+4, p.LaunchElevation())
	key(KeyLeft, false)
	assert.Equal(t, geom.NormalizeAngle(h0+5), p.LaunchHeading())
	key(KeyRight, true)
	assert.Equal(t, geom.NormalizeAngle(h0+4), p.LaunchHeading())
	key(KeyPageUp, false)
	assert.Equal(t, s0+1, p.LaunchSpeed())
	g.HandleInput(InputEvent{Kind: InputWheel, Wheel: -1})
	g.HandleInput(InputEvent{Kind: InputWheel, Wheel: -1})
	assert.Equal(t, s0-1, p.LaunchSpeed())

	// Drag: half a degree per pixel, moving right turns right.
	g.HandleInput(InputEvent{Kind: InputMouseMove, DX: 10, DY: 10})
	assert.Equal(t, geom.NormalizeAngle(h0+4), p.LaunchHeading(), "no drag without a button")
	g.HandleInput(InputEvent{Kind: InputMouseDown, Button: MouseLeft})
	assert.True(t, g.Dragging())
	g.HandleInput(InputEvent{Kind: InputMouseMove, DX: 10, DY: 10})
	assert.Equal(t, geom.NormalizeAngle(h0-1), p.LaunchHeading())
	assert.Equal(t, e0-1, p.LaunchElevation())
	g.HandleInput(InputEvent{Kind: InputMouseUp, Button: MouseLeft})
	assert.False(t, g.Dragging())

	speed, heading, elevation, ok := tm.HUD.ThrowParams()
	require.True(t, ok)
	assert.Equal(t, [3]int{p.LaunchSpeed(), p.LaunchHeading(), p.LaunchElevation()}, [3]int{speed, heading, elevation})
	assert.Contains(t, tm.HUD.ParamsText(), "SPEED:")

	// Launch vectors follow the aim.
	want := geom.RotateVector(geom.UnitZ, float64(-p.LaunchElevation()), float64(p.LaunchHeading()), 0)
	assertVec(t, want, p.LaunchDirection)
}

func TestAim_ClampsAtLimits(t *testing.T) {
	tm := NewTestMatch()
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game
	require.True(t, g.Aim(1000, 725, 400))
	p := g.ActivePlayer()
	assert.Equal(t, 40, p.LaunchSpeed())
	assert.Equal(t, 5, p.LaunchHeading())
	assert.Equal(t, 85, p.LaunchElevation())
	require.True(t, g.Aim(-3, -1, -400))
	assert.Equal(t, 10, p.LaunchSpeed())
	assert.Equal(t, 359, p.LaunchHeading())
	assert.Equal(t, -85, p.LaunchElevation())
}

func TestAim_RightClickLaunches(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(8))
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game
	g.HandleInput(InputEvent{Kind: InputMouseDown, Button: MouseRight})
	assert.Equal(t, PhaseProjectileFlight, g.Phase())
	assert.Equal(t, 1, tm.Sound.Count(SoundThrow))
	assert.False(t, g.Launch(), "cannot throw twice")
}

// --- Impacts ---

func TestImpact_OwnRoofCollapses(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(42))
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game
	thrower := g.ActivePlayer()
	roof := g.Level().BuildingAt(thrower.Position.X, thrower.Position.Z)
	before := roof.Height
	mark := len(tm.Log.Entries())

	// Straight down onto the gorilla's own building.
	require.True(t, tm.Fire(10, thrower.LaunchHeading(), -85))
	tm.RunUntilPhase(PhaseExplosion, maxFrames)
	require.Equal(t, PhaseExplosion, g.Phase())
	assert.True(t, tm.Log.HasEntry(CatHit, "building", ""))
	assert.Equal(t, before-1, roof.Height)
	assert.True(t, roof.Floors[before-1].Destroyed)
	assert.True(t, g.Explosion().Node.Visible)

	tm.RunUntilPhase(PhasePlayerSelection, maxFrames)
	dumpLog(t, tm)
	assert.Equal(t, []string{"projectile_flight", "explosion", "building_collapse", "player_selection"},
		phasesSince(tm, mark))
	assert.Equal(t, 1, tm.Sound.Count(SoundCollapse))
	assert.Equal(t, before-1, thrower.Position.Y, "occupant rides the roof down")
	assert.InDelta(t, float64(before-1)+0.5, thrower.Node.Transform.Translation.Y, 1e-9)
	assert.Equal(t, 4, g.Turns())
	assert.Equal(t, 1, g.ActivePlayer().Index)
	assert.Zero(t, thrower.Score)
}

// findKillShot searches for a throw that lands on the opponent.
func findKillShot(g *Game) (speed, heading, elevation int, ok bool) {
	thrower := g.ActivePlayer()
	target := g.Players()[1-thrower.Index]
	bot := &Bot{rng: seeded(1)}
	_, bearing, _ := bot.Plan(thrower, target, g.Tuning().Physics)

	for elevation := 45; elevation <= 80; elevation += 5 {
		for dh := -1; dh <= 1; dh++ {
			for speed := 10; speed <= 40; speed++ {
				g.Aim(speed, bearing+dh, elevation)
				tr := NewTrajectory(thrower, g.Wind(), g.Tuning().Physics)
				_, hit, err := FlightTime(tr, func(p geom.Vec3) HitResult { return g.Level().HitTest(p, target) })
				if err == nil && hit.Kind == HitPlayer {
					return speed, bearing + dh, elevation, true
				}
			}
		}
	}
	return 0, 0, 0, false
}

func TestImpact_PlayerHitScoresAndStartsNextLevel(t *testing.T) {
	var tm *TestMatch
	var speed, heading, elevation int
	found := false
	for seed := int64(1); seed <= 10 && !found; seed++ {
		tm = NewTestMatch(WithMatchSeed(seed))
		require.True(t, tm.SkipToAim(maxFrames))
		speed, heading, elevation, found = findKillShot(tm.Game)
	}
	require.True(t, found, "no kill shot on any seed")
	g := tm.Game
	thrower := g.ActivePlayer()
	t.Logf("kill shot: speed=%d heading=%d elevation=%d", speed, heading, elevation)

	require.True(t, tm.Fire(speed, heading, elevation))
	tm.RunUntilPhase(PhaseExplosion, maxFrames)
	assert.Equal(t, 1, thrower.Score)
	assert.Equal(t, 1, tm.HUD.Score(thrower.Index))
	assert.False(t, g.Players()[1-thrower.Index].Node.Visible, "hit gorilla disappears")

	// Explosion plus the extra delay, then a fresh city.
	tm.RunFor(g.Tuning().Timing.Explosion + g.Tuning().Timing.ExtraDelay - 2*FrameStep)
	assert.Equal(t, PhaseExplosion, g.Phase())
	tm.RunUntilPhase(PhaseLevelGeneration, 10)
	assert.Equal(t, PhaseLevelGeneration, g.Phase())
	assert.Equal(t, 2, g.Levels())
	assert.Equal(t, 0, g.Turns())
	assert.Equal(t, 1, thrower.Score, "score survives the level change")

	e, ok := tm.Log.LastOf(CatScore, "point")
	require.True(t, ok)
	assert.Equal(t, thrower.Label(), e.Player)
}

func TestImpact_GroundHitPassesTurn(t *testing.T) {
	tm := NewTestMatch(WithMatchSeed(12))
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game
	thrower := g.ActivePlayer()

	// Lob away from the opponent and off the map.
	require.True(t, tm.Fire(40, thrower.LaunchHeading()+180, 45))
	tm.RunUntilPhase(PhaseExplosion, maxFrames)
	last, _ := tm.Log.LastOf(CatHit, "")
	t.Logf("landed: %s", last.String())
	if last.Key != "ground" {
		t.Skipf("throw landed on %s, not the ground", last.Key)
	}
	assert.True(t, g.Explosion().Ground)
	tm.RunUntilPhase(PhasePlayerSelection, maxFrames)
	assert.Equal(t, 1-thrower.Index, g.ActivePlayer().Index)
	assert.Zero(t, thrower.Score)
}

// selectionPeak throws once from the first aim and returns the highest
// camera point of the selection flight that follows, with the city height.
func selectionPeak(t *testing.T, opts ...MatchOption) (float64, float64) {
	t.Helper()
	tm := NewTestMatch(append([]MatchOption{WithMatchSeed(12)}, opts...)...)
	require.True(t, tm.SkipToAim(maxFrames))
	g := tm.Game
	thrower := g.ActivePlayer()
	require.True(t, tm.Fire(40, thrower.LaunchHeading()+180, 45))
	require.GreaterOrEqual(t, tm.RunUntilPhase(PhasePlayerSelection, maxFrames), 0)
	require.GreaterOrEqual(t, g.Turns(), g.Tuning().Timing.IntroTurns, "selection after the intro")

	peak := g.Camera().Position.Y
	for g.Phase() == PhasePlayerSelection {
		tm.Step()
		peak = max(peak, g.Camera().Position.Y)
	}
	top := g.Level().TileToScene(Tile{Y: g.Level().SizeY}).Y
	return peak, top
}

func TestSelection_RisesOverSkylineByDefault(t *testing.T) {
	require.True(t, DefaultTuning().Camera.RiseEveryTurn)

	peak, top := selectionPeak(t)
	t.Logf("peak %.2f skyline %.2f", peak, top)
	assert.Greater(t, peak, top, "camera should clear the tallest building")

	flat, _ := selectionPeak(t, WithTune(func(tn *Tuning) { tn.Camera.RiseEveryTurn = false }))
	assert.Greater(t, peak, flat)
}

// --- Errors ---

func TestErrors_MissingAssetAbortsToMenu(t *testing.T) {
	tm := NewTestMatch(WithCatalog(NewMemoryCatalog(0)))
	err := tm.Game.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetNotFound))

	tm.Start()
	assert.Equal(t, PhaseMainMenu, tm.Game.Phase())
	assert.True(t, errors.Is(tm.Game.LastError(), ErrAssetNotFound))
	assert.True(t, tm.Log.HasEntry(CatError, "abort", "Building0.png"))
}

func TestErrors_UnboundedFlightAborts(t *testing.T) {
	tm := NewTestMatch(WithTune(func(tn *Tuning) { tn.Physics.MaxFlightTime = 0.05 }))
	require.True(t, tm.SkipToAim(maxFrames))
	assert.False(t, tm.Fire(10, tm.Game.ActivePlayer().LaunchHeading(), 0))
	assert.Equal(t, PhaseMainMenu, tm.Game.Phase())
	assert.True(t, errors.Is(tm.Game.LastError(), ErrFlightUnbounded))
}

func TestErrors_PlacementExhaustedAborts(t *testing.T) {
	tm := NewTestMatch(WithTune(func(tn *Tuning) {
		tn.Level.MinPlayerDistance = 5
		tn.Level.MaxPlacementAttempts = 3
	}))
	tm.Start()
	assert.Equal(t, PhaseMainMenu, tm.Game.Phase())
	assert.True(t, errors.Is(tm.Game.LastError(), ErrPlacementExhausted))
}

// --- Context ---

func TestContext_Snapshot(t *testing.T) {
	tm := NewTestMatch()
	require.True(t, tm.SkipToAim(maxFrames))
	ctx := tm.Game.Context()
	assert.Equal(t, PhaseAimParameters, ctx.Phase)
	assert.Same(t, tm.Game.Level(), ctx.Level)
	assert.Same(t, tm.Game.Scene(), ctx.Scene)
	require.Len(t, ctx.Lights, 2)
	assert.Equal(t, LightAmbient, ctx.Lights[0].Kind)
	assert.Equal(t, geom.Vec3{X: 100, Y: 100}, ctx.Lights[1].Position)
	assert.Equal(t, tm.Game.ActivePlayer().Index, ctx.Active)
}
