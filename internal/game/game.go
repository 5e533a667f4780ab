package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// revealMinHeight is the camera height at the start of the reveal orbit.
const revealMinHeight = 3

// Game is the match state machine. It owns the scene graph and drives the
// ports; front ends call Update once per frame and forward input through
// HandleInput and Select. Nothing here is safe for concurrent use.
type Game struct {
	tuning Tuning
	rng    RNG
	logger zerolog.Logger
	sound  SoundPlayer
	hud    HUD
	assets AssetCatalog
	events *MatchLog

	phase      Phase
	clock      float64 // seconds since New
	phaseStart float64
	dt         float64 // last frame step

	players  [2]*Player
	active   *Player
	inactive *Player
	level    *Level
	wind     Wind
	turns    int
	levels   int // levels started this process

	world     assetSet
	loaded    bool
	root      *Node
	skybox    *Node
	groundMap *Node
	cityMap   *Node
	gorillas  *Node
	banana    *Node
	explosion *Explosion
	lights    []Light

	roaming   Camera
	activeCam *Camera

	// Player selection.
	selStart, selStop Camera
	selDuration       float64
	blink             int

	// Flight and its aftermath.
	traj        Trajectory
	flightSteps int
	impact      HitResult
	lastProj    geom.Vec3
	collapsing  *Building
	hitFloor    int

	dragging bool
	quit     bool
	lastErr  error
}

// Option configures a Game at construction.
type Option func(*Game)

// WithTuning replaces the default balance.
func WithTuning(tn Tuning) Option {
	return func(g *Game) { g.tuning = tn }
}

// WithSeed makes level generation and particle bursts reproducible.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithRNG injects a random source.
func WithRNG(rng RNG) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger routes diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSound sets the effect player.
func WithSound(s SoundPlayer) Option {
	return func(g *Game) { g.sound = s }
}

// WithHUD sets the UI sink.
func WithHUD(h HUD) Option {
	return func(g *Game) { g.hud = h }
}

// WithAssets sets the content catalog.
func WithAssets(a AssetCatalog) Option {
	return func(g *Game) { g.assets = a }
}

// WithMatchLog records match events into ml.
func WithMatchLog(ml *MatchLog) Option {
	return func(g *Game) { g.events = ml }
}

// New creates a game sitting on the main menu. Call Load before the first
// match, or let the first match load lazily.
func New(opts ...Option) *Game {
	g := &Game{
		tuning: DefaultTuning(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay randomness
		logger: zerolog.Nop(),
		sound:  NopSound{},
		hud:    NewHUDState(),
		blink:  -1,
	}
	for _, o := range opts {
		o(g)
	}
	if g.assets == nil {
		g.assets = NewMemoryCatalog(g.tuning.Level.Skins)
	}
	if g.events == nil {
		g.events = NewMatchLog(false)
	}
	for i := range g.players {
		g.players[i] = NewPlayer(i, g.tuning.Launch)
	}
	g.inactive, g.active = g.players[0], g.players[1]
	g.activeCam = &g.roaming
	g.lights = defaultLights()
	g.hud.ShowScreen(ScreenMainMenu)
	return g
}

// Update advances the clock by dt seconds and runs the current phase.
func (g *Game) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	g.dt = dt
	g.clock += dt
	elapsed := g.clock - g.phaseStart

	switch g.phase {
	case PhaseLevelGeneration:
		g.updateReveal(elapsed)
	case PhasePlayerSelection:
		g.updateSelection(elapsed)
	case PhaseProjectileFlight:
		g.updateFlight(elapsed)
	case PhaseExplosion:
		g.updateExplosion(elapsed)
	case PhaseBuildingCollapse:
		g.updateCollapse(elapsed)
	}
}

func (g *Game) setPhase(p Phase) {
	from := g.phase
	g.phase = p
	g.phaseStart = g.clock
	g.logger.Debug().Str("from", from.String()).Str("to", p.String()).Int("turn", g.turns).Msg("phase")
	g.events.Add(g.clock, "--", CatPhase, "enter", p.String(), float64(p))

	switch p {
	case PhaseMainMenu:
		g.hud.ShowScreen(ScreenMainMenu)
	case PhaseDialogControls:
		g.hud.ShowScreen(ScreenControls)
	case PhaseDialogAbout:
		g.hud.ShowScreen(ScreenAbout)
	case PhaseNewGame:
		g.hud.ShowScreen(ScreenGameHUD)
		g.startGame()
	}
}

// startGame resets the scores and raises the first city. Player 0 throws
// first because every turn flips the active player.
func (g *Game) startGame() {
	if err := g.Load(); err != nil {
		g.abort(err)
		return
	}
	for _, p := range g.players {
		p.Score = 0
	}
	g.updateStats()
	g.inactive, g.active = g.players[0], g.players[1]
	g.root.Visible = true
	g.events.Add(g.clock, "--", CatLevel, "match_start", "", 0)
	g.startNextLevel()
}

func (g *Game) startNextLevel() {
	g.cityMap.RemoveAllChildren()
	g.groundMap.RemoveAllChildren()

	level, wind, err := GenerateLevel(g.rng, g.tuning, g.players)
	if err != nil {
		g.abort(fmt.Errorf("generate level: %w", err))
		return
	}
	g.level, g.wind = level, wind
	g.levels++
	g.buildLevelNodes()

	g.activeCam = &g.roaming
	g.banana.Visible = false
	g.explosion.Node.Visible = false
	g.dragging = false
	g.blink = -1
	g.turns = 0
	for _, p := range g.players {
		g.updatePlayer(p)
	}

	g.logger.Info().
		Int("level", g.levels).
		Int("sizeX", level.SizeX).
		Int("sizeZ", level.SizeZ).
		Int("sizeY", level.SizeY).
		Int("windAngle", wind.Angle).
		Float64("windSpeed", wind.Speed).
		Msg("level generated")
	g.events.Add(g.clock, "--", CatLevel, "generated",
		fmt.Sprintf("%dx%dx%d wind %d°@%.0f", level.SizeX, level.SizeY, level.SizeZ, wind.Angle, wind.Speed),
		float64(g.levels))

	g.sound.Play(SoundRising, false)
	g.setPhase(PhaseLevelGeneration)
}

// updateReveal raises the city out of the ground while the camera orbits.
func (g *Game) updateReveal(elapsed float64) {
	u := geom.Clamp01(elapsed / g.tuning.Timing.Reveal)
	sizeY := float64(g.level.SizeY)

	g.roaming = RevealCamera(RevealParams{
		Player0:   g.players[0].Camera.Position,
		Player1:   g.players[1].Camera.Position,
		SizeX:     g.level.SizeX,
		SizeY:     g.level.SizeY,
		MinHeight: revealMinHeight,
	}, u)

	rise := geom.Lerp(-sizeY, 0, u)
	g.cityMap.Transform.Translation.Y = rise
	g.gorillas.Transform.Translation.Y = rise

	currentHeight := int((1 - u) * (sizeY - 1))
	for _, b := range g.level.Buildings() {
		for i, f := range b.LiveFloors() {
			f.Node.Visible = i >= currentHeight
		}
	}
	for _, p := range g.players {
		p.Node.Visible = p.Position.Y >= currentHeight
	}

	if u >= 1 {
		g.startNextTurn()
	}
}

// startNextTurn hands the banana to the other player and starts the camera
// flight toward it. The first selections of a level are the introduction:
// the camera backs off behind the player, which then blinks.
func (g *Game) startNextTurn() {
	intro := g.tuning.Timing.IntroTurns

	g.selStart = g.roaming
	if g.turns >= intro {
		g.selStart = g.active.Camera
	}
	g.selStop = g.inactive.Camera
	if g.turns < intro-1 {
		pos := g.inactive.Camera.Position.Sub(g.inactive.LaunchDirection).Add(geom.UnitY.Scale(2))
		g.selStop = Camera{Position: pos, LookAt: g.inactive.Camera.Position}
	}

	if g.turns == 0 {
		g.selDuration = g.tuning.Timing.Selection * 0.5
		g.sound.Play(SoundTransitionShort, false)
	} else {
		g.selDuration = g.tuning.Timing.Selection
		g.sound.Play(SoundTransitionLong, false)
	}

	g.turns++
	g.active, g.inactive = g.inactive, g.active
	g.hud.ShowPlayerText(0, true)
	g.hud.ShowPlayerText(1, true)
	g.hud.SetActivePlayer(-1)
	g.activeCam = &g.roaming
	g.banana.Visible = false
	g.dragging = false
	g.blink = -1

	g.events.Add(g.clock, g.active.Label(), CatTurn, "start", fmt.Sprintf("turn %d", g.turns), float64(g.turns))
	g.setPhase(PhasePlayerSelection)
}

func (g *Game) introTurn() bool {
	return g.turns < g.tuning.Timing.IntroTurns
}

func (g *Game) updateSelection(elapsed float64) {
	u := 1.0
	if g.selDuration > 0 {
		u = geom.Clamp01(elapsed / g.selDuration)
	}
	g.roaming = SelectionCamera(SelectionPath{
		Start:       g.selStart,
		Stop:        g.selStop,
		ActiveIndex: g.active.Index,
		SizeY:       g.level.SizeY,
		Rise:        g.introTurn() || g.tuning.Camera.RiseEveryTurn,
	}, u)

	if !g.introTurn() {
		for _, p := range g.players {
			d := geom.Distance3D(p.Node.Transform.Translation, g.roaming.Position)
			p.Node.Visible = d >= g.tuning.Camera.HideGorillaRadius
		}
		if u >= 1 {
			g.sound.Play(SoundBeep, false)
			g.updatePlayer(g.active)
			g.updateStats()
			g.activeCam = &g.active.Camera
			g.setPhase(PhaseAimParameters)
		}
		return
	}

	if u < 1 {
		return
	}
	tm := g.tuning.Timing
	idx := 0
	if tm.BlinkDuration > 0 {
		idx = int((elapsed - g.selDuration) / tm.BlinkDuration)
	}
	if tm.BlinkDuration <= 0 || idx >= tm.BlinkCount {
		g.active.Node.Visible = true
		g.startNextTurn()
		return
	}
	if idx == g.blink {
		return
	}
	g.blink = idx
	if idx%2 == 0 {
		g.hud.SetActivePlayer(g.active.Index)
		g.hud.ShowPlayerText(g.active.Index, true)
		g.sound.Play(SoundBeep, false)
		g.active.Node.Visible = true
	} else {
		g.hud.SetActivePlayer(-1)
		g.hud.ShowPlayerText(g.active.Index, false)
		g.active.Node.Visible = false
	}
}

// Aim sets the active player's throw while aiming. It reports whether the
// game was waiting for a throw.
func (g *Game) Aim(speed, heading, elevation int) bool {
	if g.phase != PhaseAimParameters {
		return false
	}
	p := g.active
	p.SetLaunchSpeed(speed)
	p.SetLaunchHeading(heading)
	p.SetLaunchElevation(elevation)
	g.updatePlayer(p)
	return true
}

// Launch throws the banana with the active player's current parameters.
// The whole flight is resolved up front; the flight phase only replays it.
func (g *Game) Launch() bool {
	if g.phase != PhaseAimParameters {
		return false
	}
	p := g.active
	tr := NewTrajectory(p, g.wind, g.tuning.Physics)
	steps, hit, err := FlightTime(tr, func(pos geom.Vec3) HitResult {
		return g.level.HitTest(pos, g.inactive)
	})
	if err != nil {
		g.abort(fmt.Errorf("launch by %s: %w", p.Label(), err))
		return false
	}
	g.traj, g.flightSteps, g.impact = tr, steps, hit
	g.lastProj = tr.Origin
	g.roaming = p.Camera
	g.activeCam = &g.roaming
	g.banana.Visible = true
	g.banana.Transform.Translation = tr.Origin
	g.dragging = false

	g.events.Add(g.clock, p.Label(), CatAim, "launch",
		fmt.Sprintf("speed=%d heading=%d elevation=%d", p.LaunchSpeed(), p.LaunchHeading(), p.LaunchElevation()),
		tr.StepTime(steps))
	g.sound.Play(SoundThrow, false)
	g.setPhase(PhaseProjectileFlight)
	return true
}

func (g *Game) updateFlight(elapsed float64) {
	impactAt := g.traj.StepTime(g.flightSteps)
	t := math.Min(elapsed, impactAt)
	pos := g.traj.Position(t)

	g.banana.Transform.Translation = pos
	spin := g.banana.Transform.Rotation.X + 20*g.traj.Speed*g.dt
	g.banana.Transform.Rotation.X = geom.NormalizeAngleF(spin)

	if elapsed >= impactAt {
		g.resolveImpact(pos)
		return
	}
	if camPos, ok := ChaseCamera(g.lastProj, pos, impactAt-t, g.tuning.Camera); ok {
		g.roaming.Position = camPos
	}
	g.roaming.LookAt = pos
	g.lastProj = pos
}

// resolveImpact applies the hit found at launch.
func (g *Game) resolveImpact(pos geom.Vec3) {
	hit := g.impact
	origin := pos
	switch hit.Kind {
	case HitBuilding:
		if _, err := hit.Building.DestroyFloor(hit.Tile.Y); err != nil {
			g.abort(fmt.Errorf("resolve impact: %w", err))
			return
		}
		g.collapsing, g.hitFloor = hit.Building, hit.Tile.Y
		origin = g.level.TileToScene(hit.Tile)
	case HitPlayer:
		g.active.Score++
		g.updateStats()
		hit.Player.Node.Visible = false
		origin = g.level.TileToScene(hit.Tile)
	}
	g.banana.Visible = false
	g.explosion.Start(g.rng, origin, hit.Kind == HitGround, g.tuning.Explosion)
	g.sound.Play(SoundExplosion, false)

	g.logger.Info().
		Str("thrower", g.active.Label()).
		Str("hit", hit.Kind.String()).
		Int("x", hit.Tile.X).Int("y", hit.Tile.Y).Int("z", hit.Tile.Z).
		Msg("impact")
	g.events.Add(g.clock, g.active.Label(), CatHit, hit.Kind.String(),
		fmt.Sprintf("tile %d,%d,%d", hit.Tile.X, hit.Tile.Y, hit.Tile.Z), float64(hit.Kind))
	if hit.Kind == HitPlayer {
		g.events.Add(g.clock, g.active.Label(), CatScore, "point",
			fmt.Sprintf("%d-%d", g.players[0].Score, g.players[1].Score), float64(g.active.Score))
	}
	g.setPhase(PhaseExplosion)
}

func (g *Game) updateExplosion(elapsed float64) {
	tm := g.tuning.Timing
	u := 1.0
	if tm.Explosion > 0 {
		u = geom.Clamp01(elapsed / tm.Explosion)
	}
	g.explosion.Update(u)

	delay := tm.ExtraDelay
	if g.impact.Kind == HitBuilding {
		delay = 0
	}
	if elapsed < tm.Explosion+delay {
		return
	}
	switch g.impact.Kind {
	case HitBuilding:
		g.sound.Play(SoundCollapse, false)
		g.setPhase(PhaseBuildingCollapse)
	case HitPlayer:
		g.startNextLevel()
	default:
		g.startNextTurn()
	}
}

// updateCollapse slides the floors above the hole down by one storey. An
// occupant rides down with them.
func (g *Game) updateCollapse(elapsed float64) {
	tm := g.tuning.Timing
	b := g.collapsing
	u := 1.0
	if tm.Collapse > 0 {
		u = geom.Clamp01(elapsed / tm.Collapse)
	}
	offset := 1 - geom.SineInFactor(u)

	for i, f := range b.LiveFloors() {
		if i >= g.hitFloor {
			f.Node.Transform.Translation.Y = offset + float64(i)
		}
	}
	if occ := b.Occupant; occ != nil {
		pos := occ.Node.Transform.Translation
		pos.Y = g.level.Boundary.Y + offset + float64(b.Height) + 0.5
		occ.Node.Transform.Translation = pos
		if occ == g.active {
			g.roaming = Camera{Position: pos, LookAt: pos.Add(occ.LaunchDirection)}
		}
	}

	if elapsed < tm.Collapse+tm.ExtraDelay {
		return
	}
	if occ := b.Occupant; occ != nil {
		g.updatePlayer(occ)
	}
	g.collapsing = nil
	g.banana.Visible = false
	g.startNextTurn()
}

// updatePlayer re-seats p on its roof and derives its aim vectors and
// camera. Once the introduction is over the active player also gets the
// banana in hand and the HUD readout.
func (g *Game) updatePlayer(p *Player) {
	if g.level == nil {
		return
	}
	if b := g.level.BuildingAt(p.Position.X, p.Position.Z); b != nil {
		p.Position.Y = b.Height
	}
	pos := g.level.TileToScene(p.Position)
	p.Node.Transform.Translation = pos
	p.Node.Transform.Rotation = geom.Vec3{Y: float64(p.LaunchHeading())}

	dir := geom.RotateVectorBy(geom.UnitZ, p.Rotation())
	p.LaunchDirection = dir
	p.Camera = Camera{Position: pos, LookAt: pos.Add(dir)}
	p.LaunchPosition = pos.Add(dir.Scale(g.tuning.Launch.CameraDistance))

	if !g.introTurn() && p == g.active {
		g.banana.Transform.Translation = p.LaunchPosition
		g.banana.Visible = true
		g.hud.SetActivePlayer(p.Index)
		g.hud.SetThrowParams(p.LaunchSpeed(), p.LaunchHeading(), p.LaunchElevation())
	}
}

func (g *Game) updateStats() {
	for _, p := range g.players {
		g.hud.SetPlayerScore(p.Index, p.Score)
	}
}

// StopGame abandons the match and returns to the main menu.
func (g *Game) StopGame() {
	if !g.phase.InGame() {
		return
	}
	g.sound.StopAll()
	if g.root != nil {
		g.root.Visible = false
	}
	g.dragging = false
	g.events.Add(g.clock, "--", CatLevel, "match_stop", "", 0)
	g.setPhase(PhaseMainMenu)
}

// abort records err and drops back to the main menu.
func (g *Game) abort(err error) {
	g.lastErr = err
	g.logger.Error().Err(err).Str("phase", g.phase.String()).Msg("match aborted")
	g.events.Add(g.clock, "--", CatError, "abort", err.Error(), 0)
	g.sound.StopAll()
	if g.root != nil {
		g.root.Visible = false
	}
	g.dragging = false
	g.setPhase(PhaseMainMenu)
}

// Quit asks the front end to close. The Exit menu item sets it.
func (g *Game) Quit() { g.quit = true }

// Quitting reports whether Exit was chosen.
func (g *Game) Quitting() bool { return g.quit }

// LastError returns the error behind the most recent abort, if any.
func (g *Game) LastError() error { return g.lastErr }

func (g *Game) Phase() Phase          { return g.phase }
func (g *Game) Turns() int            { return g.turns }
func (g *Game) Levels() int           { return g.levels }
func (g *Game) Level() *Level         { return g.level }
func (g *Game) Wind() Wind            { return g.wind }
func (g *Game) Players() [2]*Player   { return g.players }
func (g *Game) ActivePlayer() *Player { return g.active }
func (g *Game) Tuning() Tuning        { return g.tuning }
func (g *Game) MatchLog() *MatchLog   { return g.events }
func (g *Game) Scene() *Node          { return g.root }
func (g *Game) Projectile() *Node     { return g.banana }
func (g *Game) Explosion() *Explosion { return g.explosion }
func (g *Game) Dragging() bool        { return g.dragging }
func (g *Game) Clock() float64        { return g.clock }

// Elapsed is the time spent in the current phase.
func (g *Game) Elapsed() float64 { return g.clock - g.phaseStart }

// Camera is the viewpoint renderers should use this frame.
func (g *Game) Camera() Camera { return *g.activeCam }
