package game

import (
	"math/rand"
)

// FrameStep is the fixed frame time the harness advances by.
const FrameStep = 1.0 / 60

// TestMatch is a headless match harness used by tests and the headless
// report. It drives a real Game with recording ports, deterministic
// seeding and a structured MatchLog.
type TestMatch struct {
	Game   *Game
	HUD    *HUDState
	Sound  *SoundRecorder
	Log    *MatchLog
	Frames int

	tuning  Tuning
	seed    int64
	catalog AssetCatalog
}

// matchOptionKind controls the pass in which an option is applied.
type matchOptionKind int

const (
	matchOptTuning matchOptionKind = iota // edits to the balance, applied first
	matchOptInfra                         // seed, log, catalog
)

// MatchOption is a builder function applied to a TestMatch during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*TestMatch)
}

// WithMatchSeed sets the RNG seed for deterministic runs.
func WithMatchSeed(seed int64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.seed = seed
	}}
}

// WithLevelSize fixes the city footprint.
func WithLevelSize(size int) MatchOption {
	return MatchOption{matchOptTuning, func(tm *TestMatch) {
		tm.tuning.Level.RandomSize = false
		tm.tuning.Level.Size = size
	}}
}

// WithWind turns wind on with speeds in [lo,hi].
func WithWind(lo, hi int) MatchOption {
	return MatchOption{matchOptTuning, func(tm *TestMatch) {
		tm.tuning.Wind = WindTuning{Enabled: true, MinSpeed: lo, MaxSpeed: hi}
	}}
}

// WithTune applies an arbitrary edit to the tuning.
func WithTune(fn func(*Tuning)) MatchOption {
	return MatchOption{matchOptTuning, func(tm *TestMatch) {
		fn(&tm.tuning)
	}}
}

// WithVerbose enables per-frame verbose logging.
func WithVerbose(v bool) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.Log = NewMatchLog(v)
	}}
}

// WithCatalog replaces the asset catalog.
func WithCatalog(c AssetCatalog) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.catalog = c
	}}
}

// NewTestMatch constructs a TestMatch in two ordered passes (tuning, then
// infrastructure) and leaves the game on the main menu.
func NewTestMatch(opts ...MatchOption) *TestMatch {
	tm := &TestMatch{
		HUD:    NewHUDState(),
		Sound:  &SoundRecorder{},
		Log:    NewMatchLog(false),
		tuning: DefaultTuning(),
		seed:   1,
	}
	for _, o := range opts {
		if o.kind == matchOptTuning {
			o.fn(tm)
		}
	}
	for _, o := range opts {
		if o.kind == matchOptInfra {
			o.fn(tm)
		}
	}
	gameOpts := []Option{
		WithTuning(tm.tuning),
		WithRNG(rand.New(rand.NewSource(tm.seed))), // #nosec G404 -- test harness
		WithHUD(tm.HUD),
		WithSound(tm.Sound),
		WithMatchLog(tm.Log),
	}
	if tm.catalog != nil {
		gameOpts = append(gameOpts, WithAssets(tm.catalog))
	}
	tm.Game = New(gameOpts...)
	return tm
}

// Start presses Play on the main menu.
func (tm *TestMatch) Start() bool {
	return tm.Game.Select(MenuPlay)
}

// Step advances one frame.
func (tm *TestMatch) Step() {
	tm.Frames++
	tm.Game.Update(FrameStep)
	tm.Log.AddVerbose(tm.Game.Clock(), "--", CatPhase, "frame", tm.Game.Phase().String(), float64(tm.Frames))
}

// RunFor advances by at least seconds of game time.
func (tm *TestMatch) RunFor(seconds float64) {
	n := int(seconds/FrameStep + 0.5)
	for i := 0; i < n; i++ {
		tm.Step()
	}
}

// RunUntil advances up to maxFrames, stopping early once predicate holds.
// It returns the frame count at which it held, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		tm.Step()
		if predicate(tm) {
			return tm.Frames
		}
	}
	return -1
}

// RunUntilPhase advances until the game enters p, up to maxFrames.
func (tm *TestMatch) RunUntilPhase(p Phase, maxFrames int) int {
	if tm.Game.Phase() == p {
		return tm.Frames
	}
	return tm.RunUntil(func(tm *TestMatch) bool { return tm.Game.Phase() == p }, maxFrames)
}

// SkipToAim starts a match if needed and runs until a player is aiming.
// It reports whether aiming was reached within maxFrames.
func (tm *TestMatch) SkipToAim(maxFrames int) bool {
	if !tm.Game.Phase().InGame() {
		tm.Start()
	}
	return tm.RunUntilPhase(PhaseAimParameters, maxFrames) >= 0
}

// Fire aims and launches for the active player.
func (tm *TestMatch) Fire(speed, heading, elevation int) bool {
	if !tm.Game.Aim(speed, heading, elevation) {
		return false
	}
	return tm.Game.Launch()
}

// SoundRecorder is a SoundPlayer that remembers what was played.
type SoundRecorder struct {
	Played  []string
	Stopped int
}

func (r *SoundRecorder) Play(name string, _ bool) {
	r.Played = append(r.Played, name)
}

func (r *SoundRecorder) StopAll() {
	r.Stopped++
}

// Count returns how many times name was played.
func (r *SoundRecorder) Count(name string) int {
	n := 0
	for _, p := range r.Played {
		if p == name {
			n++
		}
	}
	return n
}
