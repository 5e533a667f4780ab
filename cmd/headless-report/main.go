package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/store"
)

// maxAimFrames bounds how long a run waits for the next throw.
const maxAimFrames = 60 * 60

// recentMatches is how many stored matches the -db summary lists.
const recentMatches = 5

type runStats struct {
	runIndex int
	seed     int64
	throws   int
	hits     map[string]int
	scores   [2]int
	levels   int
	errors   int
	frames   int
	// firstPointThrow is the throw number that scored first, or -1.
	firstPointThrow int
	stalled         bool
}

func main() {
	var (
		runs     int
		throws   int
		seedBase int64
		seedStep int64
		size     int
		wind     bool
		dbPath   string
		copyOut  bool
	)
	flag.IntVar(&runs, "runs", 5, "number of headless matches to run")
	flag.IntVar(&throws, "throws", 40, "throws per match")
	flag.Int64Var(&seedBase, "seed-base", 1, "seed for the first run")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&size, "size", 0, "fixed city size (0 keeps the random size)")
	flag.BoolVar(&wind, "wind", false, "enable wind")
	flag.StringVar(&dbPath, "db", "", "sqlite file to record matches in")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if throws <= 0 {
		fmt.Println("error: -throws must be > 0")
		os.Exit(2)
	}

	var db *store.Store
	if dbPath != "" {
		var err error
		db, err = store.Open(dbPath, zerolog.Nop())
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	var out strings.Builder
	fmt.Fprintf(&out, "=== Headless Match Report ===\n")
	fmt.Fprintf(&out, "runs=%d throws=%d seed_base=%d seed_step=%d size=%d wind=%t\n\n",
		runs, throws, seedBase, seedStep, size, wind)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		opts := []game.MatchOption{game.WithMatchSeed(seed)}
		if size > 0 {
			opts = append(opts, game.WithLevelSize(size))
		}
		if wind {
			opts = append(opts, game.WithWind(1, 10))
		}
		tm := game.NewTestMatch(opts...)
		playMatch(tm, seed, throws)

		rs := collectRun(i+1, seed, tm)
		all = append(all, rs)
		printRun(&out, rs)

		if db != nil {
			m, err := store.FromLog(seed, "report", tm.Log, tm.Game.Players())
			if err == nil {
				err = db.Save(&m)
			}
			if err != nil {
				fmt.Fprintf(&out, "store: run %d not saved: %v\n\n", rs.runIndex, err)
			}
		}
	}
	printAggregate(&out, all)

	if db != nil {
		if totals, err := db.Totals(); err == nil {
			fmt.Fprintf(&out, "db_totals: matches=%d throws=%d by_result=%s\n",
				totals.Matches, totals.Throws, joinCounts64(totals.ByResult))
		}
		if recent, err := db.Recent(recentMatches); err == nil {
			printRecent(&out, recent)
		}
	}

	fmt.Print(out.String())
	if copyOut {
		if err := clipboard.WriteAll(out.String()); err != nil {
			fmt.Printf("clipboard: %v\n", err)
		}
	}
}

// playMatch lets two bots trade throws until the cap is reached or the
// game stops waiting for aim.
func playMatch(tm *game.TestMatch, seed int64, throws int) {
	bot := game.NewBot(rand.New(rand.NewSource(seed ^ 0x5eed))) // #nosec G404 -- deterministic report bot
	for n := 0; n < throws; n++ {
		if !tm.SkipToAim(maxAimFrames) {
			return
		}
		if !bot.Play(tm.Game) {
			return
		}
	}
	tm.RunUntil(func(tm *game.TestMatch) bool {
		return tm.Game.Phase() == game.PhaseAimParameters
	}, maxAimFrames)
	tm.Game.StopGame()
}

func collectRun(runIndex int, seed int64, tm *game.TestMatch) runStats {
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		throws:          tm.Log.CountCategory(game.CatAim, "launch"),
		hits:            map[string]int{},
		levels:          tm.Log.CountCategory(game.CatLevel, "generated"),
		errors:          tm.Log.CountCategory(game.CatError, ""),
		frames:          tm.Frames,
		firstPointThrow: -1,
	}
	for i, p := range tm.Game.Players() {
		if p != nil {
			rs.scores[i] = p.Score
		}
	}

	launches := 0
	for _, e := range tm.Log.Entries() {
		switch e.Category {
		case game.CatAim:
			if e.Key == "launch" {
				launches++
			}
		case game.CatHit:
			rs.hits[e.Key]++
		case game.CatScore:
			if rs.firstPointThrow < 0 {
				rs.firstPointThrow = launches
			}
		}
	}
	rs.stalled = rs.throws > 0 && rs.hits[game.HitPlayer.String()] == 0 && rs.hits[game.HitBuilding.String()] == 0
	return rs
}

func printRun(out *strings.Builder, rs runStats) {
	fmt.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(out, "score: P1=%d P2=%d winner=%s\n", rs.scores[0], rs.scores[1], winnerLabel(rs.scores))
	fmt.Fprintf(out, "throws=%d levels=%d frames=%d errors=%d first_point_throw=%d\n",
		rs.throws, rs.levels, rs.frames, rs.errors, rs.firstPointThrow)
	fmt.Fprintf(out, "hits: %s\n", joinCounts(rs.hits))
	if rs.stalled {
		fmt.Fprintf(out, "warning: no throw reached a building or player\n")
	}
	fmt.Fprintln(out)
}

func printAggregate(out *strings.Builder, all []runStats) {
	totalThrows := 0
	totalLevels := 0
	totalErrors := 0
	wins := [3]int{}
	hits := map[string]int{}
	firstPoints := make([]int, 0, len(all))

	for _, rs := range all {
		totalThrows += rs.throws
		totalLevels += rs.levels
		totalErrors += rs.errors
		switch {
		case rs.scores[0] > rs.scores[1]:
			wins[1]++
		case rs.scores[1] > rs.scores[0]:
			wins[2]++
		default:
			wins[0]++
		}
		for k, n := range rs.hits {
			hits[k] += n
		}
		if rs.firstPointThrow >= 0 {
			firstPoints = append(firstPoints, rs.firstPointThrow)
		}
	}

	fmt.Fprintf(out, "=== Aggregate (%d runs) ===\n", len(all))
	fmt.Fprintf(out, "wins: P1=%d P2=%d ties=%d\n", wins[1], wins[2], wins[0])
	fmt.Fprintf(out, "throws=%d levels=%d errors=%d\n", totalThrows, totalLevels, totalErrors)
	fmt.Fprintf(out, "hits: %s\n", joinCounts(hits))
	if totalThrows > 0 {
		fmt.Fprintf(out, "player_hit_rate=%.1f%%\n", 100*float64(hits[game.HitPlayer.String()])/float64(totalThrows))
	}
	fmt.Fprintf(out, "first_point_throw: %s\n", describeInts(firstPoints))
}

// printRecent lists stored matches newest first, one line each.
func printRecent(out *strings.Builder, matches []store.Match) {
	fmt.Fprintf(out, "recent_matches: %d\n", len(matches))
	for _, m := range matches {
		hits := map[string]int{}
		for _, th := range m.Throws {
			if th.Result != "" {
				hits[th.Result]++
			}
		}
		fmt.Fprintf(out, "  #%d seed=%d source=%s score=%d-%d throws=%d hits: %s\n",
			m.ID, m.Seed, m.Source, m.Score1, m.Score2, len(m.Throws), joinCounts(hits))
	}
}

func winnerLabel(scores [2]int) string {
	switch {
	case scores[0] > scores[1]:
		return "P1"
	case scores[1] > scores[0]:
		return "P2"
	default:
		return "tie"
	}
}

// describeInts summarises a sample as min/median/max.
func describeInts(xs []int) string {
	if len(xs) == 0 {
		return "n/a"
	}
	s := append([]int(nil), xs...)
	sort.Ints(s)
	return fmt.Sprintf("min=%d median=%d max=%d n=%d", s[0], s[len(s)/2], s[len(s)-1], len(s))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}

func joinCounts64(m map[string]int64) string {
	c := make(map[string]int, len(m))
	for k, v := range m {
		c[k] = int(v)
	}
	return joinCounts(c)
}
