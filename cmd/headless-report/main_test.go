package main

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/store"
)

func TestPlayMatch_BotsThrowUpToCap(t *testing.T) {
	tm := game.NewTestMatch(game.WithMatchSeed(7), game.WithLevelSize(9))
	playMatch(tm, 7, 6)

	rs := collectRun(1, 7, tm)
	if rs.throws == 0 || rs.throws > 6 {
		t.Fatalf("expected 1..6 throws, got %d", rs.throws)
	}
	if rs.levels < 1 {
		t.Fatalf("expected at least one generated level, got %d", rs.levels)
	}
	if rs.errors != 0 {
		t.Fatalf("expected no errors, got %d\n%s", rs.errors, tm.Log.Format())
	}
	hits := 0
	for _, n := range rs.hits {
		hits += n
	}
	if hits != rs.throws {
		t.Fatalf("expected every throw to land, got %d hits for %d throws", hits, rs.throws)
	}
}

func TestPrintRun_FormatsStats(t *testing.T) {
	rs := runStats{
		runIndex:        2,
		seed:            42,
		throws:          5,
		hits:            map[string]int{"ground": 3, "player": 2},
		scores:          [2]int{2, 0},
		firstPointThrow: 3,
	}
	var b strings.Builder
	printRun(&b, rs)
	out := b.String()
	for _, want := range []string{"Run 2 (seed=42)", "winner=P1", "ground=3 player=2", "first_point_throw=3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "warning") {
		t.Fatalf("unexpected warning:\n%s", out)
	}
}

func TestPrintAggregate_CountsWins(t *testing.T) {
	all := []runStats{
		{throws: 4, scores: [2]int{1, 0}, hits: map[string]int{"player": 1, "ground": 3}, firstPointThrow: 4},
		{throws: 6, scores: [2]int{0, 2}, hits: map[string]int{"player": 2, "building": 4}, firstPointThrow: 2},
		{throws: 2, scores: [2]int{0, 0}, hits: map[string]int{"ground": 2}, firstPointThrow: -1},
	}
	var b strings.Builder
	printAggregate(&b, all)
	out := b.String()
	if !strings.Contains(out, "wins: P1=1 P2=1 ties=1") {
		t.Fatalf("unexpected wins line:\n%s", out)
	}
	if !strings.Contains(out, "player_hit_rate=25.0%") {
		t.Fatalf("unexpected hit rate:\n%s", out)
	}
	if !strings.Contains(out, "min=2 median=4 max=4 n=2") {
		t.Fatalf("unexpected first point summary:\n%s", out)
	}
}

func TestDescribeInts_Empty(t *testing.T) {
	if got := describeInts(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
}

func TestPrintRecent_ListsStoredMatches(t *testing.T) {
	db, err := store.Open("", zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	tm := game.NewTestMatch(game.WithMatchSeed(3), game.WithLevelSize(9))
	playMatch(tm, 3, 2)
	m, err := store.FromLog(3, "report", tm.Log, tm.Game.Players())
	if err != nil {
		t.Fatalf("from log: %v", err)
	}
	if err := db.Save(&m); err != nil {
		t.Fatalf("save: %v", err)
	}

	recent, err := db.Recent(recentMatches)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	var b strings.Builder
	printRecent(&b, recent)
	out := b.String()
	if !strings.Contains(out, "recent_matches: 1") || !strings.Contains(out, "seed=3 source=report") {
		t.Fatalf("unexpected recent listing:\n%s", out)
	}
	if !strings.Contains(out, "throws=2") {
		t.Fatalf("expected both throws listed:\n%s", out)
	}
}
