package game

import (
	"fmt"
	"strings"
)

// Match log categories.
const (
	CatPhase = "phase"
	CatLevel = "level"
	CatTurn  = "turn"
	CatAim   = "aim"
	CatHit   = "hit"
	CatScore = "score"
	CatError = "error"
)

// MatchLogEntry is one recorded match event.
type MatchLogEntry struct {
	Time     float64 // game clock, seconds
	Player   string  // "P1", "P2", or "--" for global events
	Category string  // phase, level, turn, aim, hit, score, error
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0012.34] P1   hit       building         tile 4,2,6
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%07.2f] %-4s %-9s %-16s %s",
		e.Time, e.Player, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events of a match. It is unbounded and
// machine-readable; tests and the headless report query it.
type MatchLog struct {
	entries []MatchLogEntry
	verbose bool
}

// NewMatchLog creates a MatchLog. If verbose is true, per-frame entries
// are also recorded.
func NewMatchLog(verbose bool) *MatchLog {
	return &MatchLog{verbose: verbose}
}

// Add records a new entry.
func (ml *MatchLog) Add(t float64, player, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Time:     t,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(t float64, player, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(t, player, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Reset drops every entry.
func (ml *MatchLog) Reset() {
	ml.entries = nil
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterPlayer returns entries for a specific player label.
func (ml *MatchLog) FilterPlayer(label string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Player == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTimeRange returns entries within [from, to] inclusive.
func (ml *MatchLog) FilterTimeRange(from, to float64) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Time >= from && e.Time <= to {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	entries := ml.Filter(category, key)
	if len(entries) == 0 {
		return MatchLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the match so far.
func (ml *MatchLog) Summary(players [2]*Player) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary: %d levels, %d throws ---\n",
		ml.CountCategory(CatLevel, "generated"), ml.CountCategory(CatAim, "launch"))
	for _, p := range players {
		throws := 0
		hits := map[string]int{}
		for _, e := range ml.FilterPlayer(p.Label()) {
			switch e.Category {
			case CatAim:
				throws++
			case CatHit:
				hits[e.Key]++
			}
		}
		fmt.Fprintf(&sb, "%s score=%d throws=%d ground=%d building=%d player=%d\n",
			p.Label(), p.Score, throws, hits["ground"], hits["building"], hits["player"])
	}
	if n := ml.CountCategory(CatError, ""); n > 0 {
		fmt.Fprintf(&sb, "Errors: %d\n", n)
	}
	return sb.String()
}
