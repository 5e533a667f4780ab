package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Garsondee/Gorillas-3D/internal/game"
)

// Models lists every table the store migrates.
var Models = []interface{}{
	&Match{},
	&Throw{},
}

// Match is one finished headless or interactive match.
type Match struct {
	gorm.Model
	Seed     int64   `json:"seed" gorm:"index"`
	Source   string  `json:"source" gorm:"size:32"` // "report", "window", "term"
	Levels   int     `json:"levels"`
	Score1   int     `json:"score1"`
	Score2   int     `json:"score2"`
	Errors   int     `json:"errors"`
	Duration float64 `json:"duration"` // game clock seconds
	Throws   []Throw `json:"throws"`
}

// Throw is one launch and where it landed.
type Throw struct {
	gorm.Model
	MatchID   uint    `json:"matchId" gorm:"index"`
	Player    string  `json:"player" gorm:"size:4"`
	Time      float64 `json:"time"`
	Speed     int     `json:"speed"`
	Heading   int     `json:"heading"`
	Elevation int     `json:"elevation"`
	Result    string  `json:"result" gorm:"size:16"` // ground, building, player, or empty if the match ended mid-flight
}

// Winner returns 1 or 2 for the leading player, 0 on a tie.
func (m Match) Winner() int {
	switch {
	case m.Score1 > m.Score2:
		return 1
	case m.Score2 > m.Score1:
		return 2
	default:
		return 0
	}
}

// FromLog converts a match log into a Match row with its throws.
func FromLog(seed int64, source string, log *game.MatchLog, players [2]*game.Player) (Match, error) {
	m := Match{
		Seed:   seed,
		Source: source,
		Levels: log.CountCategory(game.CatLevel, "generated"),
		Errors: log.CountCategory(game.CatError, ""),
	}
	if players[0] != nil {
		m.Score1 = players[0].Score
	}
	if players[1] != nil {
		m.Score2 = players[1].Score
	}

	var pending *Throw
	for _, e := range log.Entries() {
		if e.Time > m.Duration {
			m.Duration = e.Time
		}
		switch e.Category {
		case game.CatAim:
			if e.Key != "launch" {
				continue
			}
			th := Throw{Player: e.Player, Time: e.Time}
			if _, err := fmt.Sscanf(e.Value, "speed=%d heading=%d elevation=%d", &th.Speed, &th.Heading, &th.Elevation); err != nil {
				return Match{}, fmt.Errorf("parse launch %q: %w", e.Value, err)
			}
			m.Throws = append(m.Throws, th)
			pending = &m.Throws[len(m.Throws)-1]
		case game.CatHit:
			if pending != nil && strings.EqualFold(pending.Player, e.Player) {
				pending.Result = e.Key
				pending = nil
			}
		}
	}
	return m, nil
}
