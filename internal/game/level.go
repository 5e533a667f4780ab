package game

import (
	"errors"
	"fmt"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// ErrPlacementExhausted is returned when no pair of player lots satisfying
// the separation rule was found within the attempt budget.
var ErrPlacementExhausted = errors.New("player placement attempts exhausted")

// RNG is the randomness the generator needs. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// Level is the city of one round. It is thrown away when the next level
// starts.
type Level struct {
	SizeX, SizeY, SizeZ int
	Boundary            geom.Vec3 // scene offset of tile (0,0,0)'s corner

	buildings []*Building        // lot order: X then Z
	lots      map[Tile]*Building // keyed by Tile.Lot()
	Ground    []GroundTile
}

// Wind is drawn once per level.
type Wind struct {
	Angle     int
	Speed     float64
	Direction geom.Vec3
}

// newLevel sizes an empty level and centres it on the scene origin.
func newLevel(sizeX, sizeZ int) *Level {
	if sizeX%2 == 0 {
		sizeX++
	}
	if sizeZ%2 == 0 {
		sizeZ++
	}
	return &Level{
		SizeX:    sizeX,
		SizeZ:    sizeZ,
		Boundary: geom.Vec3{X: -0.5 * float64(sizeX), Z: -0.5 * float64(sizeZ)},
		lots:     make(map[Tile]*Building),
	}
}

// Buildings returns every building in lot order.
func (l *Level) Buildings() []*Building { return l.buildings }

// BuildingAt returns the building on lot (x,z), or nil.
func (l *Level) BuildingAt(x, z int) *Building {
	return l.lots[Tile{X: x, Z: z}]
}

func (l *Level) addBuilding(b *Building) {
	l.buildings = append(l.buildings, b)
	l.lots[b.Lot] = b
	if b.Height > l.SizeY {
		l.SizeY = b.Height
	}
}

// GenerateLevel builds a new city for the two players: map size, player
// lots and rooftop heights, opening headings, buildings and wind. Player
// heights are drawn before any building height so the cap near each player
// is always known. On return each player sits on its building's live roof.
func GenerateLevel(rng RNG, tn Tuning, players [2]*Player) (*Level, Wind, error) {
	lt := tn.Level
	sizeX, sizeZ := lt.Size, lt.Size
	if lt.RandomSize {
		sizeX = randRange(rng, lt.MinSize, lt.MaxSize+1)
		sizeZ = randRange(rng, lt.MinSize, lt.MaxSize+1)
	}
	l := newLevel(sizeX, sizeZ)

	if err := l.placePlayers(rng, lt, players); err != nil {
		return nil, Wind{}, err
	}

	for _, p := range players {
		p.Position.Y = randRange(rng, lt.MinHeight, lt.MaxHeight+1)
		p.resetLaunch()
	}
	l.orientPlayers(rng, lt, players)

	for x := -BorderSize; x < l.SizeX+BorderSize; x++ {
		for z := -BorderSize; z < l.SizeZ+BorderSize; z++ {
			info := l.Classify(x, z)
			if info.Kind != TileBuilding {
				l.Ground = append(l.Ground, GroundTile{X: x, Z: z, Info: info})
				continue
			}
			maxHeight := lt.MaxHeight
			for _, p := range players {
				if geom.Distance2D(float64(x), float64(z), float64(p.Position.X), float64(p.Position.Z)) < lt.NearPlayerRadius {
					maxHeight = min(maxHeight, p.Position.Y)
				}
			}
			height := randRange(rng, lt.MinHeight, maxHeight)
			skin := rng.Intn(max(lt.Skins, 1))
			l.addBuilding(newBuilding(Tile{X: x, Z: z}, skin, height))
		}
	}

	for _, p := range players {
		b := l.BuildingAt(p.Position.X, p.Position.Z)
		if b == nil {
			return nil, Wind{}, fmt.Errorf("player %s on lot %d,%d has no building", p.Label(), p.Position.X, p.Position.Z)
		}
		b.Occupant = p
		p.Position.Y = b.Height
	}

	return l, drawWind(rng, tn.Wind), nil
}

// placePlayers picks two lots near the map edges that are far enough apart.
func (l *Level) placePlayers(rng RNG, lt LevelTuning, players [2]*Player) error {
	xs := edgeCoords(l.SizeX, lt.EdgeBand)
	zs := edgeCoords(l.SizeZ, lt.EdgeBand)
	minDistance := lt.MinPlayerDistance * float64(max(l.SizeX, l.SizeZ))

	for attempt := 0; attempt < lt.MaxPlacementAttempts; attempt++ {
		for _, p := range players {
			p.Position = Tile{X: xs[rng.Intn(len(xs))], Z: zs[rng.Intn(len(zs))]}
		}
		a, b := players[0].Position, players[1].Position
		if geom.Distance2D(float64(a.X), float64(a.Z), float64(b.X), float64(b.Z)) >= minDistance {
			return nil
		}
	}
	return fmt.Errorf("level %dx%d after %d attempts: %w", l.SizeX, l.SizeZ, lt.MaxPlacementAttempts, ErrPlacementExhausted)
}

// edgeCoords lists the even coordinates within band tiles of either edge.
func edgeCoords(size, band int) []int {
	var out []int
	for c := 0; c < size; c += 2 {
		if c <= band || c >= size-band-1 {
			out = append(out, c)
		}
	}
	return out
}

// orientPlayers turns both gorillas roughly toward each other. The jitter
// keeps the opening shot from being obvious.
func (l *Level) orientPlayers(rng RNG, lt LevelTuning, players [2]*Player) {
	p0 := l.TileToScene(players[0].Position)
	p1 := l.TileToScene(players[1].Position)
	centre := p0.Add(p1).Scale(0.5)
	angleOZ := 90 - int(geom.AngleOnCircle(centre.X, centre.Z, p0.X, p0.Z))

	players[0].heading = 0
	players[0].SetLaunchHeading(angleOZ + randRange(rng, -lt.AimJitter, lt.AimJitter))
	players[1].heading = 0
	players[1].SetLaunchHeading(angleOZ + 180 + randRange(rng, -lt.AimJitter, lt.AimJitter))
}

func drawWind(rng RNG, wt WindTuning) Wind {
	w := Wind{Angle: rng.Intn(360)}
	if wt.Enabled {
		w.Speed = float64(randRange(rng, wt.MinSpeed, wt.MaxSpeed+1))
	}
	w.Direction = geom.RotateVector(geom.UnitX, 0, float64(w.Angle), 0)
	return w
}

// randRange returns an int in [lo,hi), or lo when the range is empty.
func randRange(rng RNG, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// randFloat returns a float in [lo,hi).
func randFloat(rng RNG, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
