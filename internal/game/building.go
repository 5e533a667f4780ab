package game

import "fmt"

// Floor is one storey of a building. Records are never removed from the
// building's arena; destruction only flips Destroyed.
type Floor struct {
	Destroyed bool
	Node      *Node
}

// Building occupies one lot. Height counts the live floors; the i-th live
// floor is the one a tile with Y == i refers to.
type Building struct {
	Lot      Tile
	Skin     int
	Height   int
	Floors   []Floor
	Occupant *Player
	Node     *Node
}

func newBuilding(lot Tile, skin, height int) *Building {
	return &Building{
		Lot:    lot,
		Skin:   skin,
		Height: height,
		Floors: make([]Floor, height),
	}
}

// liveIndex maps a live floor index to its position in the arena.
func (b *Building) liveIndex(i int) (int, bool) {
	if i < 0 || i >= b.Height {
		return 0, false
	}
	n := 0
	for idx := range b.Floors {
		if b.Floors[idx].Destroyed {
			continue
		}
		if n == i {
			return idx, true
		}
		n++
	}
	return 0, false
}

// LiveFloor returns the i-th surviving floor, counting from the ground.
func (b *Building) LiveFloor(i int) (*Floor, bool) {
	idx, ok := b.liveIndex(i)
	if !ok {
		return nil, false
	}
	return &b.Floors[idx], true
}

// LiveFloors returns the surviving floors from the ground up.
func (b *Building) LiveFloors() []*Floor {
	out := make([]*Floor, 0, b.Height)
	for idx := range b.Floors {
		if !b.Floors[idx].Destroyed {
			out = append(out, &b.Floors[idx])
		}
	}
	return out
}

// DestroyFloor knocks out the i-th live floor. The floors above it now
// answer to one index lower.
func (b *Building) DestroyFloor(i int) (*Floor, error) {
	idx, ok := b.liveIndex(i)
	if !ok {
		return nil, fmt.Errorf("building %d,%d: no live floor %d (height %d)", b.Lot.X, b.Lot.Z, i, b.Height)
	}
	f := &b.Floors[idx]
	f.Destroyed = true
	if f.Node != nil {
		f.Node.Visible = false
	}
	b.Height--
	return f, nil
}
