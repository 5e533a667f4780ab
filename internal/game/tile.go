package game

import (
	"math"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// BorderSize is the ring of street tiles drawn around the building lots.
const BorderSize = 1

// Tile is an integer cell of the level grid. Y is the floor index above
// ground; X and Z address the lot. Tiles compare by value and are used
// directly as map keys.
type Tile struct {
	X, Y, Z int
}

// Lot returns the ground-level tile of the same column.
func (t Tile) Lot() Tile { return Tile{X: t.X, Z: t.Z} }

// TileKind identifies what occupies a ground cell.
type TileKind uint8

const (
	TileNone     TileKind = iota // Outside the bordered area
	TileBuilding                 // Lot with a building (even X, even Z)
	TileCorner                   // Outer corner of the street border
	TileStreet                   // Straight street segment
	TileJunction                 // 4-way or T crossing
)

func (k TileKind) String() string {
	switch k {
	case TileBuilding:
		return "building"
	case TileCorner:
		return "corner"
	case TileStreet:
		return "street"
	case TileJunction:
		return "junction"
	default:
		return "none"
	}
}

// TileInfo is the classification of one ground cell. Angle is the Y
// rotation, in degrees, applied to the ground quad.
type TileInfo struct {
	Kind      TileKind
	Angle     int
	TJunction bool
}

// GroundTile is a classified non-building cell kept for rendering.
type GroundTile struct {
	X, Z int
	Info TileInfo
}

// InBounds reports whether (x,z) lies inside the building area.
func (l *Level) InBounds(x, z int) bool {
	return x >= 0 && x < l.SizeX && z >= 0 && z < l.SizeZ
}

// inBorder reports whether (x,z) lies inside the bordered area.
func (l *Level) inBorder(x, z int) bool {
	return x >= -BorderSize && x <= l.SizeX-1+BorderSize &&
		z >= -BorderSize && z <= l.SizeZ-1+BorderSize
}

// IsBuildingTile reports whether (x,z) is a building lot.
func (l *Level) IsBuildingTile(x, z int) bool {
	return l.InBounds(x, z) && x%2 == 0 && z%2 == 0
}

// Classify assigns exactly one TileKind to every cell. The checks run in a
// fixed order so the result is mutually exclusive.
func (l *Level) Classify(x, z int) TileInfo {
	if l.IsBuildingTile(x, z) {
		return TileInfo{Kind: TileBuilding}
	}
	if info, ok := l.classifyCorner(x, z); ok {
		return info
	}
	if !l.inBorder(x, z) {
		return TileInfo{Kind: TileNone}
	}
	if x%2 == 0 {
		return TileInfo{Kind: TileStreet, Angle: 0}
	}
	if z%2 == 0 {
		return TileInfo{Kind: TileStreet, Angle: 90}
	}
	return l.classifyJunction(x, z)
}

func (l *Level) classifyCorner(x, z int) (TileInfo, bool) {
	switch {
	case x == -1 && z == -1:
		return TileInfo{Kind: TileCorner, Angle: 0}, true
	case x == -1 && z == l.SizeZ:
		return TileInfo{Kind: TileCorner, Angle: 90}, true
	case x == l.SizeX && z == -1:
		return TileInfo{Kind: TileCorner, Angle: 270}, true
	case x == l.SizeX && z == l.SizeZ:
		return TileInfo{Kind: TileCorner, Angle: 180}, true
	}
	return TileInfo{}, false
}

func (l *Level) classifyJunction(x, z int) TileInfo {
	switch {
	case x == -1:
		return TileInfo{Kind: TileJunction, Angle: 90, TJunction: true}
	case x == l.SizeX:
		return TileInfo{Kind: TileJunction, Angle: 270, TJunction: true}
	case z == -1:
		return TileInfo{Kind: TileJunction, Angle: 0, TJunction: true}
	case z == l.SizeZ:
		return TileInfo{Kind: TileJunction, Angle: 180, TJunction: true}
	}
	return TileInfo{Kind: TileJunction}
}

// TileToScene returns the scene position of the tile centre.
func (l *Level) TileToScene(t Tile) geom.Vec3 {
	return geom.Vec3{
		X: l.Boundary.X + float64(t.X) + 0.5,
		Y: l.Boundary.Y + float64(t.Y) + 0.5,
		Z: l.Boundary.Z + float64(t.Z) + 0.5,
	}
}

// SceneToTile returns the tile containing scene point p.
func (l *Level) SceneToTile(p geom.Vec3) Tile {
	return Tile{
		X: int(math.Floor(p.X - l.Boundary.X)),
		Y: int(math.Floor(p.Y - l.Boundary.Y)),
		Z: int(math.Floor(p.Z - l.Boundary.Z)),
	}
}
