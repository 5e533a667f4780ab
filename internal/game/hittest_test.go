package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Building ---

func TestDestroyFloor_ShiftsLiveIndices(t *testing.T) {
	b := newBuilding(Tile{X: 2, Z: 4}, 0, 5)
	for i := range b.Floors {
		b.Floors[i].Node = NewModel("Floor", Model{})
	}
	top, ok := b.LiveFloor(4)
	require.True(t, ok)

	f, err := b.DestroyFloor(2)
	require.NoError(t, err)
	assert.Same(t, &b.Floors[2], f)
	assert.True(t, f.Destroyed)
	assert.False(t, f.Node.Visible)
	assert.Equal(t, 4, b.Height)
	assert.Len(t, b.Floors, 5, "arena keeps destroyed records")

	// The old top floor now answers to index 3.
	got, ok := b.LiveFloor(3)
	require.True(t, ok)
	assert.Same(t, top, got)
	assert.Len(t, b.LiveFloors(), 4)

	_, ok = b.LiveFloor(4)
	assert.False(t, ok)
	_, err = b.DestroyFloor(4)
	assert.Error(t, err)
	_, err = b.DestroyFloor(-1)
	assert.Error(t, err)
}

func TestDestroyFloor_DownToNothing(t *testing.T) {
	b := newBuilding(Tile{}, 0, 3)
	for b.Height > 0 {
		_, err := b.DestroyFloor(b.Height - 1)
		require.NoError(t, err)
	}
	assert.Empty(t, b.LiveFloors())
	for _, f := range b.Floors {
		assert.True(t, f.Destroyed)
	}
}

// --- Hit test ---

// hitFixture is a 9x9 level with one 4-storey building at lot (2,2) and a
// target standing on a 3-storey building at lot (6,6).
func hitFixture() (*Level, *Player) {
	l := newLevel(9, 9)
	l.addBuilding(newBuilding(Tile{X: 2, Z: 2}, 0, 4))
	l.addBuilding(newBuilding(Tile{X: 6, Z: 6}, 1, 3))
	target := NewPlayer(1, DefaultTuning().Launch)
	target.Position = Tile{X: 6, Y: 3, Z: 6}
	l.BuildingAt(6, 6).Occupant = target
	return l, target
}

func TestHitTest_GroundBeforeAnything(t *testing.T) {
	l, target := hitFixture()
	p := l.TileToScene(Tile{X: 2, Y: 0, Z: 2})
	p.Y = -0.01
	r := l.HitTest(p, target)
	assert.Equal(t, HitGround, r.Kind)

	r = l.HitTestTile(Tile{X: 2, Y: -1, Z: 2}, target)
	assert.Equal(t, HitGround, r.Kind)
	assert.Nil(t, r.Building)
}

func TestHitTest_Building(t *testing.T) {
	l, target := hitFixture()
	for y := 0; y < 4; y++ {
		r := l.HitTest(l.TileToScene(Tile{X: 2, Y: y, Z: 2}), target)
		require.Equal(t, HitBuilding, r.Kind, "floor %d", y)
		assert.Equal(t, y, r.Tile.Y)
		assert.Same(t, l.BuildingAt(2, 2), r.Building)
		assert.Nil(t, r.Player)
	}
	r := l.HitTest(l.TileToScene(Tile{X: 2, Y: 4, Z: 2}), target)
	assert.False(t, r.Hit(), "above the roof")
}

func TestHitTest_DestroyedFloorLowersRoof(t *testing.T) {
	l, target := hitFixture()
	_, err := l.BuildingAt(2, 2).DestroyFloor(1)
	require.NoError(t, err)
	assert.False(t, l.HitTestTile(Tile{X: 2, Y: 3, Z: 2}, target).Hit())
	assert.Equal(t, HitBuilding, l.HitTestTile(Tile{X: 2, Y: 2, Z: 2}, target).Kind)
}

func TestHitTest_Player(t *testing.T) {
	l, target := hitFixture()
	r := l.HitTest(l.TileToScene(target.Position), target)
	require.Equal(t, HitPlayer, r.Kind)
	assert.Same(t, target, r.Player)
	assert.Nil(t, r.Building)

	// The thrower is never a target.
	r = l.HitTest(l.TileToScene(target.Position), nil)
	assert.False(t, r.Hit())
}

func TestHitTest_StreetsAreEmpty(t *testing.T) {
	l, target := hitFixture()
	for _, tile := range []Tile{{X: 1, Y: 0, Z: 1}, {X: 3, Y: 2, Z: 2}, {X: -1, Y: 0, Z: 4}, {X: 20, Y: 0, Z: 0}} {
		assert.False(t, l.HitTestTile(tile, target).Hit(), "tile %+v", tile)
	}
	// Lot without a building.
	assert.False(t, l.HitTestTile(Tile{X: 4, Y: 0, Z: 4}, target).Hit())
}
