package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		tileSize float64
	}{
		{"default window", 30, 20, 30},
		{"rectangular", 10, 4, 55},
		{"minimum", 1, 1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.width, tt.height, tt.tileSize)

			assert.Equal(t, tt.width, g.W)
			assert.Equal(t, tt.height, g.H)
			require.Len(t, g.T, tt.width*tt.height)

			for i, tile := range g.T {
				x, y := i%tt.width, i/tt.width
				assert.Equal(t, i, g.Idx(x, y))
				assert.Equal(t, x, tile.X)
				assert.Equal(t, y, tile.Y)
				assert.Equal(t, float64(x)*tt.tileSize+tt.tileSize/2, tile.Center.X)
				assert.Equal(t, float64(y)*tt.tileSize+tt.tileSize/2, tile.Center.Y)
				assert.True(t, tile.IsFree(), "tile %d should start empty", i)
				assert.False(t, tile.HasBase())
			}
		})
	}
}

func TestGrid_TileBounds(t *testing.T) {
	g := NewGrid(5, 4, 10)

	assert.NotNil(t, g.Tile(0, 0))
	assert.NotNil(t, g.Tile(4, 3))
	assert.Nil(t, g.Tile(5, 0))
	assert.Nil(t, g.Tile(0, -1))
	assert.Nil(t, g.At(Coordinate{-1, 2}))
	assert.Equal(t, Coordinate{2, 1}, g.At(Coordinate{2, 1}).Coord())
}

func TestGrid_CellAtClamps(t *testing.T) {
	g := NewGrid(30, 20, 30)

	tests := []struct {
		name     string
		x, y     float64
		expected Coordinate
	}{
		{"origin", 0, 0, Coordinate{0, 0}},
		{"inside", 45, 95, Coordinate{1, 3}},
		{"negative clamps to zero", -500, -1, Coordinate{0, 0}},
		{"beyond right edge", 10000, 15, Coordinate{29, 0}},
		{"beyond bottom edge", 15, 601, Coordinate{0, 19}},
		{"exact far edge", 900, 600, Coordinate{29, 19}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := g.CellAt(tt.x, tt.y)
			require.NotNil(t, tile)
			assert.Equal(t, tt.expected, tile.Coord())
		})
	}
}

func TestGrid_Classify(t *testing.T) {
	g := NewGrid(4, 1, 10)
	for i, h := range []float64{0.1, 0.35, 0.55, 0.95} {
		g.T[i].Height = h
	}

	g.Classify(Thresholds{Sand: 0.3, Soil: 0.5, Forest: 0.7})

	assert.Equal(t, Water, g.T[0].Terrain)
	assert.Equal(t, Sand, g.T[1].Terrain)
	assert.Equal(t, Soil, g.T[2].Terrain)
	assert.Equal(t, Forest, g.T[3].Terrain)
}

func TestGrid_OccupantOf(t *testing.T) {
	g := NewGrid(3, 3, 10)
	h := Handle{Index: 2, Gen: 1}
	assert.Empty(t, g.OccupantOf(h))

	g.Tile(1, 2).Occupant = h
	assert.Equal(t, []Coordinate{{1, 2}}, g.OccupantOf(h))
}
