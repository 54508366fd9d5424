package testutil

import (
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// DefaultTileSize matches the stock window layout.
const DefaultTileSize = 30.0

// CreateTestGrid creates a grid where every tile has the given terrain.
func CreateTestGrid(width, height int, terrain core.TerrainClass) *core.Grid {
	grid := core.NewGrid(width, height, DefaultTileSize)
	for i := range grid.T {
		grid.T[i].Terrain = terrain
	}
	return grid
}

// CreateSoilGrid creates a grid of open ground where tanks move at full speed.
func CreateSoilGrid(width, height int) *core.Grid {
	return CreateTestGrid(width, height, core.Soil)
}

// CreateTestGridWithTerrain creates a soil grid and overrides specific tiles.
func CreateTestGridWithTerrain(width, height int, tiles map[core.Coordinate]core.TerrainClass) *core.Grid {
	grid := CreateSoilGrid(width, height)
	for coord, terrain := range tiles {
		if t := grid.At(coord); t != nil {
			t.Terrain = terrain
		}
	}
	return grid
}

// Path builds a coordinate slice from x,y pairs.
func Path(xy ...int) []core.Coordinate {
	out := make([]core.Coordinate, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Coordinate{X: xy[i], Y: xy[i+1]})
	}
	return out
}
