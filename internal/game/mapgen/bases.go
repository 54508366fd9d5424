package mapgen

import (
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// maxBaseRolls bounds how often a base index re-rolls its y position when
// it lands on a cell that already holds a base.
const maxBaseRolls = 8

// BasePlacement tracks where a base was placed and who starts owning it.
type BasePlacement struct {
	Cell    core.Coordinate
	Faction core.Faction
}

// PlaceBases lays out the configured number of bases in evenly spaced
// columns, alternating between the top and bottom halves of the map. The
// first base belongs to the computer, the last to the player, and the rest
// start neutral. The grid is only read; callers attach the bases.
func (g *Generator) PlaceBases(grid *core.Grid) []BasePlacement {
	n := g.config.BaseCount
	widthPx, heightPx := grid.WidthPx(), grid.HeightPx()

	taken := make(map[core.Coordinate]bool, n)
	placements := make([]BasePlacement, 0, n)

	for i := 1; i <= n; i++ {
		x := widthPx * float64(i) / float64(n+1)

		var cell core.Coordinate
		placed := false
		for roll := 0; roll < maxBaseRolls; roll++ {
			y := g.rng.Float64() * heightPx / 2
			if i%2 == 0 {
				y += heightPx / 2
			}
			cell = grid.CellAt(x, y).Coord()
			if !taken[cell] && !grid.At(cell).HasBase() {
				placed = true
				break
			}
		}
		if !placed {
			continue
		}

		taken[cell] = true
		placements = append(placements, BasePlacement{
			Cell:    cell,
			Faction: baseFaction(i, n),
		})
	}
	return placements
}

func baseFaction(i, n int) core.Faction {
	switch i {
	case 1:
		return core.Computer
	case n:
		return core.Player
	default:
		return core.Neutral
	}
}
