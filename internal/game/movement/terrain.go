package movement

import (
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
)

// TerrainMultiplier scales a unit type's base speed on a terrain class.
func TerrainMultiplier(typ entity.UnitType, t core.TerrainClass) float64 {
	if typ != entity.Tank {
		return 1
	}
	switch t {
	case core.Forest:
		return 0.2
	case core.Soil:
		return 1.0
	case core.Sand:
		return 0.4
	default:
		return 0.2
	}
}

// SegmentSpeed is the speed for a move between two tiles: the unit travels
// at the better of the two terrain multipliers.
func SegmentSpeed(u *entity.Unit, from, to *core.Tile) float64 {
	m := max(TerrainMultiplier(u.Type, from.Terrain), TerrainMultiplier(u.Type, to.Terrain))
	return u.Stats.Speed * m
}
