package entity

import "github.com/mitchelldurbincs/GridSkirmish/internal/game/core"

// DefaultSpawnRadius is the pixel radius around a base inside which its
// owner may spawn units.
const DefaultSpawnRadius = 50.0

// Base is a capturable structure. Bases are never destroyed.
type Base struct {
	ID          core.Handle
	Faction     core.Faction
	Cell        core.Coordinate
	Position    core.Vec2
	SpawnRadius float64
}

func NewBase(faction core.Faction, cell core.Coordinate, pos core.Vec2, spawnRadius float64) *Base {
	return &Base{
		Faction:     faction,
		Cell:        cell,
		Position:    pos,
		SpawnRadius: spawnRadius,
	}
}

// Capture hands the base to faction and reports whether ownership changed.
func (b *Base) Capture(faction core.Faction) bool {
	if b.Faction == faction {
		return false
	}
	b.Faction = faction
	return true
}
