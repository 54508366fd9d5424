package entity

import "github.com/mitchelldurbincs/GridSkirmish/internal/game/core"

// BulletStats are the projectile constants.
type BulletStats struct {
	Speed  float64 // px/s
	Size   float64 // hit radius, px
	Damage float64
	// StationaryFactor scales damage against a target with no queued moves.
	StationaryFactor float64
}

func DefaultBulletStats() BulletStats {
	return BulletStats{
		Speed:            400,
		Size:             6,
		Damage:           20,
		StationaryFactor: 0.7,
	}
}

// Bullet is a homing projectile. Its faction is copied from the shooter at
// spawn and never changes.
type Bullet struct {
	ID       core.Handle
	Owner    core.Handle
	Target   core.Handle
	Faction  core.Faction
	Position core.Vec2
	Heading  float64
	Stats    BulletStats
}
