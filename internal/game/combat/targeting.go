package combat

import (
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
)

// DefaultMovingRangeFactor shrinks engagement range while a unit has
// queued moves.
const DefaultMovingRangeFactor = 0.8

// EffectiveRange is the range u engages at right now.
func EffectiveRange(u *entity.Unit, movingFactor float64) float64 {
	if u.IsMoving() {
		return u.Stats.Range * movingFactor
	}
	return u.Stats.Range
}

// FindNearestEnemy returns the closest live unit of another faction within
// u's effective range. On equal distance the unit visited first wins.
func FindNearestEnemy(store *entity.Store, u *entity.Unit, movingFactor float64) (*entity.Unit, bool) {
	reach := EffectiveRange(u, movingFactor)

	var best *entity.Unit
	bestDist := 0.0
	store.Units.Each(func(_ core.Handle, other *entity.Unit) {
		if other.Faction == u.Faction || !other.IsAlive() {
			return
		}
		d := u.Position.Dist(other.Position)
		if d > reach {
			return
		}
		if best == nil || d < bestDist {
			best, bestDist = other, d
		}
	})
	return best, best != nil
}
