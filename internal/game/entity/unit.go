package entity

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// UnitType enumerates unit kinds. Only tanks exist today.
type UnitType int

const (
	Tank UnitType = iota
)

func (t UnitType) String() string {
	switch t {
	case Tank:
		return "tank"
	default:
		return "unknown"
	}
}

// ParseUnitType converts a command string into a UnitType.
func ParseUnitType(s string) (UnitType, error) {
	if s == "tank" {
		return Tank, nil
	}
	return 0, fmt.Errorf("%w: %q", core.ErrUnsupportedUnitType, s)
}

// UnitStats are the per-type constants copied onto a unit at spawn.
type UnitStats struct {
	Speed      float64 // px/s on soil
	Range      float64 // px
	MaxHealth  float64
	ReloadTime time.Duration
	Cost       int
}

// DefaultTankStats returns the stock tank profile.
func DefaultTankStats() UnitStats {
	return UnitStats{
		Speed:      55,
		Range:      200,
		MaxHealth:  200,
		ReloadTime: 800 * time.Millisecond,
		Cost:       100,
	}
}

// Waypoint is one straight segment between adjacent cells. It stays
// pending until its first advance, when the motion fields are filled in.
type Waypoint struct {
	From, To core.Coordinate

	Activated     bool
	StartTime     time.Duration
	StartPosition core.Vec2
	Heading       float64
	Distance      float64
	Duration      time.Duration
	HandedOff     bool
}

// End is the simulated time at which the segment finishes.
func (w *Waypoint) End() time.Duration { return w.StartTime + w.Duration }

type Unit struct {
	ID      core.Handle
	Faction core.Faction
	Type    UnitType
	Stats   UnitStats

	Cell          core.Coordinate
	Position      core.Vec2
	Waypoints     []*Waypoint // front is the active segment
	Health        float64
	Heading       float64
	TurretHeading float64
	LastFired     time.Duration
}

// NewUnit builds a full-health unit standing on cell at pos. The reload
// clock starts at the spawn time, so a fresh unit cannot fire at once.
func NewUnit(faction core.Faction, typ UnitType, stats UnitStats, cell core.Coordinate, pos core.Vec2, now time.Duration) *Unit {
	return &Unit{
		Faction:   faction,
		Type:      typ,
		Stats:     stats,
		Cell:      cell,
		Position:  pos,
		Health:    stats.MaxHealth,
		LastFired: now,
	}
}

func (u *Unit) IsAlive() bool { return u.Health > 0 }

// IsMoving reports whether the unit has queued segments.
func (u *Unit) IsMoving() bool { return len(u.Waypoints) > 0 }

// HealthFraction is Health/MaxHealth clamped to [0,1].
func (u *Unit) HealthFraction() float64 {
	if u.Stats.MaxHealth <= 0 || u.Health <= 0 {
		return 0
	}
	if u.Health >= u.Stats.MaxHealth {
		return 1
	}
	return u.Health / u.Stats.MaxHealth
}

// ReadyToFire reports whether the reload window has elapsed at now.
func (u *Unit) ReadyToFire(now time.Duration) bool {
	return now-u.LastFired > u.Stats.ReloadTime
}

// Front returns the active waypoint or nil.
func (u *Unit) Front() *Waypoint {
	if len(u.Waypoints) == 0 {
		return nil
	}
	return u.Waypoints[0]
}

// TakeDamage subtracts dmg and reports whether the hit was lethal.
func (u *Unit) TakeDamage(dmg float64) bool {
	u.Health -= dmg
	return u.Health <= 0
}
