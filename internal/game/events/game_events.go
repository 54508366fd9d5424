package events

import (
	"time"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeUnitSpawned     = "unit.spawned"
	TypeUnitKilled      = "unit.killed"
	TypeMoveAborted     = "move.aborted"
	TypeBaseCreated     = "base.created"
	TypeBaseCaptured    = "base.captured"
	TypeBulletFired     = "bullet.fired"
	TypeBulletHit       = "bullet.hit"
	TypeBulletFizzled   = "bullet.fizzled"
	TypeEconomyTicked   = "economy.ticked"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	MapWidth  int
	MapHeight int
	BaseCount int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, at time.Duration, width, height, bases int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID, at),
		MapWidth:  width,
		MapHeight: height,
		BaseCount: bases,
	}
}

// GameEndedEvent is published when one faction holds every base
type GameEndedEvent struct {
	BaseEvent
	Winner core.Faction
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, at time.Duration, winner core.Faction) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, at),
		Winner:    winner,
	}
}

// UnitSpawnedEvent is published after a spawn command succeeds
type UnitSpawnedEvent struct {
	BaseEvent
	Unit     core.Handle
	Faction  core.Faction
	UnitType string
	Cell     core.Coordinate
	Cost     int
}

func NewUnitSpawnedEvent(gameID string, at time.Duration, unit core.Handle, faction core.Faction, unitType string, cell core.Coordinate, cost int) *UnitSpawnedEvent {
	return &UnitSpawnedEvent{
		BaseEvent: newBase(TypeUnitSpawned, gameID, at),
		Unit:      unit,
		Faction:   faction,
		UnitType:  unitType,
		Cell:      cell,
		Cost:      cost,
	}
}

// UnitKilledEvent is published when a dead unit is swept from the grid
type UnitKilledEvent struct {
	BaseEvent
	Unit    core.Handle
	Faction core.Faction
	Cell    core.Coordinate
	// Killer is the unit whose bullet landed the lethal hit, if known.
	Killer        core.Handle
	KillerFaction core.Faction
}

func NewUnitKilledEvent(gameID string, at time.Duration, unit core.Handle, faction core.Faction, cell core.Coordinate, killer core.Handle, killerFaction core.Faction) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent:     newBase(TypeUnitKilled, gameID, at),
		Unit:          unit,
		Faction:       faction,
		Cell:          cell,
		Killer:        killer,
		KillerFaction: killerFaction,
	}
}

// MoveAbortedEvent is published when a unit's path is dropped because the
// next cell was taken
type MoveAbortedEvent struct {
	BaseEvent
	Unit    core.Handle
	Faction core.Faction
	Cell    core.Coordinate
	Blocked core.Coordinate
}

func NewMoveAbortedEvent(gameID string, at time.Duration, unit core.Handle, faction core.Faction, cell, blocked core.Coordinate) *MoveAbortedEvent {
	return &MoveAbortedEvent{
		BaseEvent: newBase(TypeMoveAborted, gameID, at),
		Unit:      unit,
		Faction:   faction,
		Cell:      cell,
		Blocked:   blocked,
	}
}

// BaseCreatedEvent is published for every base placed, at map generation
// or by debug command
type BaseCreatedEvent struct {
	BaseEvent
	Base    core.Handle
	Faction core.Faction
	Cell    core.Coordinate
	Debug   bool
}

func NewBaseCreatedEvent(gameID string, at time.Duration, base core.Handle, faction core.Faction, cell core.Coordinate, debug bool) *BaseCreatedEvent {
	return &BaseCreatedEvent{
		BaseEvent: newBase(TypeBaseCreated, gameID, at),
		Base:      base,
		Faction:   faction,
		Cell:      cell,
		Debug:     debug,
	}
}

// BaseCapturedEvent is published when a unit takes a base
type BaseCapturedEvent struct {
	BaseEvent
	Base core.Handle
	Cell core.Coordinate
	From core.Faction
	To   core.Faction
	By   core.Handle
}

func NewBaseCapturedEvent(gameID string, at time.Duration, base core.Handle, cell core.Coordinate, from, to core.Faction, by core.Handle) *BaseCapturedEvent {
	return &BaseCapturedEvent{
		BaseEvent: newBase(TypeBaseCaptured, gameID, at),
		Base:      base,
		Cell:      cell,
		From:      from,
		To:        to,
		By:        by,
	}
}

// BulletFiredEvent is published when a unit fires
type BulletFiredEvent struct {
	BaseEvent
	Bullet  core.Handle
	Shooter core.Handle
	Target  core.Handle
	Faction core.Faction
}

func NewBulletFiredEvent(gameID string, at time.Duration, bullet, shooter, target core.Handle, faction core.Faction) *BulletFiredEvent {
	return &BulletFiredEvent{
		BaseEvent: newBase(TypeBulletFired, gameID, at),
		Bullet:    bullet,
		Shooter:   shooter,
		Target:    target,
		Faction:   faction,
	}
}

// BulletHitEvent is published when a bullet reaches its target
type BulletHitEvent struct {
	BaseEvent
	Bullet  core.Handle
	Shooter core.Handle
	Target  core.Handle
	Faction core.Faction
	Damage  float64
	Killed  bool
}

func NewBulletHitEvent(gameID string, at time.Duration, bullet, shooter, target core.Handle, faction core.Faction, damage float64, killed bool) *BulletHitEvent {
	return &BulletHitEvent{
		BaseEvent: newBase(TypeBulletHit, gameID, at),
		Bullet:    bullet,
		Shooter:   shooter,
		Target:    target,
		Faction:   faction,
		Damage:    damage,
		Killed:    killed,
	}
}

// BulletFizzledEvent is published when a bullet's target is gone before
// impact; no damage is dealt
type BulletFizzledEvent struct {
	BaseEvent
	Bullet  core.Handle
	Target  core.Handle
	Faction core.Faction
}

func NewBulletFizzledEvent(gameID string, at time.Duration, bullet, target core.Handle, faction core.Faction) *BulletFizzledEvent {
	return &BulletFizzledEvent{
		BaseEvent: newBase(TypeBulletFizzled, gameID, at),
		Bullet:    bullet,
		Target:    target,
		Faction:   faction,
	}
}

// EconomyTickedEvent is published after each income payout
type EconomyTickedEvent struct {
	BaseEvent
	Balances map[core.Faction]int
	Bases    map[core.Faction]int
}

func NewEconomyTickedEvent(gameID string, at time.Duration, balances, bases map[core.Faction]int) *EconomyTickedEvent {
	return &EconomyTickedEvent{
		BaseEvent: newBase(TypeEconomyTicked, gameID, at),
		Balances:  balances,
		Bases:     bases,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID string, at time.Duration, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID, at),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
