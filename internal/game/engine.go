package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/combat"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/economy"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/movement"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/rules"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/states"
)

// killer remembers who landed the last hit on a unit so its death can be
// attributed after the shooter itself may have died.
type killer struct {
	unit    core.Handle
	faction core.Faction
}

// Engine owns one running simulation: the grid, every entity, the ledger
// and the phase machine. It is not safe for concurrent use; hosts drive it
// from a single goroutine.
type Engine struct {
	cfg    GameConfig
	gameID string
	rng    *rand.Rand
	logger zerolog.Logger

	generator  *mapgen.Generator
	grid       *core.Grid
	thresholds core.Thresholds
	store      *entity.Store
	ledger     *economy.Ledger

	movement     *movement.Engine
	combat       *combat.Engine
	winCondition *rules.WinConditionChecker

	eventBus     *events.EventBus
	stateMachine *states.StateMachine

	now     time.Duration
	winner  core.Faction
	killers map[core.Handle]killer
}

// NewEngine creates a new game engine with the given configuration.
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Step advances the simulation to now. dt is the time since the previous
// step and drives bullet travel. Once a faction has won, Step returns
// core.ErrGameOver without touching state.
func (e *Engine) Step(now, dt time.Duration) error {
	switch e.stateMachine.CurrentPhase() {
	case states.PhaseRunning:
	case states.PhaseEnded:
		return core.ErrGameOver
	default:
		return nil
	}

	e.now = now
	e.stateMachine.GetContext().SimTime = now

	e.fireAll(now)
	e.moveAll(now)
	e.advanceBullets(dt)
	e.sweepDead()
	e.tickEconomy(now)
	e.checkWin()
	return nil
}

func (e *Engine) fireAll(now time.Duration) {
	e.store.Units.Each(func(_ core.Handle, u *entity.Unit) {
		if !u.IsAlive() {
			return
		}
		if b := e.combat.TryFire(u, now); b != nil {
			e.eventBus.Publish(events.NewBulletFiredEvent(e.gameID, now, b.ID, b.Owner, b.Target, b.Faction))
		}
	})
}

func (e *Engine) moveAll(now time.Duration) {
	e.store.Units.Each(func(_ core.Handle, u *entity.Unit) {
		if !u.IsAlive() {
			return
		}
		res := e.movement.Advance(u, now)
		switch {
		case res.Status == movement.StatusAborted:
			e.eventBus.Publish(events.NewMoveAbortedEvent(e.gameID, now, u.ID, u.Faction, u.Cell, res.Blocker))
		case res.Captured != nil:
			base := res.Captured
			e.logger.Info().
				Str("base", base.ID.String()).
				Stringer("from", res.PreviousOwner).
				Stringer("to", base.Faction).
				Msg("Base captured")
			e.eventBus.Publish(events.NewBaseCapturedEvent(e.gameID, now, base.ID, base.Cell, res.PreviousOwner, base.Faction, u.ID))
		}
	})
}

func (e *Engine) advanceBullets(dt time.Duration) {
	for _, h := range e.store.Bullets.Handles() {
		b := e.store.Bullets.Get(h)
		out := e.combat.AdvanceBullet(b, dt)
		switch out.Resolution {
		case combat.InFlight:
			continue
		case combat.Hit:
			e.eventBus.Publish(events.NewBulletHitEvent(e.gameID, e.now, b.ID, b.Owner, b.Target, b.Faction, out.Damage, out.Killed))
			if out.Killed {
				e.killers[out.Target.ID] = killer{unit: b.Owner, faction: b.Faction}
			}
		case combat.Fizzled:
			e.eventBus.Publish(events.NewBulletFizzledEvent(e.gameID, e.now, b.ID, b.Target, b.Faction))
		}
		e.store.Bullets.Remove(h)
	}
}

// sweepDead removes units at or below zero health and frees their cells.
func (e *Engine) sweepDead() {
	var dead []*entity.Unit
	e.store.Units.Each(func(_ core.Handle, u *entity.Unit) {
		if !u.IsAlive() {
			dead = append(dead, u)
		}
	})

	for _, u := range dead {
		e.movement.Stop(u)
		if t := e.grid.At(u.Cell); t != nil && t.Occupant == u.ID {
			t.Occupant = core.NilHandle
		}

		k := e.killers[u.ID]
		delete(e.killers, u.ID)
		e.eventBus.Publish(events.NewUnitKilledEvent(e.gameID, e.now, u.ID, u.Faction, u.Cell, k.unit, k.faction))
		e.store.Units.Remove(u.ID)
	}
}

func (e *Engine) tickEconomy(now time.Duration) {
	if !e.ledger.Tick(now, e.store.OwnedBases) {
		return
	}
	balances := make(map[core.Faction]int, len(core.Factions))
	bases := make(map[core.Faction]int, len(core.Factions))
	for _, f := range core.Factions {
		balances[f] = e.ledger.Balance(f)
		bases[f] = e.store.OwnedBases(f)
	}
	e.eventBus.Publish(events.NewEconomyTickedEvent(e.gameID, now, balances, bases))
}

func (e *Engine) checkWin() {
	owners := make([]core.Faction, 0, e.store.Bases.Len())
	e.store.Bases.Each(func(_ core.Handle, b *entity.Base) {
		owners = append(owners, b.Faction)
	})

	over, winner := e.winCondition.CheckGameOver(owners)
	if !over {
		return
	}

	e.stateMachine.GetContext().Winner = winner
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, fmt.Sprintf("%s holds every base", winner)); err != nil {
		e.logger.Error().Err(err).Msg("Failed to end game")
		return
	}
	e.winner = winner
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, e.now, winner))
}

// RequestSpawn buys a unit of typ for faction on coord. The cell must be
// on the map, hold no base, be free of units and reservations, and lie
// within the spawn radius of a base the faction owns.
func (e *Engine) RequestSpawn(faction core.Faction, coord core.Coordinate, typ entity.UnitType) (core.Handle, error) {
	h, err := e.spawn(faction, coord, typ)
	if err != nil {
		e.logger.Debug().
			Err(err).
			Stringer("faction", faction).
			Str("cell", coord.String()).
			Msg("Spawn rejected")
		return core.NilHandle, fmt.Errorf("spawn %s at %s: %w", faction, coord, err)
	}
	return h, nil
}

func (e *Engine) spawn(faction core.Faction, coord core.Coordinate, typ entity.UnitType) (core.Handle, error) {
	if !e.stateMachine.CurrentPhase().CanReceiveCommands() {
		return core.NilHandle, core.ErrGameOver
	}
	if !faction.IsCombatant() {
		return core.NilHandle, core.ErrInvalidFaction
	}
	if typ != entity.Tank {
		return core.NilHandle, core.ErrUnsupportedUnitType
	}
	tile := e.grid.At(coord)
	if tile == nil {
		return core.NilHandle, core.ErrInvalidCoordinates
	}
	if tile.HasBase() {
		return core.NilHandle, core.ErrCellHasBase
	}
	if !tile.IsFree() {
		return core.NilHandle, core.ErrCellOccupied
	}
	if !e.store.InSpawnRange(tile.Center, faction) {
		return core.NilHandle, core.ErrOutOfSpawnRadius
	}
	if !e.ledger.TrySpend(faction, e.cfg.Tank.Cost) {
		return core.NilHandle, core.ErrInsufficientFunds
	}

	u := entity.NewUnit(faction, typ, e.cfg.Tank, coord, tile.Center, e.now)
	centre := core.Vec2{X: e.grid.WidthPx() / 2, Y: e.grid.HeightPx() / 2}
	u.Heading = tile.Center.HeadingTo(centre)
	u.TurretHeading = u.Heading

	h := e.store.AddUnit(u)
	tile.Occupant = h

	e.eventBus.Publish(events.NewUnitSpawnedEvent(e.gameID, e.now, h, faction, typ.String(), coord, e.cfg.Tank.Cost))
	return h, nil
}

// RequestMove replaces the unit's queued path. path must start at the
// unit's current cell; diagonal corners are cut before queuing.
func (e *Engine) RequestMove(unit core.Handle, path []core.Coordinate) error {
	if err := e.move(unit, path); err != nil {
		e.logger.Debug().
			Err(err).
			Str("unit", unit.String()).
			Int("path_len", len(path)).
			Msg("Move rejected")
		return fmt.Errorf("move %s: %w", unit, err)
	}
	return nil
}

func (e *Engine) move(unit core.Handle, path []core.Coordinate) error {
	if !e.stateMachine.CurrentPhase().CanReceiveCommands() {
		return core.ErrGameOver
	}
	u := e.store.Unit(unit)
	if u == nil {
		return core.ErrUnknownUnit
	}
	if err := movement.ValidatePath(e.grid, u.Cell, path); err != nil {
		return err
	}
	e.movement.Command(u, movement.SimplifyPath(path))
	return nil
}

// RequestDebugBase places a base owned by faction on an empty cell.
func (e *Engine) RequestDebugBase(coord core.Coordinate, faction core.Faction) error {
	err := e.debugBase(coord, faction)
	if err != nil {
		e.logger.Debug().
			Err(err).
			Stringer("faction", faction).
			Str("cell", coord.String()).
			Msg("Debug base rejected")
		return fmt.Errorf("debug base %s at %s: %w", faction, coord, err)
	}
	return nil
}

func (e *Engine) debugBase(coord core.Coordinate, faction core.Faction) error {
	if !e.stateMachine.CurrentPhase().CanReceiveCommands() {
		return core.ErrGameOver
	}
	if faction != core.Neutral && !faction.IsCombatant() {
		return core.ErrInvalidFaction
	}
	tile := e.grid.At(coord)
	if tile == nil {
		return core.ErrInvalidCoordinates
	}
	if tile.HasBase() {
		return core.ErrCellHasBase
	}
	if !tile.IsFree() {
		return core.ErrCellOccupied
	}
	e.addBase(coord, faction, true)
	return nil
}

func (e *Engine) addBase(coord core.Coordinate, faction core.Faction, debug bool) core.Handle {
	tile := e.grid.At(coord)
	h := e.store.AddBase(entity.NewBase(faction, coord, tile.Center, e.cfg.SpawnRadius))
	tile.Base = h
	e.eventBus.Publish(events.NewBaseCreatedEvent(e.gameID, e.now, h, faction, coord, debug))
	return h
}

// Reset throws the current match away and starts a fresh one on a newly
// generated map at the current simulation time.
func (e *Engine) Reset() error {
	if err := e.stateMachine.Reset("Reset requested"); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := e.populate(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	ctx := e.stateMachine.GetContext()
	ctx.SimTime = e.now
	ctx.BaseCount = e.store.Bases.Len()
	if err := e.stateMachine.TransitionTo(states.PhaseRunning, "Map regenerated"); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	e.logger.Info().Int("bases", ctx.BaseCount).Msg("Game reset")
	return nil
}

// GameID returns the match identifier.
func (e *Engine) GameID() string { return e.gameID }

// Phase returns the current phase of the match.
func (e *Engine) Phase() states.GamePhase { return e.stateMachine.CurrentPhase() }

// IsGameOver reports whether a faction has won.
func (e *Engine) IsGameOver() bool { return e.Phase() == states.PhaseEnded }

// Winner is the faction holding every base, or Neutral while running.
func (e *Engine) Winner() core.Faction { return e.winner }

// Funds returns a faction's balance.
func (e *Engine) Funds(f core.Faction) int { return e.ledger.Balance(f) }

// CanAfford reports whether faction holds enough currency to buy a unit
// of typ. Only tanks can be bought.
func (e *Engine) CanAfford(faction core.Faction, typ entity.UnitType) bool {
	return typ == entity.Tank && e.ledger.CanAfford(faction, e.cfg.Tank.Cost)
}

// Now returns the simulation time of the last step.
func (e *Engine) Now() time.Duration { return e.now }

// Grid exposes the terrain grid for read-only use by hosts.
func (e *Engine) Grid() *core.Grid { return e.grid }

// EventBus returns the engine's event bus
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Subscribe attaches a subscriber to the engine's event bus
func (e *Engine) Subscribe(sub events.Subscriber) { e.eventBus.Subscribe(sub) }

// StateHistory returns the phase transitions since the last reset
func (e *Engine) StateHistory() []states.Transition { return e.stateMachine.GetHistory() }
