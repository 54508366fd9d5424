// Package sim runs an engine headless at a fixed step, feeding it random
// commands so every system gets exercised without a client attached.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/monitoring"
	"github.com/mitchelldurbincs/GridSkirmish/internal/ui/input"
)

// Options controls a headless run.
type Options struct {
	Step     time.Duration // simulated time per step
	MaxSteps int           // 0 runs until the game ends or ctx is done
	Realtime bool          // pace steps against the wall clock
	// DecideEvery is how often, in simulated time, new commands are issued.
	DecideEvery time.Duration
	// SpawnChance is the per-decision chance that a faction tries a spawn.
	SpawnChance float64
	// Factions are the combatants the driver issues commands for.
	Factions []core.Faction
	UnitType entity.UnitType
}

func DefaultOptions() Options {
	return Options{
		Step:        16 * time.Millisecond,
		MaxSteps:    6000,
		DecideEvery: 500 * time.Millisecond,
		SpawnChance: 0.5,
		Factions:    core.Factions,
		UnitType:    entity.Tank,
	}
}

// ParseFactions reads a comma separated list of combatant names such as
// "player,computer". Duplicates are dropped.
func ParseFactions(s string) ([]core.Faction, error) {
	var out []core.Faction
	for _, name := range strings.Split(s, ",") {
		f, err := core.ParseFaction(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if !f.IsCombatant() {
			return nil, fmt.Errorf("%w: %s cannot issue commands", core.ErrInvalidFaction, f)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Result summarises a finished run.
type Result struct {
	Steps    int
	SimTime  time.Duration
	Commands int
	Accepted int
	Winner   core.Faction
	Ended    bool
}

type Driver struct {
	engine  *game.Engine
	clock   *game.ManualClock
	rng     *rand.Rand
	opts    Options
	monitor *monitoring.RuntimeMonitor
	logger  zerolog.Logger

	nextDecision time.Duration
}

// NewDriver wraps engine. monitor may be nil.
func NewDriver(engine *game.Engine, rng *rand.Rand, opts Options, monitor *monitoring.RuntimeMonitor, logger zerolog.Logger) *Driver {
	if opts.Step <= 0 {
		opts.Step = DefaultOptions().Step
	}
	if opts.DecideEvery <= 0 {
		opts.DecideEvery = DefaultOptions().DecideEvery
	}
	if opts.Factions == nil {
		opts.Factions = core.Factions
	}
	return &Driver{
		engine:  engine,
		clock:   &game.ManualClock{},
		rng:     rng,
		opts:    opts,
		monitor: monitor,
		logger:  logger.With().Str("component", "Driver").Logger(),
	}
}

// Run steps the engine until the game ends, MaxSteps is reached or ctx is
// cancelled. A cancelled context is not an error.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	var res Result

	var tick <-chan time.Time
	if d.opts.Realtime {
		t := time.NewTicker(d.opts.Step)
		defer t.Stop()
		tick = t.C
	}

	for d.opts.MaxSteps == 0 || res.Steps < d.opts.MaxSteps {
		select {
		case <-ctx.Done():
			d.logger.Info().Int("steps", res.Steps).Msg("Run cancelled")
			return d.finish(res), nil
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return d.finish(res), nil
			case <-tick:
			}
		}

		if d.clock.Now() >= d.nextDecision {
			cmds := d.Decide()
			res.Commands += len(cmds)
			res.Accepted += input.Dispatch(d.engine, cmds, d.logger)
			d.nextDecision = d.clock.Now() + d.opts.DecideEvery
		}

		started := time.Now()
		err := d.engine.Step(d.clock.Advance(d.opts.Step), d.opts.Step)
		if d.monitor != nil {
			d.monitor.ObserveStep(time.Since(started))
		}
		res.Steps++

		if errors.Is(err, core.ErrGameOver) || d.engine.IsGameOver() {
			break
		}
		if err != nil {
			return d.finish(res), fmt.Errorf("step %d: %w", res.Steps, err)
		}
	}
	return d.finish(res), nil
}

func (d *Driver) finish(res Result) Result {
	res.SimTime = d.clock.Now()
	res.Ended = d.engine.IsGameOver()
	res.Winner = d.engine.Winner()
	return res
}

// Decide picks this round's commands: for each driven faction maybe a
// spawn near one of its bases when it can pay, and a move toward a base it
// does not own for every idle unit.
func (d *Driver) Decide() []input.Command {
	snap := d.engine.Snapshot()
	grid := d.engine.Grid()

	var cmds []input.Command
	for _, f := range d.opts.Factions {
		own, other := splitBases(snap.Bases, f)

		if len(own) > 0 && d.engine.CanAfford(f, d.opts.UnitType) && d.rng.Float64() < d.opts.SpawnChance {
			b := own[d.rng.Intn(len(own))]
			angle := d.rng.Float64() * 2 * math.Pi
			dist := d.rng.Float64() * b.SpawnRadius
			cell := grid.CellAt(b.Position.X+math.Cos(angle)*dist, b.Position.Y+math.Sin(angle)*dist)
			cmds = append(cmds, input.Command{Kind: input.CommandSpawn, Faction: f, Cell: cell.Coord(), Type: d.opts.UnitType})
		}

		if len(other) == 0 {
			continue
		}
		for _, u := range snap.Units {
			if u.Faction != f || u.Moving {
				continue
			}
			target := other[d.rng.Intn(len(other))]
			cmds = append(cmds, input.Command{
				Kind: input.CommandMove,
				Unit: u.ID,
				Path: StraightPath(u.Cell, target.Cell),
			})
		}
	}
	return cmds
}

func splitBases(bases []game.BaseView, f core.Faction) (own, other []game.BaseView) {
	for _, b := range bases {
		if b.Faction == f {
			own = append(own, b)
		} else {
			other = append(other, b)
		}
	}
	return own, other
}

// StraightPath walks from a to b one neighbouring cell at a time, moving
// diagonally until one axis lines up. The result starts with a.
func StraightPath(a, b core.Coordinate) []core.Coordinate {
	path := []core.Coordinate{a}
	for c := a; c != b; {
		c = c.StepToward(b)
		path = append(path, c)
	}
	return path
}
