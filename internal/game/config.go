package game

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/config"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/combat"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/economy"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/mapgen"
)

// GameConfig holds everything needed to build an Engine.
type GameConfig struct {
	Map         mapgen.MapConfig
	SpawnRadius float64
	Economy     economy.Config
	Tank        entity.UnitStats
	Combat      combat.Config

	Rng    *rand.Rand
	Logger zerolog.Logger
	GameID string

	// EventBus is optional; a fresh bus is created when nil.
	EventBus *events.EventBus
	// LogEvents attaches an event logger at debug level. EventFilter limits
	// it to the listed event types.
	LogEvents   bool
	EventFilter []string
}

// DefaultGameConfig returns the stock 30x20 map with 30px tiles.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Map:         mapgen.DefaultMapConfig(30, 20, 30),
		SpawnRadius: entity.DefaultSpawnRadius,
		Economy:     economy.DefaultConfig(),
		Tank:        entity.DefaultTankStats(),
		Combat:      combat.DefaultConfig(),
		Logger:      zerolog.Nop(),
	}
}

// ConfigFromSettings maps loaded settings onto a GameConfig. A zero seed
// leaves Rng nil so the initializer seeds from the clock.
func ConfigFromSettings(c *config.Config, logger zerolog.Logger) GameConfig {
	gc := DefaultGameConfig()
	gc.Logger = logger

	gc.Map = mapgen.MapConfig{
		Width:          c.Sim.Width,
		Height:         c.Sim.Height,
		TileSize:       c.Sim.TileSize,
		HUDReserve:     c.Sim.HUDReserve,
		NoiseFrequency: c.Sim.NoiseFrequency,
		BaseCount:      c.Sim.BaseCount,
	}
	if c.Sim.Seed != 0 {
		gc.Rng = rand.New(rand.NewSource(c.Sim.Seed))
	}

	gc.SpawnRadius = c.Bases.SpawnRadius
	gc.Economy = economy.Config{
		StartingFunds: c.Economy.StartingFunds,
		TickInterval:  time.Duration(c.Economy.TickIntervalMs) * time.Millisecond,
		IncomePerBase: c.Economy.IncomePerBase,
	}

	t := c.Units.Tank
	gc.Tank = entity.UnitStats{
		Speed:      t.Speed,
		Range:      t.Range,
		MaxHealth:  t.MaxHealth,
		ReloadTime: time.Duration(t.ReloadMs) * time.Millisecond,
		Cost:       t.Cost,
	}
	gc.Combat = combat.Config{
		Bullet: entity.BulletStats{
			Speed:            c.Bullets.Speed,
			Size:             c.Bullets.Size,
			Damage:           c.Bullets.Damage,
			StationaryFactor: c.Bullets.StationaryDamageFactor,
		},
		MovingRangeFactor: t.MovingRangeFactor,
	}

	gc.EventFilter = c.Logging.Events
	return gc
}
