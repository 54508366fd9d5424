package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/combat"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/economy"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/movement"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/rules"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/states"
)

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates an engine with a generated map and moves it into the
// running phase.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	engine := ei.createEngine()
	ei.setupEventHandling(engine)

	if err := engine.populate(); err != nil {
		return nil, fmt.Errorf("map generation failed: %w", err)
	}

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("width", engine.grid.W).
		Int("height", engine.grid.H).
		Int("bases", engine.store.Bases.Len()).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in missing configuration
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}

	m := ei.config.Map
	if m.Width <= 0 || m.Height <= 0 || m.TileSize <= 0 {
		return fmt.Errorf("invalid map size %dx%d with tile %.1f", m.Width, m.Height, m.TileSize)
	}
	if m.BaseCount < 1 {
		return fmt.Errorf("base count must be positive, got %d", m.BaseCount)
	}
	return nil
}

// createEngine creates the engine with all its components. The grid is
// filled in by populate.
func (ei *EngineInitializer) createEngine() *Engine {
	eventBus := ei.config.EventBus
	if eventBus == nil {
		eventBus = events.NewEventBus()
	}

	gameContext := states.NewGameContext(ei.config.GameID, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, eventBus)

	store := entity.NewStore()
	return &Engine{
		cfg:          ei.config,
		gameID:       ei.config.GameID,
		rng:          ei.config.Rng,
		logger:       ei.logger,
		generator:    mapgen.NewGenerator(ei.config.Map, ei.config.Rng),
		store:        store,
		ledger:       economy.NewLedger(ei.config.Economy),
		combat:       combat.NewEngine(ei.config.Combat, store, ei.logger),
		winCondition: rules.NewWinConditionChecker(ei.logger),
		eventBus:     eventBus,
		stateMachine: stateMachine,
		killers:      make(map[core.Handle]killer),
	}
}

// setupEventHandling attaches the engine's own subscribers
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	if !ei.config.LogEvents {
		return
	}
	ls := subscribers.NewLoggerSubscriber("engine-events", ei.config.Logger, zerolog.DebugLevel)
	ls.SetEventFilter(ei.config.EventFilter)
	engine.eventBus.Subscribe(ls)
}

// initializeStateMachine moves the machine from Initializing to Running
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	engine.stateMachine.GetContext().BaseCount = engine.store.Bases.Len()
	return engine.stateMachine.TransitionTo(states.PhaseRunning, "Map generated")
}

// populate generates terrain and bases and restores starting funds. It is
// shared by initialization and Reset.
func (e *Engine) populate() error {
	grid, th := e.generator.GenerateMap()
	e.grid = grid
	e.thresholds = th
	e.movement = movement.NewEngine(grid, e.store, e.logger)

	e.store.Clear()
	clear(e.killers)
	e.ledger.Reset(e.now)
	e.winner = core.Neutral

	placements := e.generator.PlaceBases(grid)
	if len(placements) == 0 {
		return fmt.Errorf("no bases could be placed on a %dx%d map", grid.W, grid.H)
	}

	e.eventBus.Publish(events.NewGameStartedEvent(e.gameID, e.now, grid.W, grid.H, len(placements)))
	for _, p := range placements {
		e.addBase(p.Cell, p.Faction, false)
	}
	return nil
}
