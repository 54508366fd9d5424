package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// SimTime is the simulated time of the step driving the transition.
	// The engine keeps it current before every transition.
	SimTime time.Duration

	// BaseCount is the number of bases placed on the map
	BaseCount int

	// StartedAt is the simulated time PhaseRunning was entered
	StartedAt time.Duration

	// EndedAt is the simulated time PhaseEnded was entered
	EndedAt time.Duration

	// Winner is the faction holding every base once the game has ended
	Winner core.Faction

	// Resets counts completed resets
	Resets int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
		Winner: core.Neutral,
	}
}

// Elapsed returns the simulated time spent running, up to the end if the
// game is over.
func (gc *GameContext) Elapsed() time.Duration {
	if gc.EndedAt > gc.StartedAt {
		return gc.EndedAt - gc.StartedAt
	}
	return gc.SimTime - gc.StartedAt
}
