package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether every base belongs to the same combatant
// faction. A map with no bases, or where any base is still neutral, is not
// over. Returns (isGameOver, winner).
func (wc *WinConditionChecker) CheckGameOver(owners []core.Faction) (bool, core.Faction) {
	if len(owners) == 0 {
		return false, core.Neutral
	}

	first := owners[0]
	if !first.IsCombatant() {
		return false, core.Neutral
	}
	for _, f := range owners[1:] {
		if f != first {
			return false, core.Neutral
		}
	}

	wc.logger.Info().
		Stringer("winner", first).
		Int("bases", len(owners)).
		Msg("Winner determined")
	return true, first
}
