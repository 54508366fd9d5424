package states

import (
	"fmt"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
)

// InitializingState represents map generation
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	ctx.Winner = core.Neutral
	ctx.StartedAt, ctx.EndedAt = 0, 0
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int("bases", ctx.BaseCount).Msg("Map ready")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartedAt = ctx.SimTime
	ctx.Logger.Info().
		Dur("sim_time", ctx.StartedAt).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.SimTime-ctx.StartedAt).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if ctx.BaseCount < 1 {
		return fmt.Errorf("cannot start without bases, have %d", ctx.BaseCount)
	}
	return nil
}

// EndedState is entered once a single faction holds every base
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndedAt = ctx.SimTime
	ctx.Logger.Info().
		Stringer("winner", ctx.Winner).
		Dur("elapsed", ctx.Elapsed()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if !ctx.Winner.IsCombatant() {
		return fmt.Errorf("game cannot end without a winner, got %s", ctx.Winner)
	}
	return nil
}

// ResetState tears the current match down before a fresh map is generated
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Resets++
	ctx.Logger.Info().Int("resets", ctx.Resets).Msg("Resetting game")
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
