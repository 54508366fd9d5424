package input

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/game/entity"
)

// Target is the part of the engine commands are applied to.
type Target interface {
	RequestSpawn(faction core.Faction, coord core.Coordinate, typ entity.UnitType) (core.Handle, error)
	RequestMove(unit core.Handle, path []core.Coordinate) error
	RequestDebugBase(coord core.Coordinate, faction core.Faction) error
	Reset() error
}

// Dispatch applies cmds to t in order. Rejected requests are logged at
// debug level and otherwise ignored; the returned count is how many
// commands the target accepted.
func Dispatch(t Target, cmds []Command, logger zerolog.Logger) int {
	accepted := 0
	for _, c := range cmds {
		var err error
		switch c.Kind {
		case CommandSpawn:
			_, err = t.RequestSpawn(c.Faction, c.Cell, c.Type)
		case CommandMove:
			err = t.RequestMove(c.Unit, c.Path)
		case CommandDebugBase:
			err = t.RequestDebugBase(c.Cell, c.Faction)
		case CommandReset:
			err = t.Reset()
		default:
			err = errors.New("unknown command")
		}
		if err != nil {
			logger.Debug().Err(err).Str("command", c.Kind.String()).Msg("Command rejected")
			continue
		}
		accepted++
	}
	return accepted
}
