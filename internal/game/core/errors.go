package core

import "errors"

var (
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidFaction      = errors.New("invalid faction")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCellOccupied        = errors.New("cell is occupied")
	ErrCellHasBase         = errors.New("cell already holds a base")
	ErrOutOfSpawnRadius    = errors.New("cell is outside every friendly spawn radius")
	ErrUnsupportedUnitType = errors.New("unsupported unit type")
	ErrUnknownUnit         = errors.New("unknown or dead unit")
	ErrInvalidPath         = errors.New("invalid path")
	ErrGameOver            = errors.New("game is over")
)
