package core

import (
	"fmt"

	"github.com/mitchelldurbincs/GridSkirmish/internal/common"
)

// Coordinate represents a cell position on the grid
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a grid array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the coordinate to a grid array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// IsDiagonalTo reports whether other differs by exactly one cell on both axes
func (c Coordinate) IsDiagonalTo(other Coordinate) bool {
	dx := common.Abs(c.X - other.X)
	dy := common.Abs(c.Y - other.Y)
	return dx == 1 && dy == 1
}

// IsNeighborOf reports whether other is one of the eight surrounding cells
func (c Coordinate) IsNeighborOf(other Coordinate) bool {
	dx := common.Abs(c.X - other.X)
	dy := common.Abs(c.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx+dy) > 0
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y}
}

// StepToward returns the neighbouring cell one step closer to target,
// moving diagonally while both axes differ. It returns c when c == target.
func (c Coordinate) StepToward(target Coordinate) Coordinate {
	return Coordinate{X: c.X + sign(target.X-c.X), Y: c.Y + sign(target.Y-c.Y)}
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
