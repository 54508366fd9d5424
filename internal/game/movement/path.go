package movement

import "github.com/mitchelldurbincs/GridSkirmish/internal/game/core"

// SimplifyPath collapses every A,B,C run where C is diagonally adjacent to
// A into A,C. After a removal the scan steps back one index, since the
// shortened path can form a new triple ending at the kept cell. The input
// slice is not modified.
func SimplifyPath(path []core.Coordinate) []core.Coordinate {
	out := append([]core.Coordinate(nil), path...)
	for i := 0; i+2 < len(out); {
		if out[i].IsDiagonalTo(out[i+2]) {
			out = append(out[:i+1], out[i+2:]...)
			if i > 0 {
				i--
			}
			continue
		}
		i++
	}
	return out
}

// ValidatePath checks that a move path starts at start, has at least one
// step, stays on the grid and moves to one of the eight neighbouring cells
// on every step.
func ValidatePath(grid *core.Grid, start core.Coordinate, path []core.Coordinate) error {
	if len(path) < 2 {
		return core.ErrInvalidPath
	}
	if path[0] != start {
		return core.ErrInvalidPath
	}
	for i, c := range path {
		if !grid.InBounds(c.X, c.Y) {
			return core.ErrInvalidCoordinates
		}
		if i > 0 && !path[i-1].IsNeighborOf(c) {
			return core.ErrInvalidPath
		}
	}
	return nil
}
