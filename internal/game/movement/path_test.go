package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/GridSkirmish/internal/game/core"
	"github.com/mitchelldurbincs/GridSkirmish/internal/testutil"
)

func TestSimplifyPath(t *testing.T) {
	tests := []struct {
		name     string
		in       []core.Coordinate
		expected []core.Coordinate
	}{
		{"right then up", testutil.Path(0, 0, 1, 0, 1, 1), testutil.Path(0, 0, 1, 1)},
		{"straight line untouched", testutil.Path(0, 0, 1, 0, 2, 0), testutil.Path(0, 0, 1, 0, 2, 0)},
		{"two cells untouched", testutil.Path(0, 0, 1, 0), testutil.Path(0, 0, 1, 0)},
		{"empty", nil, nil},
		{"staircase", testutil.Path(0, 0, 1, 0, 1, 1, 2, 1, 2, 2), testutil.Path(0, 0, 1, 1, 2, 2)},
		{"corner in the middle", testutil.Path(0, 0, 1, 0, 2, 0, 2, 1, 2, 2), testutil.Path(0, 0, 1, 0, 2, 1, 2, 2)},
		{"up then left", testutil.Path(3, 3, 3, 2, 2, 2), testutil.Path(3, 3, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyPath(tt.in)
			assert.Equal(t, tt.expected, got)
			for i := 0; i+2 < len(got); i++ {
				assert.False(t, got[i].IsDiagonalTo(got[i+2]), "triple left at %d", i)
			}
		})
	}
}

func TestSimplifyPath_DoesNotMutateInput(t *testing.T) {
	in := testutil.Path(0, 0, 1, 0, 1, 1)
	SimplifyPath(in)
	assert.Equal(t, testutil.Path(0, 0, 1, 0, 1, 1), in)
}

func TestValidatePath(t *testing.T) {
	grid := testutil.CreateSoilGrid(5, 5)
	start := core.Coordinate{X: 1, Y: 1}

	assert.NoError(t, ValidatePath(grid, start, testutil.Path(1, 1, 2, 2)))
	assert.ErrorIs(t, ValidatePath(grid, start, testutil.Path(1, 1)), core.ErrInvalidPath)
	assert.ErrorIs(t, ValidatePath(grid, start, testutil.Path(0, 0, 1, 1)), core.ErrInvalidPath)
	assert.ErrorIs(t, ValidatePath(grid, start, testutil.Path(1, 1, 1, 1)), core.ErrInvalidPath)
	assert.ErrorIs(t, ValidatePath(grid, start, testutil.Path(1, 1, 5, 1)), core.ErrInvalidCoordinates)
}

func TestValidatePath_StepsMustBeNeighbours(t *testing.T) {
	grid := testutil.CreateSoilGrid(6, 6)
	start := core.Coordinate{X: 1, Y: 0}

	tests := []struct {
		name string
		path []core.Coordinate
		ok   bool
	}{
		{"straight", testutil.Path(1, 0, 2, 0, 3, 0), true},
		{"diagonal", testutil.Path(1, 0, 2, 1, 3, 2), true},
		{"jump along a row", testutil.Path(1, 0, 4, 0), false},
		{"jump late in the path", testutil.Path(1, 0, 2, 0, 2, 1, 4, 3), false},
		{"knight move", testutil.Path(1, 0, 2, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(grid, start, tt.path)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, core.ErrInvalidPath)
			}
		})
	}
}
