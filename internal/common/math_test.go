package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive number", 5, 5},
		{"negative number", -5, 5},
		{"zero", 0, 0},
		{"min int special case", math.MinInt32 + 1, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Abs(tt.input))
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		v, lo, hi, ex float64
	}{
		{"inside", 0.3, 0, 1, 0.3},
		{"below", -2, 0, 1, 0},
		{"above", 7.5, 0, 1, 1},
		{"on lower edge", 0, 0, 1, 0},
		{"on upper edge", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ex, Clamp(tt.v, tt.lo, tt.hi))
		})
	}

	assert.Equal(t, 29, Clamp(31, 0, 29))
}
