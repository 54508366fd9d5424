package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Basics(t *testing.T) {
	a := Vec2{3, 4}
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, 5.0, Vec2{}.Dist(a))
	assert.Equal(t, Vec2{6, 8}, a.Scale(2))
	assert.Equal(t, Vec2{1, 1}, a.Sub(Vec2{2, 3}))
	assert.InDelta(t, 0.6, a.Normalize().X, 1e-12)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestVec2_Lerp(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{55, 0}
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, Vec2{27.5, 0}, a.Lerp(b, 0.5))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestVec2_Heading(t *testing.T) {
	assert.InDelta(t, 0, Vec2{}.HeadingTo(Vec2{10, 0}), 1e-12)
	assert.InDelta(t, math.Pi/2, Vec2{}.HeadingTo(Vec2{0, 10}), 1e-12)
	v := FromHeading(math.Pi / 2)
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 1, v.Y, 1e-12)
}

func TestLerpAngle_ShortArc(t *testing.T) {
	// From just below +pi to just above -pi must pass through pi, not zero.
	from := math.Pi - 0.1
	to := -math.Pi + 0.1
	mid := LerpAngle(from, to, 0.5)
	assert.InDelta(t, math.Pi, mid, 1e-9)

	assert.InDelta(t, 0.1, LerpAngle(0, 1, 0.1), 1e-12)
	assert.InDelta(t, 1.0, LerpAngle(0, 1, 1), 1e-12)
}
