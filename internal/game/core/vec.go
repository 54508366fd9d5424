package core

import "math"

// Vec2 is a continuous position or direction in world (pixel) space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }
func (v Vec2) Heading() float64 { return math.Atan2(v.Y, v.X) }
func (v Vec2) HeadingTo(o Vec2) float64 { return o.Sub(v).Heading() }

// Normalize returns the unit vector in v's direction, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp interpolates linearly between v and o; t=0 yields v, t=1 yields o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// FromHeading returns the unit vector pointing along heading (radians).
func FromHeading(heading float64) Vec2 {
	return Vec2{math.Cos(heading), math.Sin(heading)}
}

// LerpAngle moves from toward to by fraction t along the shorter arc.
func LerpAngle(from, to, t float64) float64 {
	diff := math.Remainder(to-from, 2*math.Pi)
	return from + diff*t
}
