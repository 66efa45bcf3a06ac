// Package vmath provides the small vector and overlap helpers used by world-space systems.
package vmath

import "math"

// Vec2 is a 2D extent or offset in world units.
type Vec2 struct {
	X, Y float64
}

// Splat returns a Vec2 with both components set to v.
func Splat(v float64) Vec2 {
	return Vec2{X: v, Y: v}
}

// Vec3 is a world-space position. Z orders drawing only and never takes part in overlap tests.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// ApproxEqual reports whether the X and Y components of a and b differ by less than eps.
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
