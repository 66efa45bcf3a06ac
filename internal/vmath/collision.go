package vmath

import "math"

// Overlaps reports whether two centred axis-aligned boxes intersect.
// Boxes that only touch along an edge do not overlap.
func Overlaps(aPos Vec3, aSize Vec2, bPos Vec3, bSize Vec2) bool {
	dx := math.Abs(aPos.X - bPos.X)
	dy := math.Abs(aPos.Y - bPos.Y)
	return dx < (aSize.X+bSize.X)/2 && dy < (aSize.Y+bSize.Y)/2
}
