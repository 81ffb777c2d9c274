// Package geom provides the vector helpers and convex shape math used by the
// movement core. Vectors are cp.Vector values in a y-up world.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is the 2D vector type used across the engine.
type Vec = cp.Vector

// Up is the world-up unit vector.
var Up = Vec{X: 0, Y: 1}

// Zero is the null vector.
var Zero = Vec{}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// SameSign reports whether a and b are both non-zero with the same sign.
func SameSign(a, b float64) bool {
	return a*b > 0
}

// Opposite reports whether a and b are both non-zero with opposite signs.
func Opposite(a, b float64) bool {
	return a*b < 0
}

// IsNull reports whether v is the zero vector.
func IsNull(v Vec) bool {
	return v.X == 0 && v.Y == 0
}

// Rotate rotates v counter-clockwise by degrees.
func Rotate(v Vec, degrees float64) Vec {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Perpendicular returns v rotated by -90 degrees, so the perpendicular of
// world-up points toward positive x.
func Perpendicular(v Vec) Vec {
	return Vec{X: v.Y, Y: -v.X}
}

// Tangent returns the unit surface tangent of normal n, oriented toward
// positive x. A vertical tangent (wall) is oriented upward.
func Tangent(n Vec) Vec {
	t := Perpendicular(n)
	if t.X < 0 || (t.X == 0 && t.Y < 0) {
		t = t.Neg()
	}
	return t
}

// MoveTowards moves current toward target by at most maxDelta without overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// RemoveComponent removes the component of v along the unit vector n.
func RemoveComponent(v, n Vec) Vec {
	return v.Sub(n.Mult(v.Dot(n)))
}

// Direction returns the unit vector of v and its length. The zero vector
// yields a zero direction.
func Direction(v Vec) (Vec, float64) {
	l := v.Length()
	if l == 0 {
		return Zero, 0
	}
	return v.Mult(1 / l), l
}
