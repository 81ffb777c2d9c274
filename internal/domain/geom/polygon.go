package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Polygon is a convex polygon with counter-clockwise vertices.
type Polygon []Vec

// Rect returns the axis-aligned rectangle with its minimum corner at (x, y).
func Rect(x, y, w, h float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

// SlopeUpRight returns a right triangle whose hypotenuse rises toward +x.
func SlopeUpRight(x, y, w, h float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
	}
}

// SlopeUpLeft returns a right triangle whose hypotenuse rises toward -x.
func SlopeUpLeft(x, y, w, h float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x, Y: y + h},
	}
}

// Translate returns a copy of p moved by offset.
func (p Polygon) Translate(offset Vec) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(offset)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of p.
func (p Polygon) Bounds() cp.BB {
	if len(p) == 0 {
		return cp.BB{}
	}
	bb := cp.BB{L: p[0].X, B: p[0].Y, R: p[0].X, T: p[0].Y}
	for _, v := range p[1:] {
		bb.L = math.Min(bb.L, v.X)
		bb.B = math.Min(bb.B, v.Y)
		bb.R = math.Max(bb.R, v.X)
		bb.T = math.Max(bb.T, v.Y)
	}
	return bb
}

// Normals returns the outward unit normal of every edge.
func (p Polygon) Normals() []Vec {
	out := make([]Vec, 0, len(p))
	for i := range p {
		e := p[(i+1)%len(p)].Sub(p[i])
		l := e.Length()
		if l == 0 {
			continue
		}
		out = append(out, Vec{X: e.Y / l, Y: -e.X / l})
	}
	return out
}

// Project returns the interval covered by p on axis.
func (p Polygon) Project(axis Vec) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// SweptBounds returns the box covering bb and bb moved by delta.
func SweptBounds(bb cp.BB, delta Vec) cp.BB {
	return cp.BB{
		L: math.Min(bb.L, bb.L+delta.X),
		B: math.Min(bb.B, bb.B+delta.Y),
		R: math.Max(bb.R, bb.R+delta.X),
		T: math.Max(bb.T, bb.T+delta.Y),
	}
}
