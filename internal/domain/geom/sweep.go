package geom

import "math"

// Sweep computes when the convex polygon a, moving by delta, first touches
// the static convex polygon b. It returns the fraction of delta travelled
// before contact and the surface normal of b at the contact.
//
// Polygons that already overlap report t=0 with the normal of least
// penetration, but only when delta points into b; moving out is free.
func Sweep(a Polygon, delta Vec, b Polygon) (t float64, normal Vec, ok bool) {
	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	minDepth := math.Inf(1)
	var enterNormal, depthNormal Vec

	for pass := 0; pass < 2; pass++ {
		axes := a.Normals()
		if pass == 1 {
			axes = b.Normals()
		}
		for _, axis := range axes {
			aLo, aHi := a.Project(axis)
			bLo, bHi := b.Project(axis)
			v := delta.Dot(axis)

			var t0, t1 float64
			var n Vec
			switch {
			case aHi < bLo:
				if v <= 0 {
					return 0, Zero, false
				}
				t0, t1 = (bLo-aHi)/v, (bHi-aLo)/v
				n = axis.Neg()
			case bHi < aLo:
				if v >= 0 {
					return 0, Zero, false
				}
				t0, t1 = (bHi-aLo)/v, (bLo-aHi)/v
				n = axis
			default:
				t0 = math.Inf(-1)
				switch {
				case v > 0:
					t1 = (bHi - aLo) / v
				case v < 0:
					t1 = (bLo - aHi) / v
				default:
					t1 = math.Inf(1)
				}
				low, high := aHi-bLo, bHi-aLo
				if low < high {
					if low < minDepth {
						minDepth, depthNormal = low, axis.Neg()
					}
				} else if high < minDepth {
					minDepth, depthNormal = high, axis
				}
			}

			if t0 > tEnter {
				tEnter, enterNormal = t0, n
			}
			if t1 < tExit {
				tExit = t1
			}
			if tEnter > tExit {
				return 0, Zero, false
			}
		}
	}

	if math.IsInf(tEnter, -1) {
		if delta.Dot(depthNormal) >= 0 {
			return 0, Zero, false
		}
		return 0, depthNormal, true
	}
	if tEnter > 1 {
		return 0, Zero, false
	}
	return tEnter, enterNormal, true
}
