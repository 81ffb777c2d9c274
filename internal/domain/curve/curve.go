// Package curve implements time-keyed value curves used for speed ramps and
// jump profiles. Segments between keyframes are shaped with gween easing.
package curve

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Keyframe is a single point on a curve. Ease shapes the segment that ends at
// this keyframe; an empty name means linear.
type Keyframe struct {
	Time  float64 `yaml:"t" json:"t"`
	Value float64 `yaml:"v" json:"v"`
	Ease  string  `yaml:"ease,omitempty" json:"ease,omitempty"`
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// Curve is an immutable, time-sorted list of keyframes.
type Curve struct {
	keys  []Keyframe
	funcs []ease.TweenFunc
}

// New builds a curve from keyframes. Keyframes are sorted by time; an unknown
// easing name is an error.
func New(keys ...Keyframe) (Curve, error) {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	funcs := make([]ease.TweenFunc, len(sorted))
	for i, k := range sorted {
		fn, ok := easings[k.Ease]
		if !ok {
			return Curve{}, fmt.Errorf("unknown easing %q", k.Ease)
		}
		funcs[i] = fn
	}
	return Curve{keys: sorted, funcs: funcs}, nil
}

// MustNew is New for literal curves in code and tests.
func MustNew(keys ...Keyframe) Curve {
	c, err := New(keys...)
	if err != nil {
		panic(err)
	}
	return c
}

// Constant returns a flat curve.
func Constant(v float64) Curve {
	return MustNew(Keyframe{Time: 0, Value: v})
}

// Empty reports whether the curve has no keyframes.
func (c Curve) Empty() bool {
	return len(c.keys) == 0
}

// Keys returns a copy of the keyframes.
func (c Curve) Keys() []Keyframe {
	out := make([]Keyframe, len(c.keys))
	copy(out, c.keys)
	return out
}

// Duration returns the time of the last keyframe.
func (c Curve) Duration() float64 {
	if len(c.keys) == 0 {
		return 0
	}
	return c.keys[len(c.keys)-1].Time
}

// LastValue returns the value of the last keyframe.
func (c Curve) LastValue() float64 {
	if len(c.keys) == 0 {
		return 0
	}
	return c.keys[len(c.keys)-1].Value
}

// Evaluate samples the curve at t. Times outside the keyed range clamp to the
// first or last value.
func (c Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	switch {
	case n == 0:
		return 0
	case t <= c.keys[0].Time:
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t })
	from, to := c.keys[i-1], c.keys[i]
	span := to.Time - from.Time
	if span <= 0 {
		return to.Value
	}
	v := c.funcs[i](float32(t-from.Time), float32(from.Value), float32(to.Value-from.Value), float32(span))
	return float64(v)
}

// TimeOf returns the earliest time at which a monotonically increasing curve
// reaches v, searched by bisection. It is used to resume a ramp from a
// current speed.
func (c Curve) TimeOf(v float64) float64 {
	if len(c.keys) == 0 || v <= c.keys[0].Value {
		return 0
	}
	lo, hi := 0.0, c.Duration()
	if v >= c.Evaluate(hi) {
		return hi
	}
	for range 32 {
		mid := (lo + hi) / 2
		if c.Evaluate(mid) < v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}
