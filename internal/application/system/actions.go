package system

import "github.com/younwookim/kinematic/internal/domain/curve"

// moveToProgressEpsilon is the per-tick horizontal progress below which a
// move-to action counts as stalled.
const moveToProgressEpsilon = 0.01

type jumpAction struct {
	active   bool
	released bool
	curve    curve.Curve
	elapsed  float64
	end      float64
}

type slideAction struct {
	active  bool
	dir     float64
	elapsed float64
}

type freezeAction struct {
	active    bool
	remaining float64
}

func (f *freezeAction) start(d float64) {
	*f = freezeAction{active: d > 0, remaining: d}
}

func (f *freezeAction) advance(dt float64) {
	if !f.active {
		return
	}
	f.remaining -= dt
	if f.remaining <= 0 {
		*f = freezeAction{}
	}
}

type moveToAction struct {
	active    bool
	target    float64
	tolerance float64
	lastX     float64
	stalled   float64
}

// jumpBuffer remembers an unusable jump press so it can fire on landing.
type jumpBuffer struct {
	active bool
	at     float64
}

func (b *jumpBuffer) set(now float64) {
	*b = jumpBuffer{active: true, at: now}
}

func (b *jumpBuffer) clear() {
	*b = jumpBuffer{}
}

func (b *jumpBuffer) valid(now, window float64) bool {
	return b.active && now-b.at <= window
}

func (b *jumpBuffer) expire(now, window float64) {
	if b.active && now-b.at > window {
		b.clear()
	}
}
