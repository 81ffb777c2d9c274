package system

import (
	"math"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

// castMove casts the body along vel, records every simultaneous hit and
// returns the primary one.
func (m *Mover) castMove(vel geom.Vec) (entity.CastHit, bool) {
	m.stats.ResolveCasts++
	n := m.caster.Cast(m.body.WorldShape(), vel, m.extraCastBuffer[:])
	for i := 0; i < n; i++ {
		m.castBuffer.Add(m.extraCastBuffer[i])
	}
	if n == 0 {
		return entity.CastHit{}, false
	}
	return m.extraCastBuffer[0], true
}

// probe casts without recording hits.
func (m *Mover) probe(movement geom.Vec) (entity.CastHit, bool) {
	if geom.IsNull(movement) {
		return entity.CastHit{}, false
	}
	m.stats.ProbeCasts++
	return m.caster.CastSingle(m.body.WorldShape(), movement)
}

func (m *Mover) translate(d geom.Vec) {
	m.body.Position = m.body.Position.Add(d)
}

// advance moves along vel up to the contact offset before hit and returns
// the part of vel not travelled.
func (m *Mover) advance(vel geom.Vec, hit entity.CastHit) geom.Vec {
	dir, length := geom.Direction(vel)
	d := math.Min(safeDistance(hit, dir, m.settings.ContactOffset), length)
	m.translate(dir.Mult(d))
	return dir.Mult(length - d)
}

func (m *Mover) stop(vel geom.Vec) {
	hit, ok := m.castMove(vel)
	if !ok {
		m.translate(vel)
		return
	}
	m.advance(vel, hit)
	m.body.Velocity.Force = geom.Zero
}

func (m *Mover) slide(vel geom.Vec) {
	if m.body.Grounded {
		vel = m.alongGround(vel)
	}
	m.slideStep(vel, 0)

	f := &m.body.Velocity.Force
	groundMin := m.settings.GroundMinYNormal
	for _, h := range m.castBuffer.Hits() {
		n := h.Normal
		if math.Abs(n.X) == 1 && geom.Opposite(f.X, n.X) {
			f.X = 0
		}
		if n.Y > groundMin && f.Y < 0 {
			f.Y = 0
		}
		if n.Y < -groundMin && f.Y > 0 {
			f.Y = 0
		}
	}
}

// alongGround re-expresses a grounded velocity in the ground frame so
// horizontal input follows slopes.
func (m *Mover) alongGround(vel geom.Vec) geom.Vec {
	n := m.body.GroundNormal
	out := geom.Tangent(n).Mult(vel.X)
	if vel.Y < 0 {
		return out.Add(n.Mult(vel.Y))
	}
	return out.Add(geom.Up.Mult(vel.Y))
}

func (m *Mover) slideStep(vel geom.Vec, depth int) {
	if depth > m.settings.MaxRecursion {
		m.snapToGround()
		return
	}
	if geom.IsNull(vel) {
		return
	}

	hit, ok := m.castMove(vel)
	if !ok {
		m.translate(vel)
		m.snapToGround()
		return
	}

	rest := m.advance(vel, hit)
	if m.climbStep(hit, rest) {
		return
	}
	m.slideStep(m.slideAlong(rest, hit.Normal), depth+1)
}

// slideAlong redirects what is left of a move after hitting a surface with
// normal n. On walkable ground a move that mostly follows the surface keeps
// its full length; anything else loses the component into the surface.
func (m *Mover) slideAlong(rest, n geom.Vec) geom.Vec {
	if m.body.Grounded && n.Y >= m.settings.GroundMinYNormal {
		t := geom.Tangent(n)
		along := rest.Dot(t)
		if math.Abs(along) >= math.Abs(rest.Dot(n)) {
			return t.Mult(geom.Sign(along) * rest.Length())
		}
	}
	return geom.RemoveComponent(rest, n)
}

// climbStep tries to lift a grounded body over a low vertical obstacle. On
// failure the horizontal drive into the obstacle is cancelled.
func (m *Mover) climbStep(hit entity.CastHit, rest geom.Vec) bool {
	s := m.settings
	if !m.body.Grounded || s.ClimbHeight <= 0 || hit.Normal.Y != 0 {
		return false
	}
	if rest.Y > 0 || rest.X == 0 || math.Abs(rest.X) < math.Abs(rest.Y) {
		return false
	}

	start := m.body.Position
	lift := geom.Vec{Y: s.ClimbHeight}
	if _, blocked := m.probe(lift); !blocked {
		m.translate(lift)
		across := geom.Vec{X: rest.X}
		block, ok := m.probe(across)
		switch {
		case !ok:
			m.translate(across)
			m.settleOnStep()
			return true
		case block.Collider != hit.Collider && safeDistance(block, geom.Vec{X: geom.Sign(rest.X)}, s.ContactOffset) > 0:
			m.advance(across, block)
			m.settleOnStep()
			return true
		}
		m.body.Position = start
	}

	m.body.Velocity.Movement.X = 0
	m.body.Velocity.Force.X = 0
	return false
}

func (m *Mover) settleOnStep() {
	down := geom.Vec{Y: -(m.settings.ClimbHeight + 2*m.settings.ContactOffset)}
	hit, ok := m.probe(down)
	if !ok {
		return
	}
	m.advance(down, hit)
	m.castBuffer.Add(hit)
}

// snapToGround keeps a grounded body glued to the floor when walking down
// slopes, over the crest of a ramp or off small ledges. Only the body's own
// upward drive (a jump) suppresses it; motion re-expressed along a slope does
// not.
func (m *Mover) snapToGround() {
	s := m.settings
	v := m.body.Velocity
	if !m.body.Grounded || v.Force.Y+v.Movement.Y+v.InstantForce.Y > 0 || s.SnapHeight <= 0 {
		return
	}
	down := geom.Vec{Y: -s.SnapHeight}
	hit, ok := m.probe(down)
	if !ok || hit.Normal.Y < s.GroundMinYNormal {
		return
	}
	m.advance(down, hit)
	m.castBuffer.Add(hit)
}

func (m *Mover) project(vel geom.Vec) {
	m.projectStep(vel, 0)

	f := m.body.Velocity.Force
	for _, h := range m.castBuffer.Hits() {
		if f.Dot(h.Normal) < 0 {
			f = geom.RemoveComponent(f, h.Normal)
		}
	}
	m.body.Velocity.Force = f
}

func (m *Mover) projectStep(vel geom.Vec, depth int) {
	if depth > m.settings.MaxRecursion || geom.IsNull(vel) {
		return
	}
	hit, ok := m.castMove(vel)
	if !ok {
		m.translate(vel)
		return
	}
	rest := m.advance(vel, hit)
	m.projectStep(geom.RemoveComponent(rest, hit.Normal), depth+1)
}

// resolveCustom hands the velocity to the installed resolver. Without one
// the body stays put.
func (m *Mover) resolveCustom(vel geom.Vec) {
	if m.custom == nil {
		return
	}
	out := m.custom.Resolve(m.body, vel)
	if geom.IsNull(out) {
		return
	}
	m.stop(out)
}
