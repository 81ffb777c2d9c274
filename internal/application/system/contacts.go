package system

import (
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

// updateContacts derives grounded, ceiling and wall state from the hits of
// the last move plus short probes, and reports transitions.
func (m *Mover) updateContacts() {
	b := m.body
	groundMin := m.settings.GroundMinYNormal
	wasGrounded := b.Grounded

	grounded, ceiling := false, false
	for _, h := range m.castBuffer.Hits() {
		if h.Normal.Y >= groundMin {
			grounded = true
			b.GroundNormal = h.Normal
		}
		if h.Normal.Y <= -groundMin {
			ceiling = true
		}
	}
	if !grounded {
		hit, ok := m.probe(b.GroundNormal.Neg().Mult(2 * m.settings.ContactOffset))
		if ok && hit.Normal.Y >= groundMin {
			grounded = true
			b.GroundNormal = hit.Normal
		} else if wasGrounded {
			b.GroundNormal = geom.Up
		}
	}

	if grounded != wasGrounded {
		b.Grounded = grounded
		if grounded {
			b.Velocity.Force.X *= m.settings.GroundedForceMultiplier
			b.Wall = entity.WallNone
			m.notifier.Notify(EventLanded)
			if m.listener != nil {
				m.listener.OnGrounded()
			}
		} else {
			m.notifier.Notify(EventLeftGround)
			if m.listener != nil {
				m.listener.OnLeftGround()
			}
		}
	}

	if ceiling && m.listener != nil {
		m.listener.OnCeiling()
	}

	m.updateWall()
}

func (m *Mover) updateWall() {
	b := m.body
	if b.Grounded {
		b.Wall = entity.WallNone
		return
	}

	side := m.wallProbeSide()
	distance := 2 * m.settings.ContactOffset
	wall := m.ProbeWall(side, distance)
	if wall == entity.WallNone {
		wall = m.ProbeWall(-side, distance)
	}
	if wall == b.Wall {
		return
	}

	b.Wall = wall
	if wall == entity.WallNone {
		return
	}

	b.Velocity.Movement = geom.Zero
	away := entity.Side(-wall)
	if b.Facing != away {
		b.Facing = away
		m.notifier.Notify(EventFacingChanged)
	}
	m.notifier.Notify(EventWallStuck)
	if m.listener != nil {
		m.listener.OnWallStuck(wall)
	}
}

func (m *Mover) wallProbeSide() float64 {
	switch {
	case m.body.Wall != entity.WallNone:
		return float64(m.body.Wall)
	case m.intentX != 0:
		return geom.Sign(m.intentX)
	default:
		return m.body.Facing.Sign()
	}
}

// ProbeWall reports the wall on side (-1 left, 1 right) within distance.
// Only a vertical face counts as a wall.
func (m *Mover) ProbeWall(side, distance float64) entity.WallState {
	if side == 0 || distance <= 0 {
		return entity.WallNone
	}
	hit, ok := m.probe(geom.Vec{X: side * distance})
	if !ok || hit.Normal.X != -side || hit.Normal.Y != 0 {
		return entity.WallNone
	}
	return entity.WallState(side)
}
