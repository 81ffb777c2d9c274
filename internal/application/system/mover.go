package system

import (
	"math"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

// CustomResolver decides the displacement of a body using the custom
// collision system. The returned displacement is applied with stop-on-hit
// semantics so the body never ends inside an obstacle.
type CustomResolver interface {
	Resolve(body *entity.Body, velocity geom.Vec) geom.Vec
}

// ContactListener is told about contact transitions after each move.
type ContactListener interface {
	OnGrounded()
	OnLeftGround()
	OnWallStuck(wall entity.WallState)
	OnCeiling()
}

// MoveStats counts the casts issued by the last Move.
type MoveStats struct {
	ResolveCasts int // casts of the displacement itself
	ProbeCasts   int // ground snap, step climb and contact probes
}

// Mover accumulates velocity for a body and moves it through the obstacle
// set with the body's collision system.
//
// The cast buffers are owned by the mover. Hits returned by Hits are only
// valid until the next Move.
type Mover struct {
	body     *entity.Body
	caster   *Caster
	settings config.MoverSettings
	custom   CustomResolver
	listener ContactListener
	notifier Notifier

	castBuffer      entity.CastBuffer
	extraCastBuffer [entity.CastBufferCapacity]entity.CastHit

	// [0] is the previous frame, [1] the one before.
	forceHistory    [2]float64
	velocityHistory [2]float64
	intentX         float64

	stats MoveStats
}

// NewMover validates its collaborators and creates a mover.
func NewMover(body *entity.Body, caster *Caster, settings config.MoverSettings) (*Mover, error) {
	if body == nil {
		return nil, ErrMissingBody
	}
	if len(body.Shape) < 3 {
		return nil, ErrMissingCollider
	}
	if caster == nil || caster.obstacles == nil {
		return nil, ErrMissingObstacles
	}
	if settings.MaxRecursion < 0 {
		settings.MaxRecursion = 0
	}
	return &Mover{
		body:     body,
		caster:   caster,
		settings: settings,
		notifier: nopNotifier{},
	}, nil
}

// SetCustomResolver installs the resolver used by CollisionCustom.
func (m *Mover) SetCustomResolver(r CustomResolver) {
	m.custom = r
}

// SetListener installs the contact listener.
func (m *Mover) SetListener(l ContactListener) {
	m.listener = l
}

// SetNotifier installs the event sink. A nil notifier drops events.
func (m *Mover) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	m.notifier = n
}

// Body returns the moved body.
func (m *Mover) Body() *entity.Body { return m.body }

// Settings returns the mover tuning.
func (m *Mover) Settings() config.MoverSettings { return m.settings }

// Stats returns the cast counts of the last move.
func (m *Mover) Stats() MoveStats { return m.stats }

// Hits returns the hits recorded by the last move.
func (m *Mover) Hits() []entity.CastHit { return m.castBuffer.Hits() }

// AddForce accumulates a durable force.
func (m *Mover) AddForce(v geom.Vec) {
	m.body.Velocity.Force = m.body.Velocity.Force.Add(v)
}

// AddInstantForce accumulates a displacement applied once on the next move.
func (m *Mover) AddInstantForce(v geom.Vec) {
	m.body.Velocity.InstantForce = m.body.Velocity.InstantForce.Add(v)
}

// MoveHorizontally adds self-driven horizontal movement and turns the body
// toward it.
func (m *Mover) MoveHorizontally(x float64) {
	m.body.Velocity.Movement.X += x
	if x != 0 && geom.Sign(x) != m.body.Facing.Sign() {
		m.body.Facing = entity.Side(geom.Sign(x))
		m.notifier.Notify(EventFacingChanged)
	}
}

// MoveVertically adds self-driven vertical movement.
func (m *Mover) MoveVertically(y float64) {
	m.body.Velocity.Movement.Y += y
}

// Teleport places the body at position and clears its motion state.
func (m *Mover) Teleport(position geom.Vec) {
	m.body.Position = position
	m.body.Velocity = entity.Velocity{}
	m.body.Grounded = false
	m.body.Wall = entity.WallNone
	m.body.GroundNormal = geom.Up
	m.body.AtApex = false
	m.forceHistory = [2]float64{}
	m.velocityHistory = [2]float64{}
	m.castBuffer.Reset()
}

// ComputeVelocityBeforeMovement decays force and lets force and movement
// cancel each other. It runs once per frame before the move is resolved.
func (m *Mover) ComputeVelocityBeforeMovement(dt float64) {
	v := &m.body.Velocity

	if v.Force.X != 0 {
		maxDelta := m.settings.AirDeceleration
		if m.body.Grounded {
			maxDelta = m.settings.GroundDeceleration
		}

		if geom.Opposite(v.Movement.X, v.Force.X) {
			maxDelta = math.Max(maxDelta, 2*math.Abs(v.Movement.X))
			v.Movement.X = geom.MoveTowards(v.Movement.X, 0, math.Abs(v.Force.X)*dt)
		} else if v.Movement.X != 0 {
			v.Movement.X = geom.Sign(v.Movement.X) * math.Max(math.Abs(v.Movement.X)-math.Abs(v.Force.X), 0)
		}

		other := m.velocityHistory[1] - m.forceHistory[1]
		if geom.Opposite(other, v.Force.X) {
			v.Force.X = geom.MoveTowards(v.Force.X, 0, math.Abs(other))
		}

		v.Force.X = geom.MoveTowards(v.Force.X, 0, maxDelta*dt)
	}

	m.forceHistory[1], m.forceHistory[0] = m.forceHistory[0], v.Force.X
	m.velocityHistory[1], m.velocityHistory[0] = m.velocityHistory[0], v.Force.X+v.InstantForce.X+v.Movement.X

	if geom.Opposite(v.Movement.Y, v.Force.Y) {
		my := v.Movement.Y
		v.Movement.Y = geom.MoveTowards(v.Movement.Y, 0, math.Abs(v.Force.Y))
		v.Force.Y = geom.MoveTowards(v.Force.Y, 0, math.Abs(my)*dt)
	}
}

// Velocity returns the raw displacement of this frame. At the jump apex a
// falling body only gets half of its vertical force and movement.
func (m *Mover) Velocity(dt float64) geom.Vec {
	v := m.body.Velocity
	out := v.Force.Add(v.Movement).Mult(dt).Add(v.InstantForce)
	if m.body.AtApex && v.Force.Y < 0 {
		out.Y = (v.Force.Y+v.Movement.Y)*dt*0.5 + v.InstantForce.Y
	}
	return out
}

// Move advances the body by one frame.
func (m *Mover) Move(dt float64) {
	m.stats = MoveStats{}
	m.ComputeVelocityBeforeMovement(dt)
	vel := m.Velocity(dt)
	m.castBuffer.Reset()
	m.intentX = m.body.Velocity.Movement.X

	if !geom.IsNull(vel) {
		switch m.body.System {
		case entity.CollisionStop:
			m.stop(vel)
		case entity.CollisionSlide:
			m.slide(vel)
		case entity.CollisionProject:
			m.project(vel)
		case entity.CollisionCustom:
			m.resolveCustom(vel)
		}
		m.updateContacts()
	}

	m.body.Velocity.InstantForce = geom.Zero
	m.body.Velocity.Movement = geom.Zero
}
