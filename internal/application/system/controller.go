package system

import (
	"math"

	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

// Clock provides simulation time in seconds.
type Clock interface {
	Now() float64
}

// Controller turns input into movement intent for one body. It runs in the
// update phase; the mover it drives runs in the physics phase.
type Controller struct {
	mover *Mover
	body  *entity.Body
	attrs *config.Attributes
	input InputSource
	clock Clock

	accelTime float64
	lastMoveX float64
	moving    bool

	jump       jumpAction
	slide      slideAction
	freeze     freezeAction
	moveTo     moveToAction
	jumpBuffer jumpBuffer

	coyote       bool
	leftGroundAt float64
}

// NewController validates its collaborators and registers itself as the
// mover's contact listener.
func NewController(mover *Mover, attrs *config.Attributes, input InputSource, clock Clock) (*Controller, error) {
	if mover == nil {
		return nil, ErrMissingBody
	}
	if attrs == nil {
		return nil, ErrMissingAttributes
	}
	if input == nil {
		return nil, ErrMissingInput
	}
	if clock == nil {
		return nil, ErrMissingClock
	}
	c := &Controller{
		mover: mover,
		body:  mover.Body(),
		attrs: attrs,
		input: input,
		clock: clock,
	}
	mover.SetListener(c)
	return c, nil
}

// Update reads input and feeds movement, jump and gravity to the mover.
func (c *Controller) Update(dt float64) {
	c.jumpBuffer.expire(c.clock.Now(), c.attrs.JumpBufferTime)
	c.freeze.advance(dt)

	var axis float64
	if !c.freeze.active {
		axis = c.input.HorizontalAxis()
		if c.input.JumpPressed() {
			c.Jump()
		}
		if c.input.JumpReleased() {
			c.ReleaseJump()
		}
		if s, ok := c.input.(SlideSource); ok && s.SlidePressed() {
			c.Slide()
		}
	}
	if c.moveTo.active {
		axis = c.advanceMoveTo(dt)
	}

	if c.slide.active {
		c.advanceSlide(dt)
	} else {
		c.updateHorizontal(axis, dt)
	}
	c.advanceJump(dt)
	c.applyGravity(dt)
	c.updateApex()
}

func (c *Controller) updateHorizontal(axis, dt float64) {
	speed := c.attrs.SpeedCurve(c.body.Grounded)

	var x float64
	switch {
	case axis != 0:
		rate := 1.0
		if !c.body.Grounded {
			rate = c.attrs.AirAccelerationCoefficient
		}
		c.accelTime = math.Min(c.accelTime+dt*rate, speed.Duration())
		target := axis * speed.Evaluate(c.accelTime)
		if geom.Opposite(target, c.lastMoveX) {
			// About-turn: blend through zero instead of flipping.
			x = geom.MoveTowards(c.lastMoveX, target, c.attrs.AboutTurnRate*dt)
			c.accelTime = speed.TimeOf(math.Abs(x))
		} else {
			x = target
		}
	case c.lastMoveX != 0:
		c.accelTime = math.Max(c.accelTime-dt*c.attrs.DecelerationRate, 0)
		if c.accelTime > 0 {
			x = geom.Sign(c.lastMoveX) * speed.Evaluate(c.accelTime)
		}
	}

	c.lastMoveX = x
	if x != 0 {
		c.mover.MoveHorizontally(x)
	}

	moving := x != 0
	if moving != c.moving {
		c.moving = moving
		if moving {
			c.mover.notifier.Notify(EventStartMoving)
		} else {
			c.mover.notifier.Notify(EventStopMoving)
		}
	}
}

func (c *Controller) applyGravity(dt float64) {
	if c.body.Grounded || c.attrs.Gravity == 0 {
		return
	}
	g := c.attrs.Gravity
	switch {
	case c.body.Wall != entity.WallNone && c.attrs.WallStuckGravityCoefficient > 0:
		g *= c.attrs.WallStuckGravityCoefficient
	case c.body.AtApex && c.attrs.ApexGravityCoefficient > 0:
		g *= c.attrs.ApexGravityCoefficient
	}
	c.mover.AddForce(geom.Vec{Y: -g * dt})

	if limit := c.attrs.MaxFallSpeed; limit > 0 && c.body.Velocity.Force.Y < -limit {
		c.body.Velocity.Force.Y = -limit
	}
}

func (c *Controller) updateApex() {
	if !c.body.AtApex {
		return
	}
	if c.body.Grounded || c.body.Wall != entity.WallNone || c.body.Velocity.Force.Y < -c.attrs.ApexFallThreshold {
		c.body.AtApex = false
	}
}

func (c *Controller) inCoyoteTime() bool {
	return c.coyote && c.clock.Now()-c.leftGroundAt <= c.attrs.CoyoteTime
}

func (c *Controller) consumeBufferedJump() {
	if !c.jumpBuffer.valid(c.clock.Now(), c.attrs.JumpBufferTime) {
		c.jumpBuffer.clear()
		return
	}
	c.jumpBuffer.clear()
	c.Jump()
}

// OnGrounded ends any jump and fires a buffered one.
func (c *Controller) OnGrounded() {
	c.body.AtApex = false
	c.coyote = false
	c.jump = jumpAction{}
	c.consumeBufferedJump()
}

// OnLeftGround opens the coyote window unless the body left by jumping.
func (c *Controller) OnLeftGround() {
	if c.jump.active {
		return
	}
	c.coyote = true
	c.leftGroundAt = c.clock.Now()
}

// OnWallStuck drops horizontal momentum and fires a buffered jump as a
// wall jump.
func (c *Controller) OnWallStuck(entity.WallState) {
	c.lastMoveX = 0
	c.accelTime = 0
	c.body.AtApex = false
	c.consumeBufferedJump()
}

// OnCeiling cuts the jump short.
func (c *Controller) OnCeiling() {
	c.jump = jumpAction{}
}

// AccelerationTime returns the time into the speed curve.
func (c *Controller) AccelerationTime() float64 { return c.accelTime }

// LastMovementX returns the horizontal movement fed on the last update.
func (c *Controller) LastMovementX() float64 { return c.lastMoveX }

// Jumping reports whether a jump or wall jump curve is playing.
func (c *Controller) Jumping() bool { return c.jump.active }

// Sliding reports whether a slide is in progress.
func (c *Controller) Sliding() bool { return c.slide.active }

// Frozen reports whether horizontal input is currently ignored.
func (c *Controller) Frozen() bool { return c.freeze.active }

// MovingTo reports whether a move-to target is being approached.
func (c *Controller) MovingTo() bool { return c.moveTo.active }

// JumpBuffered reports whether an early jump press is waiting for landing.
func (c *Controller) JumpBuffered() bool { return c.jumpBuffer.active }
