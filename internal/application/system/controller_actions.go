package system

import (
	"math"

	"github.com/younwookim/kinematic/internal/domain/curve"
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
)

// Jump starts the best available jump: a wall jump when stuck to or near a
// wall, a normal jump from the ground or within coyote time. Otherwise the
// press is buffered and Jump returns false.
func (c *Controller) Jump() bool {
	b := c.body
	switch {
	case b.Wall != entity.WallNone:
		c.startWallJump(b.Wall)
	case !c.jump.active && (b.Grounded || c.inCoyoteTime()):
		c.beginJump(c.attrs.Jump)
		c.mover.notifier.Notify(EventJump)
	default:
		wall := c.nearbyWall()
		if wall == entity.WallNone {
			c.jumpBuffer.set(c.clock.Now())
			return false
		}
		c.startWallJump(wall)
	}
	return true
}

// ReleaseJump shortens the current jump, never below the minimum ratio of
// the jump curve.
func (c *Controller) ReleaseJump() {
	if !c.jump.active || c.jump.released {
		return
	}
	c.jump.released = true
	c.jump.end = math.Max(c.jump.elapsed, c.attrs.MinJumpRatio*c.jump.curve.Duration())
}

func (c *Controller) beginJump(cv curve.Curve) {
	c.jump = jumpAction{active: true, curve: cv, end: cv.Duration()}
	c.coyote = false
	c.jumpBuffer.clear()
	c.body.AtApex = false
	if c.body.Velocity.Force.Y < 0 {
		c.body.Velocity.Force.Y = 0
	}
}

func (c *Controller) startWallJump(wall entity.WallState) {
	away := -float64(wall)
	c.lastMoveX = 0
	c.accelTime = 0
	c.slide = slideAction{}
	c.body.Velocity.Movement = geom.Zero
	c.body.Velocity.Force.X = 0
	c.mover.AddForce(geom.Vec{X: away * c.attrs.WallJumpForce})
	c.body.Facing = entity.Side(away)
	c.freeze.start(c.attrs.WallJumpFreezeTime)
	c.beginJump(c.attrs.WallJump)
	c.mover.notifier.Notify(EventWallJump)
}

// nearbyWall looks for a wall within the wall-jump gap, facing side first.
func (c *Controller) nearbyWall() entity.WallState {
	gap := c.attrs.WallJumpGap
	if c.body.Grounded || gap <= 0 {
		return entity.WallNone
	}
	side := c.body.Facing.Sign()
	if w := c.mover.ProbeWall(side, gap); w != entity.WallNone {
		return w
	}
	return c.mover.ProbeWall(-side, gap)
}

func (c *Controller) advanceJump(dt float64) {
	if !c.jump.active {
		return
	}
	c.mover.MoveVertically(c.jump.curve.Evaluate(c.jump.elapsed))
	c.jump.elapsed += dt
	if c.jump.elapsed >= c.jump.end {
		c.jump = jumpAction{}
		c.body.AtApex = true
	}
}

// Slide starts a ground slide in the facing direction. It runs the full
// slide curve unless stopped.
func (c *Controller) Slide() bool {
	if !c.body.Grounded || c.jump.active || c.slide.active || c.attrs.Slide.Empty() {
		return false
	}
	c.slide = slideAction{active: true, dir: c.body.Facing.Sign()}
	c.lastMoveX = 0
	c.accelTime = 0
	c.mover.notifier.Notify(EventSlide)
	return true
}

func (c *Controller) advanceSlide(dt float64) {
	c.mover.MoveHorizontally(c.slide.dir * c.attrs.Slide.Evaluate(c.slide.elapsed))
	c.slide.elapsed += dt
	if c.slide.elapsed >= c.attrs.Slide.Duration() {
		c.slide = slideAction{}
	}
}

// FreezeInput ignores input for d seconds.
func (c *Controller) FreezeInput(d float64) {
	c.freeze.start(d)
}

// MoveTo drives the body horizontally toward x until it is within
// tolerance or stops making progress.
func (c *Controller) MoveTo(x, tolerance float64) {
	c.moveTo = moveToAction{
		active:    true,
		target:    x,
		tolerance: math.Max(tolerance, 0),
		lastX:     c.body.Position.X,
	}
}

func (c *Controller) advanceMoveTo(dt float64) float64 {
	mt := &c.moveTo
	pos := c.body.Position.X
	delta := mt.target - pos
	if math.Abs(delta) <= mt.tolerance {
		c.moveTo = moveToAction{}
		c.mover.notifier.Notify(EventMoveToReached)
		return 0
	}

	if math.Abs(pos-mt.lastX) < moveToProgressEpsilon {
		mt.stalled += dt
	} else {
		mt.stalled = 0
	}
	mt.lastX = pos
	if limit := c.attrs.MoveToStallTime; limit > 0 && mt.stalled >= limit {
		c.moveTo = moveToAction{}
		c.mover.notifier.Notify(EventMoveToBlocked)
		return 0
	}
	return geom.Sign(delta)
}

// StopJump ends the active jump and drops a buffered jump.
func (c *Controller) StopJump() {
	c.jump = jumpAction{}
	c.jumpBuffer.clear()
}

// StopSlide ends the active slide and drops a buffered jump.
func (c *Controller) StopSlide() {
	c.slide = slideAction{}
	c.jumpBuffer.clear()
}

// StopMoveTo abandons the move-to target and drops a buffered jump.
func (c *Controller) StopMoveTo() {
	c.moveTo = moveToAction{}
	c.jumpBuffer.clear()
}

// Stop cancels every running action.
func (c *Controller) Stop() {
	c.StopJump()
	c.StopSlide()
	c.StopMoveTo()
	c.freeze = freezeAction{}
}
