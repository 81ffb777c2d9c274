package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/kinematic/internal/domain/geom"
)

// Side is the horizontal facing of a body.
type Side int

const (
	SideLeft  Side = -1
	SideRight Side = 1
)

// Sign returns the side as -1 or 1.
func (s Side) Sign() float64 {
	return float64(s)
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	return -s
}

// WallState tells which side a wall is touching while airborne.
type WallState int

const (
	WallLeft  WallState = -1
	WallNone  WallState = 0
	WallRight WallState = 1
)

// Velocity holds the three contributions to a body's frame displacement.
type Velocity struct {
	Force        geom.Vec // durable, decays toward zero
	InstantForce geom.Vec // applied once, reset after the move
	Movement     geom.Vec // self-driven intent, reset after the move
}

// IsNull reports whether no contribution is set.
func (v Velocity) IsNull() bool {
	return geom.IsNull(v.Force) && geom.IsNull(v.InstantForce) && geom.IsNull(v.Movement)
}

// Body represents the physical state of a movable entity.
// Position is the world position of the shape's local origin. It is only
// written by the collision resolver.
type Body struct {
	Position geom.Vec
	Shape    geom.Polygon // local space

	Facing   Side
	Grounded bool
	Wall     WallState
	System   CollisionSystem

	Velocity     Velocity
	GroundNormal geom.Vec
	AtApex       bool
}

// NewBody creates a body facing right with an upward ground normal.
func NewBody(position geom.Vec, shape geom.Polygon, system CollisionSystem) *Body {
	return &Body{
		Position:     position,
		Shape:        shape,
		Facing:       SideRight,
		System:       system,
		GroundNormal: geom.Up,
	}
}

// WorldShape returns the collider shape at the current position.
func (b *Body) WorldShape() geom.Polygon {
	return b.Shape.Translate(b.Position)
}

// Bounds returns the world-space bounding box.
func (b *Body) Bounds() cp.BB {
	return b.WorldShape().Bounds()
}

// Center returns the center of the world-space bounding box.
func (b *Body) Center() geom.Vec {
	bb := b.Bounds()
	return geom.Vec{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}
