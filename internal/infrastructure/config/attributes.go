package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/kinematic/internal/domain/curve"
)

// AttributesSpec is the on-disk form of attributes.yaml.
type AttributesSpec struct {
	Name   string                      `yaml:"name"`
	Curves map[string][]curve.Keyframe `yaml:"curves"`

	Gravity                     float64 `yaml:"gravity"`
	MaxFallSpeed                float64 `yaml:"max_fall_speed"`
	WallStuckGravityCoefficient float64 `yaml:"wall_stuck_gravity_coefficient"`
	ApexGravityCoefficient      float64 `yaml:"apex_gravity_coefficient"`
	ApexFallThreshold           float64 `yaml:"apex_fall_threshold"`
	AirAccelerationCoefficient  float64 `yaml:"air_acceleration_coefficient"`
	DecelerationRate            float64 `yaml:"deceleration_rate"`
	AboutTurnRate               float64 `yaml:"about_turn_rate"`
	CoyoteTime                  float64 `yaml:"coyote_time"`
	JumpBufferTime              float64 `yaml:"jump_buffer_time"`
	MinJumpRatio                float64 `yaml:"min_jump_ratio"`
	WallJumpGap                 float64 `yaml:"wall_jump_gap"`
	WallJumpForce               float64 `yaml:"wall_jump_force"`
	WallJumpFreezeTime          float64 `yaml:"wall_jump_freeze_time"`
	GroundSnapHeight            float64 `yaml:"ground_snap_height"`
	ClimbHeight                 float64 `yaml:"climb_height"`
	MoveToStallTime             float64 `yaml:"move_to_stall_time"`
}

// Attributes is the immutable movement tuning of one entity.
type Attributes struct {
	Name string

	GroundSpeed curve.Curve // speed by acceleration time
	AirSpeed    curve.Curve // falls back to GroundSpeed when empty
	Jump        curve.Curve // vertical speed by jump time
	WallJump    curve.Curve
	Slide       curve.Curve // horizontal speed by slide time

	Gravity                     float64
	MaxFallSpeed                float64
	WallStuckGravityCoefficient float64
	ApexGravityCoefficient      float64
	ApexFallThreshold           float64
	AirAccelerationCoefficient  float64
	DecelerationRate            float64
	AboutTurnRate               float64
	CoyoteTime                  float64
	JumpBufferTime              float64
	MinJumpRatio                float64
	WallJumpGap                 float64
	WallJumpForce               float64
	WallJumpFreezeTime          float64
	GroundSnapHeight            float64
	ClimbHeight                 float64
	MoveToStallTime             float64
}

// Curve names recognised in attributes.yaml.
const (
	CurveGroundSpeed = "ground_speed"
	CurveAirSpeed    = "air_speed"
	CurveJump        = "jump"
	CurveWallJump    = "wall_jump"
	CurveSlide       = "slide"
)

// ErrMissingCurve is returned when a required curve is absent.
var ErrMissingCurve = errors.New("missing curve")

// DefaultMinJumpRatio is the shortest fraction of a jump curve that an early
// release can cut it to.
const DefaultMinJumpRatio = 0.7

// Build converts the spec into Attributes.
func (s AttributesSpec) Build() (*Attributes, error) {
	curves := make(map[string]curve.Curve, len(s.Curves))
	for name, keys := range s.Curves {
		c, err := curve.New(keys...)
		if err != nil {
			return nil, fmt.Errorf("failed to build curve %s: %w", name, err)
		}
		curves[name] = c
	}
	for _, required := range []string{CurveGroundSpeed, CurveJump} {
		if curves[required].Empty() {
			return nil, fmt.Errorf("%w: %s", ErrMissingCurve, required)
		}
	}

	wallJump := curves[CurveWallJump]
	if wallJump.Empty() {
		wallJump = curves[CurveJump]
	}
	minJump := s.MinJumpRatio
	if minJump <= 0 {
		minJump = DefaultMinJumpRatio
	}

	return &Attributes{
		Name:                        s.Name,
		GroundSpeed:                 curves[CurveGroundSpeed],
		AirSpeed:                    curves[CurveAirSpeed],
		Jump:                        curves[CurveJump],
		WallJump:                    wallJump,
		Slide:                       curves[CurveSlide],
		Gravity:                     s.Gravity,
		MaxFallSpeed:                s.MaxFallSpeed,
		WallStuckGravityCoefficient: s.WallStuckGravityCoefficient,
		ApexGravityCoefficient:      s.ApexGravityCoefficient,
		ApexFallThreshold:           s.ApexFallThreshold,
		AirAccelerationCoefficient:  s.AirAccelerationCoefficient,
		DecelerationRate:            s.DecelerationRate,
		AboutTurnRate:               s.AboutTurnRate,
		CoyoteTime:                  s.CoyoteTime,
		JumpBufferTime:              s.JumpBufferTime,
		MinJumpRatio:                minJump,
		WallJumpGap:                 s.WallJumpGap,
		WallJumpForce:               s.WallJumpForce,
		WallJumpFreezeTime:          s.WallJumpFreezeTime,
		GroundSnapHeight:            s.GroundSnapHeight,
		ClimbHeight:                 s.ClimbHeight,
		MoveToStallTime:             s.MoveToStallTime,
	}, nil
}

// SpeedCurve returns the horizontal speed curve for the grounded state.
func (a *Attributes) SpeedCurve(grounded bool) curve.Curve {
	if !grounded && !a.AirSpeed.Empty() {
		return a.AirSpeed
	}
	return a.GroundSpeed
}

// ApplyTo overrides the mover heights configured by the attributes.
func (a *Attributes) ApplyTo(settings MoverSettings) MoverSettings {
	if a.ClimbHeight > 0 {
		settings.ClimbHeight = a.ClimbHeight
	}
	if a.GroundSnapHeight > 0 {
		settings.SnapHeight = a.GroundSnapHeight
	}
	return settings
}
