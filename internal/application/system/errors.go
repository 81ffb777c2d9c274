package system

import "errors"

// Spawn-time validation errors. An entity failing validation never enters
// the simulation loop.
var (
	ErrMissingBody       = errors.New("missing body")
	ErrMissingCollider   = errors.New("missing collider shape")
	ErrMissingObstacles  = errors.New("missing obstacle set")
	ErrMissingAttributes = errors.New("missing attributes")
	ErrMissingInput      = errors.New("missing input source")
	ErrMissingClock      = errors.New("missing clock")
)
