package config

// MovementConfig is the root config for movement.json
type MovementConfig struct {
	Display   DisplayConfig   `json:"display"`
	Mover     MoverSettings   `json:"mover"`
	Collision CollisionConfig `json:"collision"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// MoverSettings tunes the velocity accumulator and the collision resolver.
type MoverSettings struct {
	ContactOffset           float64 `json:"contactOffset"`
	GroundMinYNormal        float64 `json:"groundMinYNormal"`
	GroundDeceleration      float64 `json:"groundDeceleration"`
	AirDeceleration         float64 `json:"airDeceleration"`
	ClimbHeight             float64 `json:"climbHeight"`
	SnapHeight              float64 `json:"snapHeight"`
	MaxRecursion            int     `json:"maxRecursion"`
	GroundedForceMultiplier float64 `json:"groundedForceMultiplier"`
}

// DefaultMoverSettings returns the stock tuning.
func DefaultMoverSettings() MoverSettings {
	return MoverSettings{
		ContactOffset:           0.01,
		GroundMinYNormal:        0.7,
		GroundDeceleration:      1200,
		AirDeceleration:         400,
		ClimbHeight:             10,
		SnapHeight:              6,
		MaxRecursion:            3,
		GroundedForceMultiplier: 0.5,
	}
}

// CollisionConfig selects the resolver strategy and the collision layers.
type CollisionConfig struct {
	System string   `json:"system"`
	Layers []string `json:"layers"`
	Script string   `json:"script,omitempty"` // tengo source for the custom system
}
