package state

// GameState represents the run state of a sandbox session
type GameState int

const (
	StateRunning GameState = iota
	StatePaused
	StateFinished // replay exhausted
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the simulation advances on its own.
func (s GameState) Ticking() bool {
	return s == StateRunning
}
