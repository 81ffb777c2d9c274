package replay

import "github.com/younwookim/kinematic/internal/application/system"

// FormatVersion is written into every recording.
const FormatVersion = "2.0"

// Frame records input state for a single tick
type Frame struct {
	F int     `json:"f"`           // Frame number
	X float64 `json:"x,omitempty"` // Horizontal axis
	J bool    `json:"j,omitempty"` // Jump held
	S bool    `json:"s,omitempty"` // Slide held
}

// Input converts the frame to the input state it was recorded from.
func (f Frame) Input() system.InputFrame {
	return system.InputFrame{Axis: f.X, Jump: f.J, Slide: f.S}
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version    string  `json:"version"`
	Stage      string  `json:"stage"`
	Attributes string  `json:"attributes"`
	DT         float64 `json:"dt"`
	StartTime  string  `json:"startTime"`
	Frames     []Frame `json:"frames"`
}
