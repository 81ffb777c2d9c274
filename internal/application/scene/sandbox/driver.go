package sandbox

import (
	"github.com/younwookim/kinematic/internal/application/replay"
	"github.com/younwookim/kinematic/internal/application/system"
)

// Driver supplies the player input, one frame per tick.
type Driver interface {
	system.InputSource
	system.SlideSource

	// Next makes the next frame current and returns it. It returns false
	// when the driver has no more frames.
	Next() (system.InputFrame, bool)
}

// KeyboardDriver polls the keyboard every tick.
type KeyboardDriver struct {
	*system.KeyboardInput
}

// NewKeyboardDriver creates a live keyboard driver.
func NewKeyboardDriver() KeyboardDriver {
	return KeyboardDriver{KeyboardInput: system.NewKeyboardInput()}
}

// Next polls the keyboard. It never runs out.
func (k KeyboardDriver) Next() (system.InputFrame, bool) {
	return k.Poll(), true
}

// ReplayDriver plays a recording back.
type ReplayDriver struct {
	*replay.Replayer
}

// NewReplayDriver creates a driver for data.
func NewReplayDriver(data replay.ReplayData) ReplayDriver {
	return ReplayDriver{Replayer: replay.NewReplayer(data)}
}

// Next advances the recording.
func (r ReplayDriver) Next() (system.InputFrame, bool) {
	ok := r.Advance()
	return r.Current(), ok
}
