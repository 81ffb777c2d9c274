package system

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputSource is polled by the controller once per tick.
type InputSource interface {
	HorizontalAxis() float64
	JumpPressed() bool
	JumpHeld() bool
	JumpReleased() bool
}

// SlideSource is implemented by inputs that can trigger a slide.
type SlideSource interface {
	SlidePressed() bool
}

// InputFrame is the held state of the controls for one tick.
type InputFrame struct {
	Axis  float64 `json:"axis"`
	Jump  bool    `json:"jump,omitempty"`
	Slide bool    `json:"slide,omitempty"`
}

// FrameInput is an InputSource fed one frame per tick. Press and release
// edges are derived from consecutive frames, so the same frames always
// produce the same signals.
type FrameInput struct {
	prev InputFrame
	cur  InputFrame
}

// Push makes frame the current tick.
func (f *FrameInput) Push(frame InputFrame) {
	f.prev = f.cur
	f.cur = frame
}

// Current returns the frame of this tick.
func (f *FrameInput) Current() InputFrame {
	return f.cur
}

// HorizontalAxis returns the axis clamped to [-1, 1].
func (f *FrameInput) HorizontalAxis() float64 {
	switch {
	case f.cur.Axis > 1:
		return 1
	case f.cur.Axis < -1:
		return -1
	}
	return f.cur.Axis
}

func (f *FrameInput) JumpPressed() bool  { return f.cur.Jump && !f.prev.Jump }
func (f *FrameInput) JumpHeld() bool     { return f.cur.Jump }
func (f *FrameInput) JumpReleased() bool { return !f.cur.Jump && f.prev.Jump }
func (f *FrameInput) SlidePressed() bool { return f.cur.Slide && !f.prev.Slide }

// KeyboardInput samples the keyboard through ebiten.
type KeyboardInput struct {
	FrameInput
}

// NewKeyboardInput creates a keyboard input.
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

// Poll samples the keyboard and pushes the frame. Call it once per tick
// before the controller update.
func (k *KeyboardInput) Poll() InputFrame {
	frame := SampleKeyboard()
	k.Push(frame)
	return frame
}

// SampleKeyboard reads the held state of the movement keys.
func SampleKeyboard() InputFrame {
	var axis float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		axis--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		axis++
	}
	return InputFrame{
		Axis:  axis,
		Jump:  ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Slide: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
}
