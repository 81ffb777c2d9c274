// Package game provides the main loop manager that handles Scene transitions.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/kinematic/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  int
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface; scene.ErrQuit ends the run loop.
func (g *Game) Update() error {
	err := g.step()
	if errors.Is(err, scene.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (g *Game) step() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	g.frames++

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// RunHeadless updates the scenes without a window until a scene quits or
// maxFrames updates have run. A non-positive maxFrames means no limit. The
// current scene's OnExit is called before returning.
func (g *Game) RunHeadless(maxFrames int) error {
	defer g.current.OnExit()
	for maxFrames <= 0 || g.frames < maxFrames {
		if err := g.step(); err != nil {
			if errors.Is(err, scene.ErrQuit) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Frames returns the number of completed updates.
func (g *Game) Frames() int {
	return g.frames
}

// Current returns the active scene.
func (g *Game) Current() scene.Scene {
	return g.current
}
