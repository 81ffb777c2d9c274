// Package sandbox provides the interactive movement sandbox scene.
package sandbox

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/kinematic/internal/application/replay"
	"github.com/younwookim/kinematic/internal/application/scene"
	"github.com/younwookim/kinematic/internal/application/state"
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
	"github.com/younwookim/kinematic/internal/infrastructure/script"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorSolid    = color.RGBA{120, 120, 150, 255}
	colorStep     = color.RGBA{150, 130, 90, 255}
	colorSlope    = color.RGBA{90, 150, 120, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorGrounded = color.RGBA{240, 240, 120, 255}
	colorWall     = color.RGBA{230, 110, 90, 255}
	colorHit      = color.RGBA{255, 80, 80, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 150}
)

// SceneOptions configures the sandbox scene.
type SceneOptions struct {
	ScreenW     int
	ScreenH     int
	Background  string         // "#rrggbb"; empty keeps the default
	Interactive bool           // keyboard controls; headless scenes quit when the session finishes
	RecordPath  string         // replay file written on F5 and on exit
	Loader      *config.Loader // reloads assets named by Reload
	Reload      <-chan string  // changed asset paths
}

// Sandbox is the gameplay scene around a Session.
type Sandbox struct {
	session *Session
	opts    SceneOptions
	bg      color.RGBA
	reload  <-chan string
	camX    float64
	camY    float64
}

// New creates the scene.
func New(session *Session, opts SceneOptions) *Sandbox {
	s := &Sandbox{
		session: session,
		opts:    opts,
		bg:      colorBG,
		reload:  opts.Reload,
	}
	if c, err := parseHexColor(opts.Background); err == nil {
		s.bg = c
	}
	return s
}

// Session returns the simulated session.
func (s *Sandbox) Session() *Session {
	return s.session
}

// Update proceeds the sandbox (implements scene.Scene)
func (s *Sandbox) Update(dt float64) (scene.Scene, error) {
	if s.opts.Interactive {
		s.handleKeys(dt)
	}
	s.drainReload()

	s.session.Tick(dt)

	if s.session.State() == state.StateFinished && !s.opts.Interactive {
		return nil, scene.ErrQuit
	}
	return nil, nil
}

func (s *Sandbox) handleKeys(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		s.session.StepOnce(dt)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		s.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.restart()
	}
}

func (s *Sandbox) restart() {
	if err := s.session.Restart(); err != nil {
		log.Printf("Failed to restart: %v", err)
		return
	}
	if rec := s.session.Recorder(); rec != nil {
		data := rec.Data()
		s.session.SetRecorder(replay.NewRecorder(data.Stage, data.Attributes, data.DT))
		log.Printf("Recording restarted")
	}
}

func (s *Sandbox) drainReload() {
	for s.reload != nil {
		select {
		case path, ok := <-s.reload:
			if !ok {
				s.reload = nil
				return
			}
			s.reloadAsset(path)
		default:
			return
		}
	}
}

func (s *Sandbox) reloadAsset(path string) {
	if s.opts.Loader == nil {
		return
	}
	name := path
	if rel, err := filepath.Rel(s.opts.Loader.BasePath(), path); err == nil {
		name = filepath.ToSlash(rel)
	}

	if strings.HasSuffix(name, ".tengo") {
		src, err := s.opts.Loader.LoadScript(name)
		if err != nil {
			log.Printf("Failed to reload script: %v", err)
			return
		}
		r, err := script.NewResolver(src)
		if err != nil {
			log.Printf("Failed to reload script %s: %v", name, err)
			return
		}
		s.session.SetResolver(r)
		log.Printf("Script reloaded: %s", name)
		return
	}

	attrs, err := s.opts.Loader.LoadAttributes(name)
	if err != nil {
		log.Printf("Failed to reload attributes: %v", err)
		return
	}
	if err := s.session.Respawn(attrs); err != nil {
		log.Printf("Failed to respawn: %v", err)
		return
	}
	log.Printf("Attributes reloaded: %s", name)
}

// saveRecording saves the current recording to file
func (s *Sandbox) saveRecording() {
	rec := s.session.Recorder()
	if rec == nil {
		return
	}

	filename := s.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := rec.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, rec.FrameCount())
	}
}

// Draw renders the sandbox
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(s.bg)
	s.updateCamera()

	for _, c := range s.session.Stage().Colliders() {
		s.drawPolygon(screen, c.Shape, colliderColor(c))
	}
	s.drawPlayer(screen)
	s.drawHUD(screen)

	if s.session.State() == state.StatePaused {
		vector.FillRect(screen, 0, 0, float32(s.opts.ScreenW), float32(s.opts.ScreenH), colorOverlay, false)
		ebitenutil.DebugPrintAt(screen, "PAUSED  (. to step)", s.opts.ScreenW/2-60, s.opts.ScreenH/2-8)
	}
}

func colliderColor(c *entity.Collider) color.Color {
	for _, l := range c.Layers {
		switch l {
		case entity.LayerStep:
			return colorStep
		case entity.LayerSlope:
			return colorSlope
		}
	}
	return colorSolid
}

// updateCamera centers the player and clamps to the stage.
func (s *Sandbox) updateCamera() {
	w, h := s.session.Stage().PixelSize()
	center := s.session.Body().Center()

	s.camX = clamp(center.X-float64(s.opts.ScreenW)/2, 0, w-float64(s.opts.ScreenW))
	s.camY = clamp((h-center.Y)-float64(s.opts.ScreenH)/2, 0, h-float64(s.opts.ScreenH))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toScreen flips a y-up world point into screen space.
func (s *Sandbox) toScreen(p geom.Vec) (float32, float32) {
	_, h := s.session.Stage().PixelSize()
	return float32(p.X - s.camX), float32(h - p.Y - s.camY)
}

func (s *Sandbox) drawPolygon(screen *ebiten.Image, p geom.Polygon, c color.Color) {
	for i := range p {
		x0, y0 := s.toScreen(p[i])
		x1, y1 := s.toScreen(p[(i+1)%len(p)])
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, false)
	}
}

func (s *Sandbox) drawPlayer(screen *ebiten.Image) {
	body := s.session.Body()
	bb := body.Bounds()
	x, y := s.toScreen(geom.Vec{X: bb.L, Y: bb.T})
	vector.FillRect(screen, x, y, float32(bb.R-bb.L), float32(bb.T-bb.B), colorPlayer, false)

	outline := colorPlayer
	switch {
	case body.Grounded:
		outline = colorGrounded
	case body.Wall != entity.WallNone:
		outline = colorWall
	}
	s.drawPolygon(screen, body.WorldShape(), outline)

	// Facing marker
	cx, cy := s.toScreen(body.Center())
	vector.StrokeLine(screen, cx, cy, cx+float32(body.Facing.Sign())*8, cy, 2, outline, false)

	// Ground normal
	fx, fy := s.toScreen(body.Position)
	n := body.GroundNormal
	vector.StrokeLine(screen, fx, fy, fx+float32(n.X*10), fy-float32(n.Y*10), 1, colorHit, false)
}

func (s *Sandbox) drawHUD(screen *ebiten.Image) {
	body := s.session.Body()
	ctrl := s.session.Controller()
	v := body.Velocity

	text := fmt.Sprintf("%s  frame %d  system %s\npos (%.2f, %.2f)  facing %d\nforce (%.1f, %.1f)  move (%.1f, %.1f)\ngrounded %t  wall %d  apex %t",
		s.session.State(), s.session.Frame(), body.System,
		body.Position.X, body.Position.Y, body.Facing,
		v.Force.X, v.Force.Y, v.Movement.X, v.Movement.Y,
		body.Grounded, body.Wall, body.AtApex)
	if ctrl != nil {
		text += fmt.Sprintf("\njump %t  slide %t  frozen %t  buffered %t",
			ctrl.Jumping(), ctrl.Sliding(), ctrl.Frozen(), ctrl.JumpBuffered())
	}
	if events := s.session.Events(); len(events) > 0 {
		names := make([]string, len(events))
		for i, e := range events {
			names[i] = e.String()
		}
		text += "\n" + strings.Join(names, " ")
	}
	ebitenutil.DebugPrint(screen, text)
}

// OnEnter is called when the scene becomes active
func (s *Sandbox) OnEnter() {}

// OnExit saves a pending recording
func (s *Sandbox) OnExit() {
	if s.opts.RecordPath != "" {
		s.saveRecording()
	}
}

func parseHexColor(hex string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("failed to parse color %q: %w", hex, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
