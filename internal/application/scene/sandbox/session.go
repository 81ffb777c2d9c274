package sandbox

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/younwookim/kinematic/internal/application/replay"
	"github.com/younwookim/kinematic/internal/application/state"
	"github.com/younwookim/kinematic/internal/application/system"
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/domain/geom"
	"github.com/younwookim/kinematic/internal/ecs"
	"github.com/younwookim/kinematic/internal/infrastructure/collision"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

// ErrMissingDriver is returned for sessions without an input driver.
var ErrMissingDriver = errors.New("missing input driver")

// Options configures a session.
type Options struct {
	Config   *config.GameConfig
	Stage    *config.StageConfig
	Driver   Driver
	Resolver system.CustomResolver // used when the collision system is custom
	Recorder *replay.Recorder
}

// Session is one sandbox run: a stage, a world and the player moving in it.
// It has no rendering and no keyboard handling of its own, so it runs the
// same live, headless and under test.
type Session struct {
	stage    *entity.Stage
	world    *ecs.World
	spec     ecs.PlayerSpec
	player   donburi.Entity
	driver   Driver
	recorder *replay.Recorder
	state    state.GameState
	frame    int

	events []system.Event // published during the last tick
	counts map[system.Event]int
}

// NewSession loads the stage and spawns the player at the stage spawn.
func NewSession(opts Options) (*Session, error) {
	if opts.Driver == nil {
		return nil, ErrMissingDriver
	}
	if opts.Config == nil || opts.Config.Movement == nil || opts.Config.Entities == nil || opts.Stage == nil {
		return nil, errors.New("failed to create session: incomplete config")
	}

	stage, err := system.LoadStage(opts.Stage)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage: %w", err)
	}
	collisionSystem, err := entity.ParseCollisionSystem(opts.Config.Movement.Collision.System)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var filter entity.LayerFilter
	if layers := opts.Config.Movement.Collision.Layers; len(layers) > 0 {
		filter = entity.LayerFilter(layers)
	}
	hitbox := opts.Config.Entities.Player.Hitbox

	s := &Session{
		stage:    stage,
		world:    ecs.NewWorld(collision.NewStageSpace(stage), opts.Config.Movement.Mover),
		driver:   opts.Driver,
		recorder: opts.Recorder,
		state:    state.StateRunning,
		counts:   make(map[system.Event]int),
		spec: ecs.PlayerSpec{
			BodySpec: ecs.BodySpec{
				Position: stage.WorldSpawn(),
				Shape:    geom.Rect(hitbox.OffsetX, hitbox.OffsetY, hitbox.Width, hitbox.Height),
				System:   collisionSystem,
				Filter:   filter,
				Resolver: opts.Resolver,
			},
			Attributes: opts.Config.Attributes,
			Input:      opts.Driver,
		},
	}

	s.player, err = s.world.SpawnPlayer(s.spec)
	if err != nil {
		return nil, err
	}
	s.world.OnMotion(func(evt ecs.MotionEvent) {
		if evt.Entity != s.player {
			return
		}
		s.events = append(s.events, evt.Event)
		s.counts[evt.Event]++
	})
	return s, nil
}

// Tick advances one frame while running. When the driver runs out the
// session finishes without stepping.
func (s *Session) Tick(dt float64) {
	if !s.state.Ticking() {
		return
	}
	s.advance(dt)
}

// StepOnce advances exactly one frame while paused.
func (s *Session) StepOnce(dt float64) {
	if s.state != state.StatePaused {
		return
	}
	s.advance(dt)
	if s.state == state.StateFinished {
		return
	}
	s.state = state.StatePaused
}

func (s *Session) advance(dt float64) {
	frame, ok := s.driver.Next()
	if !ok {
		s.state = state.StateFinished
		return
	}
	if s.recorder != nil {
		s.recorder.RecordFrame(frame)
	}

	s.events = s.events[:0]
	s.world.Step(dt)
	s.frame++
}

// TogglePause switches between running and paused.
func (s *Session) TogglePause() {
	switch s.state {
	case state.StateRunning:
		s.state = state.StatePaused
	case state.StatePaused:
		s.state = state.StateRunning
	}
}

// Respawn replaces the player with one built from attrs at the same
// position. Attributes never change on a live entity.
func (s *Session) Respawn(attrs *config.Attributes) error {
	body := s.Body()
	spec := s.spec
	spec.Attributes = attrs
	spec.Position = body.Position

	e, err := s.world.SpawnPlayer(spec)
	if err != nil {
		return fmt.Errorf("failed to respawn player: %w", err)
	}
	s.world.Destroy(s.player)
	s.player = e
	s.spec.Attributes = attrs
	return nil
}

// SetResolver installs a new custom resolver on the player and on later
// respawns.
func (s *Session) SetResolver(r system.CustomResolver) {
	s.spec.Resolver = r
	if m, ok := s.world.Mover(s.player); ok {
		m.SetCustomResolver(r)
	}
}

// Restart puts the player back on the spawn point with a fresh state.
func (s *Session) Restart() error {
	e, err := s.world.SpawnPlayer(s.spec)
	if err != nil {
		return fmt.Errorf("failed to restart: %w", err)
	}
	s.world.Destroy(s.player)
	s.player = e
	s.frame = 0
	s.events = s.events[:0]
	s.counts = make(map[system.Event]int)
	if s.state == state.StateFinished {
		s.state = state.StateRunning
	}
	return nil
}

// Body returns the player body.
func (s *Session) Body() *entity.Body {
	m, _ := s.world.Mover(s.player)
	return m.Body()
}

// Controller returns the player controller.
func (s *Session) Controller() *system.Controller {
	c, _ := s.world.Controller(s.player)
	return c
}

// Stage returns the loaded stage.
func (s *Session) Stage() *entity.Stage { return s.stage }

// World returns the entity world.
func (s *Session) World() *ecs.World { return s.world }

// State returns the run state.
func (s *Session) State() state.GameState { return s.state }

// Frame returns the number of stepped frames since the last restart.
func (s *Session) Frame() int { return s.frame }

// Events returns the player events of the last stepped frame.
func (s *Session) Events() []system.Event { return s.events }

// Count returns how often e fired since the last restart.
func (s *Session) Count(e system.Event) int { return s.counts[e] }

// Recorder returns the active recorder, if any.
func (s *Session) Recorder() *replay.Recorder { return s.recorder }

// SetRecorder replaces the recorder.
func (s *Session) SetRecorder(r *replay.Recorder) { s.recorder = r }
