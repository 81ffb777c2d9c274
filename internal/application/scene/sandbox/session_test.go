package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinematic/internal/application/replay"
	"github.com/younwookim/kinematic/internal/application/state"
	"github.com/younwookim/kinematic/internal/application/system"
	"github.com/younwookim/kinematic/internal/domain/curve"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
)

const testDT = 1.0 / 60

func createTestAttributes() *config.Attributes {
	speed := curve.MustNew(curve.Keyframe{Time: 0, Value: 30}, curve.Keyframe{Time: 0.25, Value: 120})
	return &config.Attributes{
		Name:                       "test",
		GroundSpeed:                speed,
		Jump:                       curve.MustNew(curve.Keyframe{Time: 0, Value: 200}, curve.Keyframe{Time: 0.3, Value: 0}),
		WallJump:                   curve.MustNew(curve.Keyframe{Time: 0, Value: 200}, curve.Keyframe{Time: 0.2, Value: 0}),
		Gravity:                    900,
		MaxFallSpeed:               400,
		AirAccelerationCoefficient: 0.5,
		DecelerationRate:           2,
		CoyoteTime:                 0.1,
		JumpBufferTime:             0.1,
		MinJumpRatio:               0.5,
	}
}

func createTestConfig() *config.GameConfig {
	return &config.GameConfig{
		Movement: &config.MovementConfig{
			Mover:     config.DefaultMoverSettings(),
			Collision: config.CollisionConfig{System: "slide", Layers: []string{"solid"}},
		},
		Entities: &config.EntitiesConfig{
			Player: config.PlayerConfig{
				ID:     "player",
				Hitbox: config.Rect{OffsetX: -6, Width: 12, Height: 24},
			},
		},
		Attributes: createTestAttributes(),
	}
}

// createTestStageConfig is a closed 10x6 room with the spawn 20 units above
// the floor.
func createTestStageConfig() *config.StageConfig {
	return &config.StageConfig{
		ID:          "room",
		Name:        "room",
		Size:        config.StageSizeConfig{Width: 160, Height: 96, TileSize: 16},
		PlayerSpawn: config.PositionConfig{X: 40, Y: 60},
		Layers: config.LayersConfig{Collision: []string{
			"##########",
			"#........#",
			"#........#",
			"#........#",
			"#........#",
			"##########",
		}},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "wall", Solid: true},
		},
	}
}

func createTestDriver(frames ...system.InputFrame) ReplayDriver {
	data := replay.ReplayData{Version: replay.FormatVersion, DT: testDT}
	for i, f := range frames {
		data.Frames = append(data.Frames, replay.Frame{F: i, X: f.Axis, J: f.Jump, S: f.Slide})
	}
	return NewReplayDriver(data)
}

func createTestSession(t *testing.T, driver Driver) *Session {
	s, err := NewSession(Options{
		Config: createTestConfig(),
		Stage:  createTestStageConfig(),
		Driver: driver,
	})
	require.NoError(t, err)
	return s
}

func repeat(frame system.InputFrame, n int) []system.InputFrame {
	out := make([]system.InputFrame, n)
	for i := range out {
		out[i] = frame
	}
	return out
}

func TestNewSession_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"missing driver", func(o *Options) { o.Driver = nil }, ErrMissingDriver},
		{"missing attributes", func(o *Options) { o.Config.Attributes = nil }, system.ErrMissingAttributes},
		{"unknown system", func(o *Options) { o.Config.Movement.Collision.System = "bounce" }, nil},
		{"missing stage", func(o *Options) { o.Stage = nil }, nil},
		{"bad tile size", func(o *Options) { o.Stage.Size.TileSize = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{
				Config: createTestConfig(),
				Stage:  createTestStageConfig(),
				Driver: createTestDriver(),
			}
			tt.modify(&opts)

			_, err := NewSession(opts)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestSession_SpawnAndLand(t *testing.T) {
	s := createTestSession(t, createTestDriver(repeat(system.InputFrame{}, 60)...))

	body := s.Body()
	assert.Equal(t, 40.0, body.Position.X)
	assert.Equal(t, 36.0, body.Position.Y)
	assert.NotNil(t, s.Controller())
	assert.Len(t, s.Stage().Colliders(), 10, "floor and ceiling runs plus one block per wall tile")

	for i := 0; i < 60; i++ {
		s.Tick(testDT)
	}

	assert.True(t, s.Body().Grounded)
	assert.InDelta(t, 16.01, s.Body().Position.Y, 1e-6)
	assert.Equal(t, 1, s.Count(system.EventLanded))
	assert.Equal(t, 60, s.Frame())
}

func TestSession_FinishesWithReplay(t *testing.T) {
	s := createTestSession(t, createTestDriver(repeat(system.InputFrame{}, 5)...))

	for i := 0; i < 10; i++ {
		s.Tick(testDT)
	}

	assert.Equal(t, 5, s.Frame())
	assert.Equal(t, state.StateFinished, s.State())

	require.NoError(t, s.Restart())
	assert.Equal(t, state.StateRunning, s.State())
	assert.Equal(t, 0, s.Frame())
}

func TestSession_RecordingReplaysExactly(t *testing.T) {
	var frames []system.InputFrame
	frames = append(frames, repeat(system.InputFrame{}, 20)...)
	frames = append(frames, repeat(system.InputFrame{Axis: 1}, 30)...)
	frames = append(frames, repeat(system.InputFrame{Axis: 1, Jump: true}, 12)...)
	frames = append(frames, repeat(system.InputFrame{Axis: -1}, 40)...)
	frames = append(frames, repeat(system.InputFrame{}, 30)...)

	rec := replay.NewRecorder("room", "test", testDT)
	live, err := NewSession(Options{
		Config:   createTestConfig(),
		Stage:    createTestStageConfig(),
		Driver:   createTestDriver(frames...),
		Recorder: rec,
	})
	require.NoError(t, err)
	for i := 0; i < len(frames); i++ {
		live.Tick(testDT)
	}
	require.Equal(t, len(frames), rec.FrameCount())

	replayed := createTestSession(t, NewReplayDriver(rec.Data()))
	for replayed.State() == state.StateRunning {
		replayed.Tick(testDT)
	}

	assert.Equal(t, live.Frame(), replayed.Frame())
	assert.Equal(t, live.Body().Position, replayed.Body().Position)
	assert.Equal(t, live.Body().Velocity, replayed.Body().Velocity)
	assert.Equal(t, live.Count(system.EventJump), replayed.Count(system.EventJump))
	assert.Equal(t, 1, live.Count(system.EventJump))
}

func TestSession_PauseAndStep(t *testing.T) {
	s := createTestSession(t, createTestDriver(repeat(system.InputFrame{}, 10)...))

	s.TogglePause()
	assert.Equal(t, state.StatePaused, s.State())

	s.Tick(testDT)
	assert.Equal(t, 0, s.Frame(), "paused sessions do not tick")

	s.StepOnce(testDT)
	assert.Equal(t, 1, s.Frame())
	assert.Equal(t, state.StatePaused, s.State())

	s.TogglePause()
	s.StepOnce(testDT)
	assert.Equal(t, 1, s.Frame(), "stepping only works while paused")
	assert.Equal(t, state.StateRunning, s.State())
}

func TestSession_Respawn(t *testing.T) {
	s := createTestSession(t, createTestDriver(repeat(system.InputFrame{Axis: 1}, 30)...))
	for i := 0; i < 30; i++ {
		s.Tick(testDT)
	}
	before := s.Body().Position

	attrs := createTestAttributes()
	attrs.Gravity = 0
	require.NoError(t, s.Respawn(attrs))

	assert.Equal(t, before, s.Body().Position)
	assert.Equal(t, 1, s.World().Len(), "the old player is gone")

	err := s.Respawn(nil)
	assert.ErrorIs(t, err, system.ErrMissingAttributes)
	assert.Equal(t, before, s.Body().Position, "a failed respawn keeps the player")
}
