package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/younwookim/kinematic/internal/application/game"
	"github.com/younwookim/kinematic/internal/application/replay"
	"github.com/younwookim/kinematic/internal/application/scene/sandbox"
	"github.com/younwookim/kinematic/internal/application/system"
	"github.com/younwookim/kinematic/internal/domain/entity"
	"github.com/younwookim/kinematic/internal/infrastructure/config"
	"github.com/younwookim/kinematic/internal/infrastructure/script"
)

type options struct {
	configDir string
	stage     string
	record    string
	replay    string
	script    string
	headless  bool
	watch     bool
	frames    int
}

// app is a fully wired sandbox ready to run.
type app struct {
	cfg     *config.GameConfig
	session *sandbox.Session
	game    *game.Game
	watcher *config.Watcher
}

func newApp(opts options) (*app, error) {
	if opts.headless && opts.replay == "" {
		return nil, errors.New("headless runs need a replay")
	}
	if opts.watch && opts.configDir == "" {
		return nil, errors.New("watching needs a config directory")
	}

	loader, err := newLoader(opts.configDir)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	var driver sandbox.Driver = sandbox.NewKeyboardDriver()
	stageName := opts.stage
	dt := 1.0 / float64(framerate(cfg.Movement.Display))
	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, err
		}
		if data.Stage != "" {
			stageName = data.Stage
		}
		if data.Attributes != "" && data.Attributes != config.AttributesFile {
			if cfg.Attributes, err = loader.LoadAttributes(data.Attributes); err != nil {
				return nil, err
			}
		}
		dt = data.DT
		driver = sandbox.NewReplayDriver(*data)
		log.Printf("Replaying %s (%d frames)", opts.replay, len(data.Frames))
	}

	stageCfg, err := loadStage(loader, stageName)
	if err != nil {
		return nil, err
	}

	resolver, err := loadResolver(loader, cfg.Movement.Collision, opts.script)
	if err != nil {
		return nil, err
	}

	var recorder *replay.Recorder
	if opts.record != "" {
		recorder = replay.NewRecorder(stageName, config.AttributesFile, dt)
		log.Printf("Recording enabled: %s", opts.record)
	}

	session, err := sandbox.NewSession(sandbox.Options{
		Config:   cfg,
		Stage:    stageCfg,
		Driver:   driver,
		Resolver: resolver,
		Recorder: recorder,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, session: session}
	sceneOpts := sandbox.SceneOptions{
		ScreenW:     cfg.Movement.Display.ScreenWidth,
		ScreenH:     cfg.Movement.Display.ScreenHeight,
		Background:  stageCfg.Background.Color,
		Interactive: !opts.headless,
		RecordPath:  opts.record,
		Loader:      loader,
	}
	if opts.watch {
		a.watcher, err = config.NewWatcher(opts.configDir, filepath.Join(opts.configDir, "scripts"))
		if err != nil {
			return nil, err
		}
		sceneOpts.Reload = a.watcher.Events
		go a.logWatchErrors()
	}

	a.game = game.New(sandbox.New(session, sceneOpts), sceneOpts.ScreenW, sceneOpts.ScreenH)
	a.game.SetDT(dt)
	return a, nil
}

// Close stops the file watcher.
func (a *app) Close() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		log.Printf("Failed to close watcher: %v", err)
	}
}

func (a *app) logWatchErrors() {
	for err := range a.watcher.Errors {
		log.Printf("Watch error: %v", err)
	}
}

func (a *app) logSummary() {
	body := a.session.Body()
	log.Printf("Finished after %d frames: position=(%.3f, %.3f) force=(%.3f, %.3f) grounded=%v jumps=%d",
		a.session.Frame(), body.Position.X, body.Position.Y, body.Velocity.Force.X, body.Velocity.Force.Y,
		body.Grounded, a.session.Count(system.EventJump))
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func loadStage(loader *config.Loader, name string) (*config.StageConfig, error) {
	if tmx, ok := strings.CutSuffix(name, ".tmx"); ok {
		return loader.LoadTMXStage(tmx)
	}
	return loader.LoadStage(name)
}

// loadResolver compiles the resolver script when one is named on the command
// line or the collision system is custom.
func loadResolver(loader *config.Loader, cfg config.CollisionConfig, override string) (system.CustomResolver, error) {
	path := override
	if path == "" {
		if cfg.System != entity.CollisionCustom.String() {
			return nil, nil
		}
		path = cfg.Script
	}
	if path == "" {
		return nil, errors.New("custom collision system needs a script")
	}

	src, err := loader.LoadScript(path)
	if err != nil {
		return nil, err
	}
	r, err := script.NewResolver(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", path, err)
	}
	return r, nil
}

func framerate(d config.DisplayConfig) int {
	if d.Framerate <= 0 {
		return 60
	}
	return d.Framerate
}
