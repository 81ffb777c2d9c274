package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Config directory; empty uses the embedded configs")
	flag.StringVar(&opts.stage, "stage", "demo", "Stage name; a .tmx suffix loads a Tiled map")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Play back a recorded input file")
	flag.StringVar(&opts.script, "script", "", "Tengo resolver script, relative to the config directory")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window (requires -replay)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload attributes and scripts when they change (requires -config)")
	flag.IntVar(&opts.frames, "frames", 0, "Stop a headless run after this many frames")
	flag.Parse()

	app, err := newApp(opts)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer app.Close()

	if opts.headless {
		if err := app.game.RunHeadless(opts.frames); err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		app.logSummary()
		return
	}

	display := app.cfg.Movement.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Kinematic Sandbox")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(app.game); err != nil {
		log.Fatal(err)
	}
}
