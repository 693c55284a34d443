package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-platformer/audio"
	"github.com/lixenwraith/vi-platformer/config"
	"github.com/lixenwraith/vi-platformer/engine"
	"github.com/lixenwraith/vi-platformer/level"
	"github.com/lixenwraith/vi-platformer/parameter"
	"github.com/lixenwraith/vi-platformer/systems"
	"github.com/lixenwraith/vi-platformer/trace"
)

var (
	configFlag = flag.String("config", "", "Config file (toml, yaml or json)")
	levelFlag  = flag.String("level", "", "Level file; the built-in stage when empty")
	debugFlag  = flag.Bool("debug", false, "Write logs/platformer.log and show all metrics")
	traceFlag  = flag.String("trace", "", "Record a msgpack frame trace to this file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	debugOn := cfg.Debug || *debugFlag
	if logFile := setupLogging(debugOn); logFile != nil {
		defer logFile.Close()
	}

	lvl, err := loadLevel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "level: %v\n", err)
		os.Exit(1)
	}

	opts := cfg.WorldOptions()
	opts.Logger = log.Default()
	m, err := lvl.TileMap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "level: %v\n", err)
		os.Exit(1)
	}
	w := engine.NewWorld(m, opts)
	scene, err := systems.Populate(w, lvl, cfg.PlayerParams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "populate: %v\n", err)
		os.Exit(1)
	}
	scene.Install(w)

	talk := &dialogue{world: w}
	w.Dialogue = talk

	if cfg.Audio.Enabled {
		player := audio.NewCuePlayer(cfg.Audio.Volume)
		if err := player.Init(); err != nil {
			log.Printf("audio init failed: %v (continuing without audio)", err)
		} else {
			w.Audio = player
			defer player.Close()
		}
	}

	tracePath := cfg.TracePath
	if *traceFlag != "" {
		tracePath = *traceFlag
	}
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "trace: %v\n", err)
			os.Exit(1)
		}
		rec, err := trace.NewRecorder(f, w.ID, lvl.Name)
		if err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "trace: %v\n", err)
			os.Exit(1)
		}
		w.Recorder = rec
		defer rec.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nPLATFORMER CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	run(screen, w, scene, talk, debugOn)
}

func loadLevel(cfg *config.Config) (*level.Level, error) {
	path := cfg.LevelPath
	if *levelFlag != "" {
		path = *levelFlag
	}
	if path == "" {
		return level.Default()
	}
	return level.Load(path)
}

// run steps the world on a fixed tick until quit
func run(screen tcell.Screen, w *engine.World, scene *systems.Scene, talk *dialogue, debugOn bool) {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	r := &renderer{screen: screen, debug: debugOn}
	var keys keyState
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return
				}
				if b, ok := mapKey(ev); ok {
					keys.press(b, w.Frame+1)
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			scene.Player.SetInput(keys.input(w.Frame + 1))
			w.Step()
			w.Draw()
			r.draw(w, talk)
		}
	}
}
