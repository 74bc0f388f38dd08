package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bowstep/logger"
	"github.com/milk9111/bowstep/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (arrow slot keys, hot reload, overlay)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level prefab in prefabs/ (overrides game.yaml)")
	configName := flag.String("config", "game.yaml", "game config prefab")
	flag.Parse()

	cfg, err := prefabs.LoadGameSpec(*configName)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}

	lg := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Debug && cfg.Log.Level == "" {
		logger.SetLevel("debug")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle(cfg.Title)

	game, err := NewGame(cfg, lg)
	if err != nil {
		lg.Error("start game", "err", err)
		log.Fatal(err)
	}
	defer game.Close()

	// Mouse look needs the cursor captured until the pause menu frees it.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		lg.Error("game exited", "err", err)
	}
}
