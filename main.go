package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"skystrike/game"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skystrike",
	})
	if os.Getenv("SKYSTRIKE_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := game.LoadConfig(logger)

	store := game.NewFileStore(game.DefaultStorePath(), logger)
	score := game.NewScoreSystem(&cfg, store, logger)
	audio := game.NewAudioEngine(logger, cfg.Muted)
	sprites := game.LoadSprites(logger)
	profiler := game.NewProfiler("profiles", logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	machine := game.NewMachine(logger)
	driver := game.NewDriver(&cfg, machine, profiler, logger)

	playing := game.NewPlayingState(&cfg, machine, audio, sprites, score, rng, logger)
	machine.RegisterState(game.NewMenuState(&cfg, machine, audio, score, logger))
	machine.RegisterState(playing)
	machine.RegisterState(game.NewPausedState(&cfg, machine, playing, driver, logger))
	machine.RegisterState(game.NewGameOverState(&cfg, machine, score, logger))
	machine.ChangeState(game.StateMenu)

	ebiten.SetWindowSize(int(cfg.CanvasWidth), int(cfg.CanvasHeight))
	ebiten.SetWindowTitle("Skystrike")
	if err := ebiten.RunGame(driver); err != nil {
		logger.Fatal("game loop exited", "err", err)
	}
}
