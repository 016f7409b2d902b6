package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"mecatron/internal/config"
	"mecatron/internal/game"
	"mecatron/internal/logging"
	"mecatron/internal/sound"
	"mecatron/internal/terminal"
)

var (
	soundFlag = flag.Bool("sound", false, "play a tone for every completed word")
	logFile   = flag.String("log", filepath.Join(os.TempDir(), "mecatron.log"), "log file (the terminal is busy drawing)")
)

func main() {
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.GameOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	g, err := game.NewGame(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game: %v\n", err)
		os.Exit(1)
	}

	var chime terminal.Chime
	if *soundFlag {
		c, err := sound.NewChime()
		if err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		} else {
			defer c.Close()
			chime = c
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	// Restore the terminal even if the game crashes.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "mecatron crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Start(time.Now().UTC()); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "game: %v\n", err)
		os.Exit(1)
	}
	runErr := terminal.New(screen, g, chime).Run(ctx)
	g.Stop()
	screen.Fini()
	if runErr != nil && runErr != context.Canceled {
		log.Error().Err(runErr).Msg("terminal loop")
	}
}
