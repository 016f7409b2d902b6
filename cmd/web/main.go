package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"mecatron/internal/config"
	"mecatron/internal/game"
	"mecatron/internal/handlers"
	"mecatron/internal/logging"
)

func main() {
	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	// Fail fast on a bad word file instead of on the first visitor.
	if _, err := cfg.GameOptions(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	store := game.NewStore(cfg.SessionIdle)
	r := handlers.NewRouter(store, cfg.GameOptions, cfg.BaseURL)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	server.RegisterOnShutdown(store.Close)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msgf("listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
