// Package config reads runtime settings from the environment, after loading an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mecatron/internal/game"
)

// Config holds every tunable of the server and terminal front ends.
type Config struct {
	Port          string
	BaseURL       string
	LogLevel      string
	LogFormat     string
	SpawnEvery    time.Duration
	AnimateEvery  time.Duration
	Geometry      game.Geometry
	Level         int
	WordsFile     string
	LegacyScoring bool
	SessionIdle   time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	c := Config{
		Port:      getEnv("PORT", "8080"),
		BaseURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		WordsFile: strings.TrimSpace(os.Getenv("MECATRON_WORDS_FILE")),
	}
	var err error
	if c.SpawnEvery, err = durationEnv("MECATRON_SPAWN_EVERY", game.DefaultSpawnEvery); err != nil {
		return c, err
	}
	if c.AnimateEvery, err = durationEnv("MECATRON_ANIMATE_EVERY", game.DefaultAnimateEvery); err != nil {
		return c, err
	}
	if c.SessionIdle, err = durationEnv("MECATRON_SESSION_IDLE", 10*time.Minute); err != nil {
		return c, err
	}
	if c.Geometry.Step, err = intEnv("MECATRON_STEP_PX", game.DefaultStep); err != nil {
		return c, err
	}
	if c.Geometry.Height, err = intEnv("MECATRON_HEIGHT_PX", game.DefaultHeight); err != nil {
		return c, err
	}
	if c.Geometry.MaxLeft, err = intEnv("MECATRON_MAX_LEFT_PCT", game.DefaultMaxLeft); err != nil {
		return c, err
	}
	if c.Level, err = intEnv("MECATRON_LEVEL", 0); err != nil {
		return c, err
	}
	if c.LegacyScoring, err = boolEnv("MECATRON_LEGACY_SCORING", false); err != nil {
		return c, err
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch {
	case c.SpawnEvery <= 0:
		return fmt.Errorf("MECATRON_SPAWN_EVERY: must be positive, got %v", c.SpawnEvery)
	case c.AnimateEvery <= 0:
		return fmt.Errorf("MECATRON_ANIMATE_EVERY: must be positive, got %v", c.AnimateEvery)
	case c.SessionIdle < 0:
		return fmt.Errorf("MECATRON_SESSION_IDLE: must not be negative, got %v", c.SessionIdle)
	case c.Geometry.Step <= 0:
		return fmt.Errorf("MECATRON_STEP_PX: must be positive, got %d", c.Geometry.Step)
	case c.Geometry.Height <= 0:
		return fmt.Errorf("MECATRON_HEIGHT_PX: must be positive, got %d", c.Geometry.Height)
	case c.Geometry.MaxLeft <= 0 || c.Geometry.MaxLeft > 100:
		return fmt.Errorf("MECATRON_MAX_LEFT_PCT: must be in 1..100, got %d", c.Geometry.MaxLeft)
	case c.Level < 0:
		return fmt.Errorf("MECATRON_LEVEL: must not be negative, got %d", c.Level)
	}
	return nil
}

// GameOptions turns the config into options for a new game, loading the
// word file when one is configured.
func (c Config) GameOptions() (game.Options, error) {
	opts := game.Options{
		Level:         c.Level,
		Geometry:      c.Geometry,
		SpawnEvery:    c.SpawnEvery,
		AnimateEvery:  c.AnimateEvery,
		LegacyScoring: c.LegacyScoring,
	}
	if c.WordsFile != "" {
		levels, err := game.ReadWordFile(c.WordsFile)
		if err != nil {
			return opts, fmt.Errorf("MECATRON_WORDS_FILE: %w", err)
		}
		opts.Levels = levels
	}
	return opts, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}

func intEnv(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func boolEnv(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
