package game

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"mecatron/pkg/realtime"
)

const (
	StatusReady   = "ready"
	StatusRunning = "running"
	StatusStopped = "stopped"
)

const (
	DefaultSpawnEvery   = 3000 * time.Millisecond
	DefaultAnimateEvery = 300 * time.Millisecond
)

// EventField is published whenever the play area changed.
const EventField = "field"

// Options configures a new game. Zero values fall back to the defaults.
type Options struct {
	Levels        [][]string
	Level         int
	Geometry      Geometry
	SpawnEvery    time.Duration
	AnimateEvery  time.Duration
	LegacyScoring bool
	Rand          *mathrand.Rand
}

func (o Options) withDefaults() (Options, error) {
	if o.Levels == nil {
		levels, err := LoadLevels()
		if err != nil {
			return o, err
		}
		o.Levels = levels
	}
	if o.Geometry == (Geometry{}) {
		o.Geometry = DefaultGeometry()
	}
	if o.SpawnEvery <= 0 {
		o.SpawnEvery = DefaultSpawnEvery
	}
	if o.AnimateEvery <= 0 {
		o.AnimateEvery = DefaultAnimateEvery
	}
	if o.Rand == nil {
		o.Rand = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	}
	return o, nil
}

// Game is one play session: the model, the play field and the two periodic
// tasks that drive them. All access goes through mu, so timer ticks and key
// presses never interleave mid-operation.
type Game struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time
	Status    string
	LastSeen  time.Time

	opts    Options
	model   *Model
	field   *PlayField
	spawn   realtime.Interval
	animate realtime.Interval
}

// NewGame builds a game in the ready state.
func NewGame(opts Options) (*Game, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	model, err := NewModel(opts.Levels, opts.Level, opts.Rand)
	if err != nil {
		return nil, err
	}
	model.legacy = opts.LegacyScoring
	now := time.Now().UTC()
	return &Game{
		ID:        newID(),
		CreatedAt: now,
		Status:    StatusReady,
		LastSeen:  now,
		opts:      opts,
		model:     model,
		field:     NewPlayField(opts.Geometry, opts.Rand),
		spawn:     realtime.Interval{Period: opts.SpawnEvery},
		animate:   realtime.Interval{Period: opts.AnimateEvery},
	}, nil
}

// Start schedules the spawn and animation tasks.
func (g *Game) Start(now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Status == StatusRunning {
		return errors.New("game already started")
	}
	g.startLocked(now)
	return nil
}

func (g *Game) startLocked(now time.Time) {
	g.Status = StatusRunning
	g.LastSeen = now
	g.spawn.Start(now)
	g.animate.Start(now)
	log.Info().Str("game", g.ID).Msg("game started")
}

// Restart clears the play area and score and starts again.
func (g *Game) Restart(now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	model, err := NewModel(g.opts.Levels, g.opts.Level, g.opts.Rand)
	if err != nil {
		return err
	}
	model.legacy = g.opts.LegacyScoring
	g.model = model
	g.field.Clear()
	g.startLocked(now)
	return nil
}

// Stop cancels both tasks. Later ticks and key presses have no effect.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Status == StatusStopped {
		return
	}
	g.Status = StatusStopped
	g.spawn.Stop()
	g.animate.Stop()
	log.Info().Str("game", g.ID).Int("score", g.model.Score()).Msg("game stopped")
}

// Tick runs whichever tasks are due at now. Animation runs before spawning so a
// new word always appears at the top.
func (g *Game) Tick(now time.Time) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Status != StatusRunning {
		return nil
	}
	changed := false
	if g.animate.Fire(now) {
		g.animateLocked()
		changed = true
	}
	if g.spawn.Fire(now) {
		g.spawnLocked()
		changed = true
	}
	if !changed {
		return nil
	}
	return []string{EventField}
}

// NextTimer returns when the next task is due, and false once the game is stopped.
func (g *Game) NextTimer(now time.Time) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Status != StatusRunning {
		return time.Time{}, false
	}
	return realtime.Earliest(&g.spawn, &g.animate)
}

// Spawn asks the model for a word and renders it.
func (g *Game) Spawn() Word {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spawnLocked()
}

func (g *Game) spawnLocked() Word {
	w := g.field.Render(g.model.ProduceWord())
	log.Debug().Str("game", g.ID).Str("word", w.Original).Int("left", w.Left).Msg("word spawned")
	return w
}

// Animate advances every word one step and returns how many expired.
func (g *Game) Animate() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.animateLocked()
}

func (g *Game) animateLocked() int {
	expired := g.field.AdvanceAll()
	if expired > 0 {
		log.Debug().Str("game", g.ID).Int("expired", expired).Msg("words expired")
	}
	return expired
}

// Press handles one keystroke against every word in flight. The zero rune is ignored.
func (g *Game) Press(key rune, now time.Time) PressResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if key == 0 || g.Status == StatusStopped {
		return PressResult{}
	}
	g.LastSeen = now
	res := g.field.Press(key)
	for _, w := range res.Completed {
		g.model.RegisterCompletion()
		log.Debug().Str("game", g.ID).Str("word", w.Original).Int("score", g.model.Score()).Msg("word completed")
	}
	return res
}

// Touch records activity so the session is not reaped as idle.
func (g *Game) Touch(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if now.After(g.LastSeen) {
		g.LastSeen = now
	}
}

// IdleSince returns how long the session has gone without activity.
func (g *Game) IdleSince(now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return now.Sub(g.LastSeen)
}

// RaiseLevel forwards to the model's level hook.
func (g *Game) RaiseLevel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.model.RaiseLevel()
}

// LowerLevel forwards to the model's level hook.
func (g *Game) LowerLevel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.model.LowerLevel()
}

// Snapshot captures the state needed for rendering.
type Snapshot struct {
	ID       string
	Status   string
	Words    []Word
	Score    int
	Level    int
	Geometry Geometry
}

// Snapshot returns a consistent view of the current game state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:       g.ID,
		Status:   g.Status,
		Words:    g.field.Words(),
		Score:    g.model.Score(),
		Level:    g.model.Level(),
		Geometry: g.field.Geometry(),
	}
}

func newID() string {
	// 10 bytes -> 16 chars of base32, short and url-safe.
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(encoder.EncodeToString(buf))
}
