package game

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"mecatron/pkg/realtime"
)

// ErrNotFound is returned for operations on an unknown game id.
var ErrNotFound = errors.New("game not found")

// Store holds games and delegates to realtime.RoomStore for broadcast and timing loops.
type Store struct {
	r    *realtime.RoomStore[*Game]
	idle time.Duration
}

// NewStore creates an in-memory game store. Sessions with no activity and no
// stream subscribers for longer than idle are stopped and dropped; zero disables reaping.
func NewStore(idle time.Duration) *Store {
	return &Store{r: realtime.NewRoomStore[*Game](), idle: idle}
}

// CreateGame builds a game from opts, registers it and starts it at now.
func (s *Store) CreateGame(opts Options, now time.Time) (*Game, error) {
	g, err := NewGame(opts)
	if err != nil {
		return nil, err
	}
	if err := g.Start(now); err != nil {
		return nil, err
	}
	s.r.Create(g.ID, g)
	return g, nil
}

// GetGame returns a game by ID if it exists.
func (s *Store) GetGame(id string) (*Game, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Broadcaster returns the SSE broadcaster for a game.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// Publish notifies subscribers of a game update with a typed event.
func (s *Store) Publish(id string, event string) {
	s.r.Publish(id, event)
}

// EnsureLoop starts the timer loop for a game if not already running.
func (s *Store) EnsureLoop(id string) {
	expired := false
	getState := func() *Game {
		room, ok := s.r.Get(id)
		if !ok {
			return nil
		}
		return room.State
	}
	tick := func(state *Game, now time.Time) (time.Time, []string, bool) {
		if state == nil {
			return time.Time{}, nil, true
		}
		if hub, ok := s.r.Broadcaster(id); ok && hub.Subscribers() > 0 {
			state.Touch(now)
		}
		if s.idle > 0 && state.IdleSince(now) >= s.idle {
			expired = true
			state.Stop()
			log.Info().Str("game", id).Dur("idle", s.idle).Msg("session idle, stopping")
			return time.Time{}, []string{EventField}, true
		}
		events := state.Tick(now)
		next, ok := state.NextTimer(now)
		if !ok {
			return time.Time{}, events, true
		}
		if s.idle > 0 {
			if deadline := now.Add(s.idle - state.IdleSince(now)); deadline.Before(next) {
				next = deadline
			}
		}
		return next, events, false
	}
	onExit := func() {
		if expired {
			s.r.Delete(id)
		}
	}
	s.r.RunLoop(id, getState, tick, onExit)
}

// WakeLoop unblocks the loop so it recomputes (e.g. after a restart).
func (s *Store) WakeLoop(id string) {
	s.r.Wake(id)
}

// LoopRunning reports whether the game's timer loop is active.
func (s *Store) LoopRunning(id string) bool {
	return s.r.Running(id)
}

// StopGame stops a game and its timer loop. The session stays readable.
func (s *Store) StopGame(id string) error {
	g, ok := s.GetGame(id)
	if !ok {
		return ErrNotFound
	}
	g.Stop()
	s.r.StopLoop(id)
	s.Publish(id, EventField)
	return nil
}

// RemoveGame stops and forgets a game, closing its subscribers.
func (s *Store) RemoveGame(id string) bool {
	if g, ok := s.GetGame(id); ok {
		g.Stop()
	}
	return s.r.Delete(id)
}

// Close stops and removes every game. Open streams see their channels closed.
func (s *Store) Close() {
	for _, id := range s.r.IDs() {
		s.RemoveGame(id)
	}
}
