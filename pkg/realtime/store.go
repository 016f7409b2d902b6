package realtime

import (
	"context"
	"sync"
	"time"
)

// Room holds state and a broadcaster for one session.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

// Hub returns the room's broadcaster.
func (r *Room[T]) Hub() *Broadcaster {
	return r.hub
}

// RoomStore manages rooms, their broadcasters and their timing loops.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]*loop
}

// loop is one running timing goroutine. A cancelled loop may still be unwinding
// when a new one is started for the same room.
type loop struct {
	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]*loop),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Len returns the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Delete stops the room's loop, closes its broadcaster and forgets the room.
func (s *RoomStore[T]) Delete(id string) bool {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	l := s.loops[id]
	s.mu.Unlock()
	if l != nil {
		l.cancel()
	}
	if ok && r.hub != nil {
		r.hub.Close()
	}
	return ok
}

// Publish notifies subscribers of the room's broadcaster. Unknown rooms are ignored.
func (s *RoomStore[T]) Publish(id string, event string) {
	hub, ok := s.Broadcaster(id)
	if !ok {
		return
	}
	hub.Publish(event)
}

// Broadcaster returns the broadcaster for an existing room.
func (s *RoomStore[T]) Broadcaster(id string) (*Broadcaster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return r.hub, true
}

// TickFunc is called by RunLoop to determine the next wake time and events to publish.
// stop true means exit the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []string, stop bool)

// RunLoop starts a timing loop for the room. If a live loop already exists for id,
// it is not started again; a cancelled one is replaced.
// onExit, when non-nil, runs once after the loop goroutine returns.
func (s *RoomStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T], onExit func()) {
	s.mu.Lock()
	if l, ok := s.loops[id]; ok && l.ctx.Err() == nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	self := &loop{ctx: ctx, cancel: cancel, wake: make(chan struct{}, 1)}
	wake := self.wake
	s.loops[id] = self
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			if s.loops[id] == self {
				delete(s.loops, id)
			}
			s.mu.Unlock()
			cancel()
			if onExit != nil {
				onExit()
			}
		}()

		for {
			state := getState()
			now := time.Now().UTC()
			next, events, stop := tick(state, now)
			for _, e := range events {
				s.Publish(id, e)
			}
			if stop {
				return
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			case <-wake:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
		}
	}()
}

// Running reports whether a live loop is active for id.
func (s *RoomStore[T]) Running(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loops[id]
	return ok && l.ctx.Err() == nil
}

// StopLoop cancels the room's loop if one is running.
func (s *RoomStore[T]) StopLoop(id string) {
	s.mu.RLock()
	l, ok := s.loops[id]
	s.mu.RUnlock()
	if ok {
		l.cancel()
	}
}

// Wake unblocks the room's loop so it recomputes immediately.
func (s *RoomStore[T]) Wake(id string) {
	s.mu.RLock()
	l, ok := s.loops[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// IDs returns the ids of all rooms.
func (s *RoomStore[T]) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	return ids
}
