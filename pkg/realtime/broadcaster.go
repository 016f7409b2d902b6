package realtime

import "sync"

// DefaultBuffer is the per-subscriber event buffer.
const DefaultBuffer = 16

// Broadcaster publishes lightweight events to SSE subscribers.
type Broadcaster struct {
	mu     sync.Mutex
	buffer int
	closed bool
	subs   map[chan string]struct{}
}

// NewBroadcaster creates an empty broadcaster with DefaultBuffer slots per subscriber.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		buffer: DefaultBuffer,
		subs:   make(map[chan string]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel.
// Subscribing to a closed broadcaster returns an already closed channel.
func (b *Broadcaster) Subscribe() chan string {
	ch := make(chan string, b.buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers an event to all subscribers and reports how many received it.
func (b *Broadcaster) Publish(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	delivered := 0
	for ch := range b.subs {
		select {
		case ch <- event:
			delivered++
		default:
			// Lagging subscriber; the next frame carries the full field anyway.
		}
	}
	return delivered
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription. Streams reading from their channel see it closed.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
