// Package broker fans textual session events out to stream subscribers.
package broker

import "sync"

// subscriber buffer. A subscriber that falls this far behind starts losing
// events rather than stalling every publisher.
const subscriberBuffer = 64

// Broker delivers published events to every subscriber of a session, in
// publish order. Publish never blocks on a slow subscriber.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan string]struct{}
}

func New() *Broker {
	return &Broker{subs: make(map[string]map[chan string]struct{})}
}

// Subscribe registers a new subscriber for a session and returns its
// channel plus a cancel func. Cancel closes the channel and removes the
// subscription; it is safe to call more than once.
func (b *Broker) Subscribe(sessionID string) (<-chan string, func()) {
	ch := make(chan string, subscriberBuffer)
	b.mu.Lock()
	set, ok := b.subs[sessionID]
	if !ok {
		set = make(map[chan string]struct{})
		b.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[sessionID], ch)
			if len(b.subs[sessionID]) == 0 {
				delete(b.subs, sessionID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish sends message to every subscriber of sessionID. Subscribers with
// a full buffer are skipped.
func (b *Broker) Publish(sessionID, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- message:
		default:
		}
	}
}

// Subscribers reports how many subscribers a session currently has.
func (b *Broker) Subscribers(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sessionID])
}
