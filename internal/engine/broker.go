package engine

import (
	"sync"

	"github.com/blackmichael/tweetfeed/internal/domain"
)

// broker fans display-sequence snapshots out to subscribers. Slow subscribers
// are skipped rather than blocking a publish; each snapshot supersedes the
// previous one, so a dropped intermediate is harmless.
type broker struct {
	mu     sync.Mutex
	subs   map[chan []domain.Record]struct{}
	closed bool
}

func newBroker() *broker {
	return &broker{
		subs: make(map[chan []domain.Record]struct{}),
	}
}

func (b *broker) subscribe() chan []domain.Record {
	ch := make(chan []domain.Record, 8)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

func (b *broker) unsubscribe(ch chan []domain.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *broker) publish(snapshot []domain.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- snapshot:
		default:
			// Subscriber buffer full; it will catch up on the next snapshot.
		}
	}
}

func (b *broker) close() {
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
