package events

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"polaris/components/internal/domain"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus fans events out to in-process subscribers. Delivery never blocks the
// emitter: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan *domain.ActionEvent
	nextID int
	buffer int
	closed bool
}

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus{
		subs:   make(map[int]chan *domain.ActionEvent),
		buffer: buffer,
	}
}

// Subscribe returns a channel of events and a function that ends the
// subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan *domain.ActionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *domain.ActionEvent, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
}

func (b *Bus) Emit(ctx context.Context, event *domain.ActionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			log.Warnf("⚠️ Subscriber %d is full, dropping event %s", id, event.ID)
		}
	}

	log.Debugf("Emitted %s event %s to %d subscribers", event.Key, event.ID, len(b.subs))
	return nil
}

// Close ends all subscriptions. Emit fails afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
