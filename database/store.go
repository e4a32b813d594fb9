package database

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrUnchanged may be returned from an Update callback to skip the write.
	ErrUnchanged = errors.New("value unchanged")
)

// Store is the key-value store behind every ledger. Values are opaque bytes
// (JSON in practice). Channels carry payload-free change notifications:
// subscribers re-read whatever key they care about.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update runs fn on the current value (nil when missing) and stores the
	// result atomically with respect to other Update calls on the same key.
	// A nil result deletes the key.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error

	Publish(ctx context.Context, channel string) error
	Subscribe(ctx context.Context, channels ...string) (*Subscription, error)
}

// Notification is delivered to subscribers of a channel.
type Notification struct {
	Channel string
}

// Subscription receives notifications until Close is called or the context
// passed to Subscribe is done. C is closed afterwards.
type Subscription struct {
	C <-chan Notification

	once    sync.Once
	closeFn func() error
	err     error
}

func newSubscription(c <-chan Notification, closeFn func() error) *Subscription {
	return &Subscription{C: c, closeFn: closeFn}
}

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		if s.closeFn != nil {
			s.err = s.closeFn()
		}
	})
	return s.err
}

const subscriptionBuffer = 16

// hub fans notifications out to in-process subscribers. Sends never block:
// a subscriber whose buffer is full misses the notification, which is fine
// because notifications carry no data.
type hub struct {
	mu   sync.Mutex
	subs map[*hubSub]struct{}
}

type hubSub struct {
	channels map[string]struct{}
	ch       chan Notification
}

func newHub() *hub {
	return &hub{subs: make(map[*hubSub]struct{})}
}

func (h *hub) publish(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if _, ok := s.channels[channel]; !ok {
			continue
		}
		select {
		case s.ch <- Notification{Channel: channel}:
		default:
		}
	}
}

func (h *hub) subscribe(ctx context.Context, channels []string) *Subscription {
	s := &hubSub{
		channels: make(map[string]struct{}, len(channels)),
		ch:       make(chan Notification, subscriptionBuffer),
	}
	for _, c := range channels {
		s.channels[c] = struct{}{}
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	done := make(chan struct{})
	sub := newSubscription(s.ch, func() error {
		close(done)
		h.mu.Lock()
		delete(h.subs, s)
		close(s.ch)
		h.mu.Unlock()
		return nil
	})
	closeOnDone(ctx, sub, done)
	return sub
}

// closeOnDone closes sub when ctx ends, unless sub is closed first.
func closeOnDone(ctx context.Context, sub *Subscription, done <-chan struct{}) {
	go func() {
		select {
		case <-ctx.Done():
			_ = sub.Close()
		case <-done:
		}
	}()
}
