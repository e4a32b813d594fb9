package database

import (
	"context"
	"strings"
)

// Scoped returns a view of s whose keys and channels live under one client
// session. Two views with different scopes never see each other's data.
func Scoped(s Store, scope string) Store {
	return &scopedStore{inner: s, prefix: "session:" + scope + ":"}
}

type scopedStore struct {
	inner  Store
	prefix string
}

func (s *scopedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scopedStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	return s.inner.Update(ctx, s.prefix+key, fn)
}

func (s *scopedStore) Publish(ctx context.Context, channel string) error {
	return s.inner.Publish(ctx, s.prefix+channel)
}

func (s *scopedStore) Subscribe(ctx context.Context, channels ...string) (*Subscription, error) {
	prefixed := make([]string, len(channels))
	for i, c := range channels {
		prefixed[i] = s.prefix + c
	}
	inner, err := s.inner.Subscribe(ctx, prefixed...)
	if err != nil {
		return nil, err
	}

	out := make(chan Notification, subscriptionBuffer)
	go func() {
		defer close(out)
		for n := range inner.C {
			select {
			case out <- Notification{Channel: strings.TrimPrefix(n.Channel, s.prefix)}:
			default:
			}
		}
	}()
	return newSubscription(out, inner.Close), nil
}
