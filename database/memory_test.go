package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	got, _ := s.Get(ctx, "k")
	got[0] = 'z'

	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Update(ctx, "k", func(cur []byte) ([]byte, error) {
		assert.Nil(t, cur)
		return []byte("1"), nil
	})
	require.NoError(t, err)

	err = s.Update(ctx, "k", func(cur []byte) ([]byte, error) {
		assert.Equal(t, "1", string(cur))
		return nil, ErrUnchanged
	})
	require.NoError(t, err)
	got, _ := s.Get(ctx, "k")
	assert.Equal(t, "1", string(got))

	boom := errors.New("boom")
	err = s.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	require.NoError(t, s.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, nil }))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_PublishSubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sub, err := s.Subscribe(ctx, "cartUpdated")
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, s.Publish(ctx, "wishlistUpdated"))
	require.NoError(t, s.Publish(ctx, "cartUpdated"))

	select {
	case n := <-sub.C:
		assert.Equal(t, "cartUpdated", n.Channel)
	case <-time.After(time.Second):
		t.Fatal("no notification")
	}

	select {
	case n := <-sub.C:
		t.Fatalf("unexpected notification %q", n.Channel)
	default:
	}
}

func TestMemoryStore_SubscriptionClosesWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	sub, err := s.Subscribe(ctx, "cartUpdated")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-sub.C:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}
	assert.NoError(t, sub.Close())
}

func TestMemoryStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	sub, err := s.Subscribe(ctx, "cartUpdated")
	require.NoError(t, err)
	defer sub.Close()

	for i := 0; i < subscriptionBuffer*4; i++ {
		require.NoError(t, s.Publish(ctx, "cartUpdated"))
	}
	assert.Len(t, sub.C, subscriptionBuffer)
}
