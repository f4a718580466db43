package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "+491701234567")
	assert.ErrorIs(t, err, ErrNotFound)

	sess := New("+491701234567")
	sess.Stage = StageAwaitingTime
	sess.Data.Date = "08.11.2025"
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "+491701234567")
	require.NoError(t, err)
	assert.Equal(t, StageAwaitingTime, got.Stage)
	assert.Equal(t, "08.11.2025", got.Data.Date)

	require.NoError(t, store.Delete(ctx, "+491701234567"))
	_, err = store.Get(ctx, "+491701234567")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, New("expiring")))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "expiring")
	assert.ErrorIs(t, err, ErrNotFound)
}
