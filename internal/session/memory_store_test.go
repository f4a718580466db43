package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "+491701234567")
	assert.ErrorIs(t, err, ErrNotFound)

	sess := New("+491701234567")
	sess.Stage = StageAwaitingDate
	sess.Data.FirstName = "Anna"
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "+491701234567")
	require.NoError(t, err)
	assert.Equal(t, StageAwaitingDate, got.Stage)
	assert.Equal(t, "Anna", got.Data.FirstName)

	require.NoError(t, store.Delete(ctx, "+491701234567"))
	_, err = store.Get(ctx, "+491701234567")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	sess := New("user@example.com")
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	got.Stage = StageCompleted

	again, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, StageStart, again.Stage, "mutating a returned session must not affect the store")
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, New("short-lived")))
	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, ErrNotFound)
}
