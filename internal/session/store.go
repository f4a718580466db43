package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no session exists for a key.
var ErrNotFound = errors.New("session not found")

// Store persists conversation sessions keyed by user identifier.
type Store interface {
	Get(ctx context.Context, key string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, key string) error
}
