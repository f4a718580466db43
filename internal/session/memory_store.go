package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Entries expire after the
// configured TTL; a janitor goroutine sweeps them out so the map stays
// bounded across long uptimes.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	done     chan struct{}
	closed   sync.Once
}

type memoryEntry struct {
	sess      *Session
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store. A ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

// Get returns the session for a key or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, key string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.ttl > 0 && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	copied := *entry.sess
	return &copied, nil
}

// Put stores the session, resetting its TTL.
func (s *MemoryStore) Put(ctx context.Context, sess *Session) error {
	copied := *sess
	copied.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	s.sessions[sess.Key] = &memoryEntry{
		sess:      &copied,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the session for a key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.closed.Do(func() { close(s.done) })
}

func (s *MemoryStore) janitor() {
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
