// Package session holds per-conversation state in process memory.
//
// The store guarantees at-most-one concurrent mutator per session id:
// callers take the per-session lock for the duration of a turn, while
// turns for different sessions proceed independently. Storage sits on
// an expiring cache so idle conversations age out on their own.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/honeylab/scambait/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps live sessions keyed by session id.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
	locks sync.Map // sessionID -> *sync.Mutex
}

// New creates a store whose sessions expire after ttl of inactivity.
// Expiry sweeping is driven by Evict, not a background janitor, so
// tests stay deterministic.
func New(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

// Lock serializes turns for one session id and returns the unlock func.
// The caller must release it before any slow external call.
func (s *Store) Lock(sessionID string) func() {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Get returns the session for id, or nil if absent or expired.
func (s *Store) Get(sessionID string) *domain.Session {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil
	}
	return v.(*domain.Session)
}

// Upsert stores the session and refreshes its inactivity window.
func (s *Store) Upsert(sess *domain.Session) {
	s.cache.Set(sess.ID, sess, s.ttl)
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}

// Evict removes sessions idle longer than olderThan along with their
// lock entries, and sweeps cache-expired entries. Returns how many
// sessions were removed. A session whose mutex is currently held is
// skipped: deleting a lock out from under an in-flight turn would let
// the next turn mint a fresh mutex and mutate concurrently.
func (s *Store) Evict(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for id, item := range s.cache.Items() {
		sess, ok := item.Object.(*domain.Session)
		if !ok || !sess.LastActivityAt.Before(cutoff) {
			continue
		}
		if v, held := s.locks.Load(id); held {
			mu := v.(*sync.Mutex)
			if !mu.TryLock() {
				continue
			}
			s.cache.Delete(id)
			s.locks.Delete(id)
			mu.Unlock()
		} else {
			s.cache.Delete(id)
		}
		removed++
	}
	s.cache.DeleteExpired()
	if removed > 0 {
		slog.Info("evicted idle sessions", "count", removed)
	}
	return removed
}

// StartEvictionWorker sweeps idle sessions on a fixed interval until the
// context is cancelled.
func (s *Store) StartEvictionWorker(ctx context.Context, interval, olderThan time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("session eviction worker started", "interval", interval, "ttl", olderThan)
		for {
			select {
			case <-ticker.C:
				s.Evict(olderThan)
			case <-ctx.Done():
				slog.Info("session eviction worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
