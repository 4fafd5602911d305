package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminnamo/portfolio-chatbot/internal/metrics"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
)

const (
	DefaultMaxSessions = 1000
	DefaultIdleTTL     = 30 * time.Minute
)

// Registry keeps the in-memory sessions served over HTTP. Nothing is
// persisted; idle sessions are swept.
type Registry struct {
	gen      Generator
	greeting string
	max      int
	idleTTL  time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. max <= 0 and idleTTL <= 0 select the
// defaults.
func NewRegistry(gen Generator, greeting string, max int, idleTTL time.Duration) *Registry {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		gen:      gen,
		greeting: greeting,
		max:      max,
		idleTTL:  idleTTL,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with a fresh greeting.
func (r *Registry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.max {
		return nil, ErrTooManySessions
	}
	s := New(uuid.NewString(), r.gen, r.greeting)
	r.sessions[s.ID] = s
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return s, nil
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle since before now-idleTTL that are not busy and
// returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.idleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.Busy() || s.LastActive().After(cutoff) {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return removed
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				slog.Debug("swept idle sessions", "removed", n)
			}
		}
	}
}
