package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTTL           = 24 * time.Hour
	DefaultSweepInterval = time.Minute
)

var ErrInvalidID = errors.New("invalid session id")

// Registry keeps the live sessions of this process. A session evicted from
// memory comes back with its persisted cart the next time its id is seen.
type Registry struct {
	builder Builder
	ttl     time.Duration
	now     func() time.Time
	logger  logger.ZapLogger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(builder Builder, ttl time.Duration, log logger.ZapLogger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		builder:  builder,
		ttl:      ttl,
		now:      time.Now,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}

// Acquire returns the session for id, creating one when id is empty. The
// boolean reports whether a new id was issued.
func (r *Registry) Acquire(ctx context.Context, id string) (*Session, bool, error) {
	issued := false
	if id == "" {
		id = uuid.NewString()
		issued = true
	} else if _, err := uuid.Parse(id); err != nil {
		return nil, false, ErrInvalidID
	}

	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.now()
		r.mu.Unlock()
		return s, issued, nil
	}
	r.mu.Unlock()

	// Build reads cart storage, keep it outside the registry lock.
	built := r.builder.Build(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if ok {
		built.Close()
	} else {
		s = built
		r.sessions[id] = s
		r.logger.Debug("session opened", zap.String("session_id", id), zap.Bool("issued", issued))
	}
	s.lastSeen = r.now()
	return s, issued, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than the ttl. Sessions busy with a
// request are skipped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	n := 0
	for id, s := range r.sessions {
		if s.lastSeen.After(cutoff) || !s.TryLock() {
			continue
		}
		s.Close()
		s.Unlock()
		delete(r.sessions, id)
		n++
	}
	if n > 0 {
		r.logger.Info("expired sessions swept", zap.Int("count", n))
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close stops every session's background work.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.Lock()
		s.Close()
		s.Unlock()
		delete(r.sessions, id)
	}
}
