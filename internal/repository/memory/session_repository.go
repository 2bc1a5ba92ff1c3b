package memory

import (
	"context"
	"time"

	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. The cache janitor
// evicts sessions that saw no activity within the TTL.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl, sweepInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, sweepInterval),
		ttl:   ttl,
	}
}

func (r *SessionRepository) Save(_ context.Context, s *session.Session) error {
	// Re-setting renews the expiry, so every save counts as activity.
	r.cache.Set(s.Id.String(), s, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Find(_ context.Context, id uuid.UUID) (*session.Session, error) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*session.Session), nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}
