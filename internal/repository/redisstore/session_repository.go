package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionRepository stores sessions as JSON in redis, for deployments where
// sessions must survive restarts or be shared across instances. Expiry is
// renewed on every save.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(url string, ttl time.Duration) (*SessionRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &SessionRepository{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *SessionRepository) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(s.Id), data, r.ttl).Err()
}

func (r *SessionRepository) Find(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

func (r *SessionRepository) Close() error {
	return r.client.Close()
}
