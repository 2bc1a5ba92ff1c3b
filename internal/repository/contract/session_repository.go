package contract

import (
	"context"

	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
)

// SessionRepository stores question sessions with a TTL. Writes follow
// last-write-wins semantics; expired sessions simply disappear.
type SessionRepository interface {
	Save(ctx context.Context, s *session.Session) error
	Find(ctx context.Context, id uuid.UUID) (*session.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
