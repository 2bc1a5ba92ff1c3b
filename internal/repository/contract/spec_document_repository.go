package contract

import (
	"context"

	"github.com/byndl-mvp/PoC-sub002/internal/entity"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/scope"

	"github.com/google/uuid"
)

type SpecDocumentRepository interface {
	Create(ctx context.Context, doc *entity.SpecDocument) error
	Update(ctx context.Context, doc *entity.SpecDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, scopes ...scope.Scope) (*entity.SpecDocument, error)
	FindAll(ctx context.Context, scopes ...scope.Scope) ([]*entity.SpecDocument, error)
	Count(ctx context.Context, scopes ...scope.Scope) (int64, error)
}
