package unitofwork

import (
	"context"

	"github.com/byndl-mvp/PoC-sub002/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SpecDocumentRepository() contract.SpecDocumentRepository
}
