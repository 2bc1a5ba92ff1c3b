package implementation

import (
	"context"
	"errors"

	"github.com/byndl-mvp/PoC-sub002/internal/entity"
	"github.com/byndl-mvp/PoC-sub002/internal/mapper"
	"github.com/byndl-mvp/PoC-sub002/internal/model"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/contract"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpecDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SpecDocumentMapper
}

func NewSpecDocumentRepository(db *gorm.DB) contract.SpecDocumentRepository {
	return &SpecDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewSpecDocumentMapper(),
	}
}

func (r *SpecDocumentRepositoryImpl) applyScopes(db *gorm.DB, scopes ...scope.Scope) *gorm.DB {
	for _, s := range scopes {
		db = s.Apply(db)
	}
	return db
}

func (r *SpecDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.SpecDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *SpecDocumentRepositoryImpl) Update(ctx context.Context, doc *entity.SpecDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *SpecDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SpecDocument{}, id).Error
}

func (r *SpecDocumentRepositoryImpl) FindOne(ctx context.Context, scopes ...scope.Scope) (*entity.SpecDocument, error) {
	var m model.SpecDocument
	query := r.applyScopes(r.db.WithContext(ctx), scopes...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SpecDocumentRepositoryImpl) FindAll(ctx context.Context, scopes ...scope.Scope) ([]*entity.SpecDocument, error) {
	var models []*model.SpecDocument
	query := r.applyScopes(r.db.WithContext(ctx), scopes...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SpecDocumentRepositoryImpl) Count(ctx context.Context, scopes ...scope.Scope) (int64, error) {
	var count int64
	query := r.applyScopes(r.db.WithContext(ctx).Model(&model.SpecDocument{}), scopes...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
