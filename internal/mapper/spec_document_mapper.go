package mapper

import (
	"encoding/json"
	"time"

	"github.com/byndl-mvp/PoC-sub002/internal/entity"
	"github.com/byndl-mvp/PoC-sub002/internal/model"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/summary"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SpecDocumentMapper struct{}

func NewSpecDocumentMapper() *SpecDocumentMapper {
	return &SpecDocumentMapper{}
}

func (m *SpecDocumentMapper) ToEntity(d *model.SpecDocument) *entity.SpecDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var doc *lv.PricedDocument
	if len(d.Document) > 0 {
		doc = &lv.PricedDocument{}
		if err := json.Unmarshal(d.Document, doc); err != nil {
			doc = nil
		}
	}

	var sum *summary.Summary
	if len(d.Summary) > 0 {
		sum = &summary.Summary{}
		if err := json.Unmarshal(d.Summary, sum); err != nil {
			sum = nil
		}
	}

	var meta *lv.Metadata
	if len(d.Metadata) > 0 {
		meta = &lv.Metadata{}
		if err := json.Unmarshal(d.Metadata, meta); err != nil {
			meta = nil
		}
	}

	return &entity.SpecDocument{
		Id:        d.Id,
		SessionId: d.SessionId,
		Gewerk:    d.Gewerk,
		Document:  doc,
		Summary:   sum,
		Metadata:  meta,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: d.DeletedAt.Valid,
	}
}

func (m *SpecDocumentMapper) ToModel(d *entity.SpecDocument) *model.SpecDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	out := &model.SpecDocument{
		Id:        d.Id,
		SessionId: d.SessionId,
		Gewerk:    d.Gewerk,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
	if d.Document != nil {
		out.Document = marshalJSON(d.Document)
	}
	if d.Summary != nil {
		out.Summary = marshalJSON(d.Summary)
	}
	if d.Metadata != nil {
		out.Metadata = marshalJSON(d.Metadata)
	}
	return out
}

func (m *SpecDocumentMapper) ToEntities(docs []*model.SpecDocument) []*entity.SpecDocument {
	entities := make([]*entity.SpecDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func marshalJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
