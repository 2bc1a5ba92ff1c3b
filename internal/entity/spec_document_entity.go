package entity

import (
	"time"

	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/summary"

	"github.com/google/uuid"
)

// SpecDocument is a generated, priced and validated specification document
// for one trade of a session.
type SpecDocument struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Gewerk    string
	Document  *lv.PricedDocument
	Summary   *summary.Summary
	Metadata  *lv.Metadata
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
