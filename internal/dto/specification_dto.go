package dto

import (
	"time"

	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/summary"
	"github.com/byndl-mvp/PoC-sub002/pkg/upload"

	"github.com/google/uuid"
)

type GenerateSpecificationRequest struct {
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
	Gewerk    string    `json:"gewerk" validate:"required"`
	// Upload carries pre-parsed file evidence, when the client has any.
	Upload *upload.Context `json:"upload"`
	// CreateMissingPositions additionally synthesizes positions for
	// quantity answers the draft did not cover.
	CreateMissingPositions bool `json:"createMissingPositions"`
}

type SpecificationResponse struct {
	DocumentId uuid.UUID          `json:"documentId"`
	SessionId  uuid.UUID          `json:"sessionId"`
	Gewerk     string             `json:"gewerk"`
	Document   *lv.PricedDocument `json:"document"`
	Summary    *summary.Summary   `json:"summary"`
	Metadata   *lv.Metadata       `json:"metadata"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  *time.Time         `json:"updatedAt,omitempty"`
}

type SpecificationListItem struct {
	DocumentId uuid.UUID        `json:"documentId"`
	Gewerk     string           `json:"gewerk"`
	Summary    *summary.Summary `json:"summary"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type UpdatePositionRequest struct {
	Nummer   string   `json:"-"`
	Kurztext *string  `json:"kurztext"`
	Langtext *string  `json:"langtext"`
	Menge    *float64 `json:"menge" validate:"omitempty,gte=0"`
	Einheit  *string  `json:"einheit"`
	EP       *float64 `json:"ep" validate:"omitempty,gte=0"`
}
