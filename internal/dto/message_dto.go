package dto

import "github.com/google/uuid"

// DocumentGeneratedMessage travels over the in-process bus from the
// generation path to the audit consumer.
type DocumentGeneratedMessage struct {
	DocumentId uuid.UUID `json:"documentId"`
	SessionId  uuid.UUID `json:"sessionId"`
	Gewerk     string    `json:"gewerk"`
}
