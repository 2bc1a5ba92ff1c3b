package dto

import (
	"time"

	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Beschreibung string  `json:"beschreibung" validate:"required,min=10"`
	Objekttyp    string  `json:"objekttyp"`
	Baujahr      int     `json:"baujahr" validate:"omitempty,gte=1800,lte=2100"`
	Flaeche      float64 `json:"flaeche" validate:"omitempty,gt=0"`
	Budget       string  `json:"budget"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID          `json:"sessionId"`
	Gewerke   []GewerkInfo       `json:"gewerke"`
	Gewerk    string             `json:"gewerk"`
	Questions []session.Question `json:"questions"`
}

type GewerkInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type NextQuestionsResponse struct {
	Gewerk    string             `json:"gewerk"`
	Questions []session.Question `json:"questions"`
	Completed bool               `json:"completed"`
	// AllCompleted signals that no trade has open questions left.
	AllCompleted bool `json:"allCompleted"`
}

type SaveAnswersRequest struct {
	Gewerk  string      `json:"gewerk" validate:"required"`
	Answers []AnswerDTO `json:"answers" validate:"required,min=1,dive"`
}

type AnswerDTO struct {
	QuestionId string `json:"questionId" validate:"required"`
	Value      string `json:"value" validate:"required"`
	Annahme    bool   `json:"annahme"`
}

type SaveAnswersResponse struct {
	Gewerk       string             `json:"gewerk"`
	Questions    []session.Question `json:"questions"`
	Completed    bool               `json:"completed"`
	AllCompleted bool               `json:"allCompleted"`
}

type SessionInfoResponse struct {
	SessionId    uuid.UUID           `json:"sessionId"`
	ProjectData  session.ProjectData `json:"projectData"`
	Gewerke      []GewerkProgress    `json:"gewerke"`
	AllCompleted bool                `json:"allCompleted"`
	CreatedAt    time.Time           `json:"createdAt"`
	LastActivity time.Time           `json:"lastActivity"`
}

type GewerkProgress struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Answered  int    `json:"answered"`
	Total     int    `json:"total"`
	Completed bool   `json:"completed"`
}
