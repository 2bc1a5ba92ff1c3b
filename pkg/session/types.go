package session

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported answer formats.
type QuestionType string

const (
	QuestionFreeText     QuestionType = "text"
	QuestionNumber       QuestionType = "number"
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
)

type Question struct {
	Id           string       `json:"id"`
	Gewerk       string       `json:"gewerk"`
	Sektion      string       `json:"sektion"`
	Text         string       `json:"text"`
	Erlaeuterung string       `json:"erlaeuterung,omitempty"`
	Typ          QuestionType `json:"typ"`
	Optionen     []string     `json:"optionen,omitempty"`
	Required     bool         `json:"required"`
}

// Answer is immutable once recorded; a later answer for the same question id
// supersedes by key, not by mutation.
type Answer struct {
	QuestionId string    `json:"questionId"`
	Value      string    `json:"value"`
	Annahme    string    `json:"annahme,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// TradeProgress tracks the adaptive question flow for one Gewerk.
// Completed is one-way: once true it is never reset.
type TradeProgress struct {
	Gewerk       string            `json:"gewerk"`
	Questions    []Question        `json:"questions"`
	CurrentIndex int               `json:"currentIndex"`
	Answers      map[string]Answer `json:"answers"`
	Completed    bool              `json:"completed"`
}

// ProjectData is the intake metadata a session is created from.
type ProjectData struct {
	Beschreibung string  `json:"beschreibung"`
	Objekttyp    string  `json:"objekttyp,omitempty"`
	Baujahr      int     `json:"baujahr,omitempty"`
	Flaeche      float64 `json:"flaeche,omitempty"`
	Budget       string  `json:"budget,omitempty"`
}

type Session struct {
	Id           uuid.UUID                 `json:"id"`
	ProjectData  ProjectData               `json:"projectData"`
	Gewerke      []string                  `json:"gewerke"`
	Progress     map[string]*TradeProgress `json:"progress"`
	CreatedAt    time.Time                 `json:"createdAt"`
	LastActivity time.Time                 `json:"lastActivity"`
}

// Touch refreshes the activity timestamp used by the eviction sweep.
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}

// AllCompleted reports whether every detected Gewerk finished its questions.
func (s *Session) AllCompleted() bool {
	for _, g := range s.Gewerke {
		p, ok := s.Progress[g]
		if !ok || !p.Completed {
			return false
		}
	}
	return true
}

// FirstIncomplete returns the first Gewerk in detection order that still has
// open questions, or "" when the session is done.
func (s *Session) FirstIncomplete() string {
	for _, g := range s.Gewerke {
		if p, ok := s.Progress[g]; ok && !p.Completed {
			return g
		}
	}
	return ""
}

// RecordAnswers stores answers on the matching trade progress, advances the
// cursor and recomputes the completion flag.
func (p *TradeProgress) RecordAnswers(answers []Answer) {
	if p.Answers == nil {
		p.Answers = make(map[string]Answer)
	}
	for _, a := range answers {
		p.Answers[a.QuestionId] = a
	}

	// Cursor advances over the answered prefix of the question list.
	answered := 0
	for _, q := range p.Questions {
		if _, ok := p.Answers[q.Id]; ok {
			answered++
		}
	}
	if answered > p.CurrentIndex {
		p.CurrentIndex = answered
	}
	if p.CurrentIndex >= len(p.Questions) {
		p.Completed = true
	}
}

func (p *TradeProgress) ownsQuestion(id string) bool {
	for _, q := range p.Questions {
		if q.Id == id {
			return true
		}
	}
	return false
}

// ProgressFor routes an answer to the trade progress owning its question id.
func (s *Session) ProgressFor(questionId string) *TradeProgress {
	for _, g := range s.Gewerke {
		if p, ok := s.Progress[g]; ok && p.ownsQuestion(questionId) {
			return p
		}
	}
	return nil
}

// AnswersFor returns the recorded answers of one Gewerk keyed by question id.
func (s *Session) AnswersFor(gewerk string) map[string]Answer {
	if p, ok := s.Progress[gewerk]; ok {
		return p.Answers
	}
	return nil
}
