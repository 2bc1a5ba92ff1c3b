package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/byndl-mvp/PoC-sub002/internal/apperrors"
	"github.com/byndl-mvp/PoC-sub002/internal/dto"
	"github.com/byndl-mvp/PoC-sub002/internal/entity"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/contract"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/memory"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/scope"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/unitofwork"
	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/llm"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/pricing"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/summary"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/validate"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// memoryDocRepository backs the unit-of-work contract with a map so the
// service can be exercised without a database. Only the scopes the service
// actually uses are interpreted.
type memoryDocRepository struct {
	docs map[uuid.UUID]*entity.SpecDocument
}

func (r *memoryDocRepository) Create(_ context.Context, doc *entity.SpecDocument) error {
	r.docs[doc.Id] = doc
	return nil
}

func (r *memoryDocRepository) Update(_ context.Context, doc *entity.SpecDocument) error {
	if _, ok := r.docs[doc.Id]; !ok {
		return errors.New("not found")
	}
	r.docs[doc.Id] = doc
	return nil
}

func (r *memoryDocRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func (r *memoryDocRepository) FindOne(_ context.Context, scopes ...scope.Scope) (*entity.SpecDocument, error) {
	for _, sc := range scopes {
		if byId, ok := sc.(scope.ByID); ok {
			if doc, found := r.docs[byId.ID]; found {
				return doc, nil
			}
		}
	}
	return nil, nil
}

func (r *memoryDocRepository) FindAll(_ context.Context, scopes ...scope.Scope) ([]*entity.SpecDocument, error) {
	var sessionId uuid.UUID
	for _, sc := range scopes {
		if bySession, ok := sc.(scope.BySessionID); ok {
			sessionId = bySession.SessionID
		}
	}
	var out []*entity.SpecDocument
	for _, doc := range r.docs {
		if sessionId == uuid.Nil || doc.SessionId == sessionId {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *memoryDocRepository) Count(_ context.Context, _ ...scope.Scope) (int64, error) {
	return int64(len(r.docs)), nil
}

type memoryUnitOfWork struct {
	repo *memoryDocRepository
}

func (u *memoryUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                 { return nil }
func (u *memoryUnitOfWork) Rollback() error               { return nil }
func (u *memoryUnitOfWork) SpecDocumentRepository() contract.SpecDocumentRepository {
	return u.repo
}

type memoryFactory struct {
	repo *memoryDocRepository
}

func (f *memoryFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{repo: f.repo}
}

// unavailableProvider forces the deterministic draft path.
type unavailableProvider struct{}

func (p *unavailableProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return "", llm.ErrProviderUnavailable
}

func (p *unavailableProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return "", llm.ErrProviderUnavailable
}

type capturingPublisher struct {
	messages [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.messages = append(p.messages, payload)
	return nil
}

type specFixture struct {
	svc       ISpecificationService
	sessions  *memory.SessionRepository
	repo      *memoryDocRepository
	publisher *capturingPublisher
}

func newSpecFixture() *specFixture {
	repo := &memoryDocRepository{docs: make(map[uuid.UUID]*entity.SpecDocument)}
	sessions := memory.NewSessionRepository(time.Hour, time.Hour)
	publisher := &capturingPublisher{}
	log := logger.NewNopLogger()

	holder := catalog.NewHolder(catalog.Catalog{
		"elektro": {
			{PositionCode: "1_1", Kurztext: "Steckdose setzen Unterputz", Einheit: "Stk", DefaultEP: 75, MinEP: 60, MaxEP: 90, Gewerk: "elektro"},
		},
	})

	svc := NewSpecificationService(
		&memoryFactory{repo: repo},
		sessions,
		holder,
		&unavailableProvider{},
		pricing.NewResolver(pricing.NewWordOverlapScorer(), 0.6, pricing.DefaultFallbackPrice()),
		validate.NewPipeline(validate.DefaultConfig(), log),
		validate.DefaultConfig(),
		summary.NewCalculator(0.05, 0.10),
		pricing.DefaultFallbackPrice(),
		time.Second,
		publisher,
		log,
	)
	return &specFixture{svc: svc, sessions: sessions, repo: repo, publisher: publisher}
}

func (f *specFixture) seedSession(t *testing.T, completed bool) *session.Session {
	t.Helper()
	sess := &session.Session{
		Id:      uuid.New(),
		Gewerke: []string{"elektro"},
		Progress: map[string]*session.TradeProgress{
			"elektro": {
				Gewerk:    "elektro",
				Questions: session.QuestionsFor("elektro"),
				Answers: map[string]session.Answer{
					"elektro_zusaetzliche_steckdosen": {QuestionId: "elektro_zusaetzliche_steckdosen", Value: "8 Stück"},
				},
				Completed: completed,
			},
		},
		ProjectData: session.ProjectData{Beschreibung: "Elektrik erneuern", Baujahr: 1970},
	}
	if err := f.sessions.Save(context.Background(), sess); err != nil {
		t.Fatal(err)
	}
	return sess
}

func TestGenerateRequiresCompletedTrade(t *testing.T) {
	f := newSpecFixture()
	sess := f.seedSession(t, false)

	_, err := f.svc.Generate(context.Background(), &dto.GenerateSpecificationRequest{
		SessionId: sess.Id,
		Gewerk:    "elektro",
	})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotReady)
}

func TestGenerateUnknownSession(t *testing.T) {
	f := newSpecFixture()

	_, err := f.svc.Generate(context.Background(), &dto.GenerateSpecificationRequest{
		SessionId: uuid.New(),
		Gewerk:    "elektro",
	})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestGenerateFallbackPipeline(t *testing.T) {
	f := newSpecFixture()
	sess := f.seedSession(t, true)

	res, err := f.svc.Generate(context.Background(), &dto.GenerateSpecificationRequest{
		SessionId: sess.Id,
		Gewerk:    "elektro",
	})
	assert.NoError(t, err)
	assert.Equal(t, sess.Id, res.SessionId)
	assert.Equal(t, "elektro", res.Gewerk)

	// The deterministic draft covered the catalog entry; the resolver priced
	// it from the catalog with the answered quantity.
	positions := res.Document.FlattenPositions()
	assert.NotEmpty(t, positions)
	assert.True(t, positions[0].CatalogMatch)
	assert.Equal(t, 8.0, positions[0].Menge)
	assert.Equal(t, 75.0, positions[0].EP)

	assert.NotNil(t, res.Summary)
	assert.Equal(t, res.Summary.TotalPositions, len(positions))
	assert.InDelta(t, res.Summary.NetSum*(1+res.Summary.RiskBuffer), res.Summary.GrossSum, 1e-9)

	assert.NotNil(t, res.Metadata)
	assert.Equal(t, 1, res.Metadata.AnsweredQuestions)

	// Persisted and announced.
	assert.Len(t, f.repo.docs, 1)
	assert.Len(t, f.publisher.messages, 1)
}

func TestGetUnknownDocument(t *testing.T) {
	f := newSpecFixture()

	_, err := f.svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestListBySession(t *testing.T) {
	f := newSpecFixture()
	sess := f.seedSession(t, true)

	_, err := f.svc.Generate(context.Background(), &dto.GenerateSpecificationRequest{
		SessionId: sess.Id,
		Gewerk:    "elektro",
	})
	assert.NoError(t, err)

	list, err := f.svc.ListBySession(context.Background(), sess.Id)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "elektro", list[0].Gewerk)

	other, err := f.svc.ListBySession(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdatePosition(t *testing.T) {
	f := newSpecFixture()
	sess := f.seedSession(t, true)

	created, err := f.svc.Generate(context.Background(), &dto.GenerateSpecificationRequest{
		SessionId: sess.Id,
		Gewerk:    "elektro",
	})
	assert.NoError(t, err)

	target := created.Document.FlattenPositions()[0]
	menge := 12.0
	ep := 80.0
	res, err := f.svc.UpdatePosition(context.Background(), created.DocumentId, &dto.UpdatePositionRequest{
		Nummer: target.Nummer,
		Menge:  &menge,
		EP:     &ep,
	})
	assert.NoError(t, err)

	updated := res.Document.FlattenPositions()[0]
	assert.Equal(t, 12.0, updated.Menge)
	assert.Equal(t, 80.0, updated.EP)
	assert.Equal(t, 960.0, updated.GP)
	assert.False(t, updated.ManualPricingRequired)
	assert.NotNil(t, res.UpdatedAt)

	// The summary is recomputed against the edited positions.
	assert.InDelta(t, res.Summary.NetSum*(1+res.Summary.RiskBuffer), res.Summary.GrossSum, 1e-9)
}

func TestUpdatePositionUnknownNummer(t *testing.T) {
	f := newSpecFixture()
	sess := f.seedSession(t, true)

	created, err := f.svc.Generate(context.Background(), &dto.GenerateSpecificationRequest{
		SessionId: sess.Id,
		Gewerk:    "elektro",
	})
	assert.NoError(t, err)

	_, err = f.svc.UpdatePosition(context.Background(), created.DocumentId, &dto.UpdatePositionRequest{
		Nummer: "99.99",
	})
	assert.ErrorIs(t, err, apperrors.ErrPositionNotFound)
}
