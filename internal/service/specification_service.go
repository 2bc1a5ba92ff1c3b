package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/byndl-mvp/PoC-sub002/internal/apperrors"
	"github.com/byndl-mvp/PoC-sub002/internal/dto"
	"github.com/byndl-mvp/PoC-sub002/internal/entity"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/contract"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/scope"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/unitofwork"
	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/generator"
	"github.com/byndl-mvp/PoC-sub002/pkg/llm"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/pricing"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/structurer"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/summary"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/validate"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
)

type ISpecificationService interface {
	Generate(ctx context.Context, req *dto.GenerateSpecificationRequest) (*dto.SpecificationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SpecificationResponse, error)
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.SpecificationListItem, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, req *dto.UpdatePositionRequest) (*dto.SpecificationResponse, error)
	CreateMissingPositions(ctx context.Context, id uuid.UUID) (*dto.SpecificationResponse, error)
}

type specificationService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessions    contract.SessionRepository
	holder      *catalog.Holder
	provider    llm.LLMProvider
	fallbackGen *generator.Fallback
	parser      *structurer.Parser
	resolver    *pricing.Resolver
	pipeline    *validate.Pipeline
	validateCfg validate.Config
	calculator  *summary.Calculator
	fallback    pricing.FallbackPrice
	genTimeout  time.Duration
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewSpecificationService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.SessionRepository,
	holder *catalog.Holder,
	provider llm.LLMProvider,
	resolver *pricing.Resolver,
	pipeline *validate.Pipeline,
	validateCfg validate.Config,
	calculator *summary.Calculator,
	fallback pricing.FallbackPrice,
	genTimeout time.Duration,
	publisher IPublisherService,
	log logger.ILogger,
) ISpecificationService {
	return &specificationService{
		uowFactory:  uowFactory,
		sessions:    sessions,
		holder:      holder,
		provider:    provider,
		fallbackGen: generator.NewFallback(),
		parser:      structurer.NewParser(),
		resolver:    resolver,
		pipeline:    pipeline,
		validateCfg: validateCfg,
		calculator:  calculator,
		fallback:    fallback,
		genTimeout:  genTimeout,
		publisher:   publisher,
		logger:      log,
	}
}

func (s *specificationService) Generate(ctx context.Context, req *dto.GenerateSpecificationRequest) (*dto.SpecificationResponse, error) {
	sess, err := s.sessions.Find(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	progress, ok := sess.Progress[req.Gewerk]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if !progress.Completed {
		return nil, apperrors.ErrSessionNotReady
	}

	answers := sess.AnswersFor(req.Gewerk)
	entries := s.holder.Get(req.Gewerk)

	draft := s.draft(ctx, sess, req.Gewerk, answers, entries)
	structured := s.parser.Parse(draft, req.Gewerk)
	priced := s.resolver.Resolve(structured, entries)

	vctx := &validate.Context{
		Gewerk:  req.Gewerk,
		Answers: answers,
		Upload:  req.Upload,
		Logger:  s.logger,
	}
	priced = s.pipeline.Enforce(priced, vctx)
	if req.CreateMissingPositions {
		priced = validate.CreateMissingPositions(priced, vctx, s.validateCfg, s.fallback)
	}

	sum := s.calculator.Calculate(priced)
	doc := &entity.SpecDocument{
		Id:        uuid.New(),
		SessionId: sess.Id,
		Gewerk:    req.Gewerk,
		Document:  priced,
		Summary:   &sum,
		Metadata:  buildMetadata(priced, len(answers)),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SpecDocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("SPECIFICATION", "document generated", map[string]interface{}{
		"document_id": doc.Id,
		"session_id":  sess.Id,
		"gewerk":      req.Gewerk,
		"positions":   sum.TotalPositions,
	})

	msg := dto.DocumentGeneratedMessage{
		DocumentId: doc.Id,
		SessionId:  sess.Id,
		Gewerk:     req.Gewerk,
	}
	msgJson, _ := json.Marshal(msg)
	if err := s.publisher.Publish(ctx, msgJson); err != nil {
		s.logger.Warn("SPECIFICATION", "failed to publish generation message", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return toSpecificationResponse(doc), nil
}

// draft produces the narrative text, preferring the configured generator and
// degrading to the deterministic draft on any failure.
func (s *specificationService) draft(ctx context.Context, sess *session.Session, gewerk string, answers map[string]session.Answer, entries []catalog.Position) string {
	callCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	text, err := s.provider.Generate(callCtx, buildDraftPrompt(sess, gewerk, answers), llm.WithTemperature(0.3))
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if err != nil {
		s.logger.Warn("SPECIFICATION", "generator unavailable, using deterministic draft", map[string]interface{}{
			"gewerk": gewerk,
			"error":  err.Error(),
		})
	}
	return s.fallbackGen.Draft(gewerk, answers, entries)
}

func buildDraftPrompt(sess *session.Session, gewerk string, answers map[string]session.Answer) string {
	var sb strings.Builder
	sb.WriteString("Erstelle ein Leistungsverzeichnis für das Gewerk ")
	sb.WriteString(session.GewerkName(gewerk))
	sb.WriteString(".\n\nFormat:\n")
	sb.WriteString("## <Kapitel>\n### Position <N.N>: <Kurztext>\n")
	sb.WriteString("- Beschreibung: <Langtext>\n- Einheit: <Einheit>\n- Menge: <Zahl>\n\n")
	sb.WriteString(fmt.Sprintf("Projekt: %s (Objekttyp: %s, Baujahr: %d)\n\nAntworten des Bauherrn:\n",
		sess.ProjectData.Beschreibung, sess.ProjectData.Objekttyp, sess.ProjectData.Baujahr))

	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", k, answers[k].Value))
	}
	return sb.String()
}

func (s *specificationService) Get(ctx context.Context, id uuid.UUID) (*dto.SpecificationResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSpecificationResponse(doc), nil
}

func (s *specificationService) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*dto.SpecificationListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.SpecDocumentRepository().FindAll(ctx,
		scope.BySessionID{SessionID: sessionId},
		scope.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SpecificationListItem, 0, len(docs))
	for _, doc := range docs {
		result = append(result, &dto.SpecificationListItem{
			DocumentId: doc.Id,
			Gewerk:     doc.Gewerk,
			Summary:    doc.Summary,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return result, nil
}

func (s *specificationService) UpdatePosition(ctx context.Context, id uuid.UUID, req *dto.UpdatePositionRequest) (*dto.SpecificationResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	var target *lv.PricedPosition
	for _, pos := range doc.Document.FlattenPositions() {
		if pos.Nummer == req.Nummer {
			target = pos
			break
		}
	}
	if target == nil {
		return nil, apperrors.ErrPositionNotFound
	}

	if req.Kurztext != nil {
		target.Kurztext = *req.Kurztext
	}
	if req.Langtext != nil {
		target.Langtext = *req.Langtext
	}
	if req.Einheit != nil {
		target.Einheit = *req.Einheit
	}
	if req.Menge != nil {
		target.Menge = *req.Menge
	}
	if req.EP != nil {
		target.EP = *req.EP
		// A manually priced position no longer needs pricing attention.
		target.ManualPricingRequired = false
	}
	target.Recalculate()

	return s.persistRecalculated(ctx, doc)
}

func (s *specificationService) CreateMissingPositions(ctx context.Context, id uuid.UUID) (*dto.SpecificationResponse, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Find(ctx, doc.SessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.ErrSessionNotFound
	}

	vctx := &validate.Context{
		Gewerk:  doc.Gewerk,
		Answers: sess.AnswersFor(doc.Gewerk),
		Logger:  s.logger,
	}
	doc.Document = validate.CreateMissingPositions(doc.Document, vctx, s.validateCfg, s.fallback)

	return s.persistRecalculated(ctx, doc)
}

func (s *specificationService) persistRecalculated(ctx context.Context, doc *entity.SpecDocument) (*dto.SpecificationResponse, error) {
	sum := s.calculator.Calculate(doc.Document)
	doc.Summary = &sum
	answered := 0
	if doc.Metadata != nil {
		answered = doc.Metadata.AnsweredQuestions
	}
	doc.Metadata = buildMetadata(doc.Document, answered)
	now := time.Now()
	doc.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SpecDocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}
	return toSpecificationResponse(doc), nil
}

func (s *specificationService) findDocument(ctx context.Context, id uuid.UUID) (*entity.SpecDocument, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.SpecDocumentRepository().FindOne(ctx, scope.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Document == nil {
		return nil, apperrors.ErrDocumentNotFound
	}
	return doc, nil
}

func buildMetadata(doc *lv.PricedDocument, answered int) *lv.Metadata {
	return &lv.Metadata{
		PositionCount:     len(doc.FlattenPositions()),
		AnsweredQuestions: answered,
		Annahmen:          doc.Annahmen(),
		Warnings:          doc.Warnings,
	}
}

func toSpecificationResponse(doc *entity.SpecDocument) *dto.SpecificationResponse {
	return &dto.SpecificationResponse{
		DocumentId: doc.Id,
		SessionId:  doc.SessionId,
		Gewerk:     doc.Gewerk,
		Document:   doc.Document,
		Summary:    doc.Summary,
		Metadata:   doc.Metadata,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
