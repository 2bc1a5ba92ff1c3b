package service

import (
	"context"
	"time"

	"github.com/byndl-mvp/PoC-sub002/internal/apperrors"
	"github.com/byndl-mvp/PoC-sub002/internal/dto"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/contract"
	"github.com/byndl-mvp/PoC-sub002/pkg/docevents"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	NextQuestions(ctx context.Context, id uuid.UUID, gewerk string) (*dto.NextQuestionsResponse, error)
	SaveAnswers(ctx context.Context, id uuid.UUID, req *dto.SaveAnswersRequest) (*dto.SaveAnswersResponse, error)
	Info(ctx context.Context, id uuid.UUID) (*dto.SessionInfoResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	sessions  contract.SessionRepository
	detector  *session.Detector
	batchCfg  session.BatchConfig
	publisher docevents.Publisher
	logger    logger.ILogger
}

func NewSessionService(
	sessions contract.SessionRepository,
	detector *session.Detector,
	batchCfg session.BatchConfig,
	publisher docevents.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessions:  sessions,
		detector:  detector,
		batchCfg:  batchCfg,
		publisher: publisher,
		logger:    log,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	data := session.ProjectData{
		Beschreibung: req.Beschreibung,
		Objekttyp:    req.Objekttyp,
		Baujahr:      req.Baujahr,
		Flaeche:      req.Flaeche,
		Budget:       req.Budget,
	}

	gewerke := s.detector.Detect(ctx, data)

	now := time.Now()
	sess := &session.Session{
		Id:           uuid.New(),
		ProjectData:  data,
		Gewerke:      gewerke,
		Progress:     make(map[string]*session.TradeProgress, len(gewerke)),
		CreatedAt:    now,
		LastActivity: now,
	}
	for _, g := range gewerke {
		sess.Progress[g] = &session.TradeProgress{
			Gewerk:    g,
			Questions: session.QuestionsFor(g),
			Answers:   make(map[string]session.Answer),
		}
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("SESSION", "session created", map[string]interface{}{
		"session_id": sess.Id,
		"gewerke":    gewerke,
	})

	first := sess.FirstIncomplete()
	res := &dto.CreateSessionResponse{
		SessionId: sess.Id,
		Gewerk:    first,
		Questions: sess.Progress[first].NextBatch(s.batchCfg),
	}
	for _, g := range gewerke {
		res.Gewerke = append(res.Gewerke, dto.GewerkInfo{Code: g, Name: session.GewerkName(g)})
	}
	return res, nil
}

func (s *sessionService) NextQuestions(ctx context.Context, id uuid.UUID, gewerk string) (*dto.NextQuestionsResponse, error) {
	sess, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Without an explicit trade the first incomplete one is served.
	if gewerk == "" {
		gewerk = sess.FirstIncomplete()
	}

	res := &dto.NextQuestionsResponse{
		Gewerk:       gewerk,
		AllCompleted: sess.AllCompleted(),
	}
	if gewerk == "" {
		res.Completed = true
		return res, nil
	}

	progress, ok := sess.Progress[gewerk]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	res.Questions = progress.NextBatch(s.batchCfg)
	res.Completed = progress.Completed

	sess.Touch()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *sessionService) SaveAnswers(ctx context.Context, id uuid.UUID, req *dto.SaveAnswersRequest) (*dto.SaveAnswersResponse, error) {
	sess, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	progress, ok := sess.Progress[req.Gewerk]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}

	// Answers route to the trade owning the question, not blindly to the
	// requested trade; ids no trade owns are dropped.
	grouped := make(map[*session.TradeProgress][]session.Answer)
	now := time.Now()
	for _, a := range req.Answers {
		owner := sess.ProgressFor(a.QuestionId)
		if owner == nil {
			s.logger.Warn("SESSION", "answer for unknown question dropped", map[string]interface{}{
				"session_id":  sess.Id,
				"question_id": a.QuestionId,
			})
			continue
		}
		answer := session.Answer{
			QuestionId: a.QuestionId,
			Value:      a.Value,
			Timestamp:  now,
		}
		if a.Annahme {
			answer.Annahme = "Vom Nutzer als Annahme markiert"
		}
		grouped[owner] = append(grouped[owner], answer)
	}
	for owner, answers := range grouped {
		owner.RecordAnswers(answers)
	}

	sess.Touch()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	if sess.AllCompleted() {
		s.publisher.PublishSessionCompleted(ctx, sess.Id, sess.Gewerke)
	}

	// The response carries the follow-up batch so clients need no extra
	// round trip. When this trade is done, the next incomplete one is served.
	next := req.Gewerk
	if progress.Completed {
		next = sess.FirstIncomplete()
	}
	res := &dto.SaveAnswersResponse{
		Gewerk:       next,
		Completed:    progress.Completed,
		AllCompleted: sess.AllCompleted(),
	}
	if next != "" {
		res.Questions = sess.Progress[next].NextBatch(s.batchCfg)
	}
	return res, nil
}

func (s *sessionService) Info(ctx context.Context, id uuid.UUID) (*dto.SessionInfoResponse, error) {
	sess, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &dto.SessionInfoResponse{
		SessionId:    sess.Id,
		ProjectData:  sess.ProjectData,
		AllCompleted: sess.AllCompleted(),
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
	}
	for _, g := range sess.Gewerke {
		p := sess.Progress[g]
		res.Gewerke = append(res.Gewerke, dto.GewerkProgress{
			Code:      g,
			Name:      session.GewerkName(g),
			Answered:  len(p.Answers),
			Total:     len(p.Questions),
			Completed: p.Completed,
		})
	}
	return res, nil
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

func (s *sessionService) find(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	sess, err := s.sessions.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}
