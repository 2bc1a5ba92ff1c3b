package docevents

import (
	"context"
	"time"

	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	pkgEvents "github.com/byndl-mvp/PoC-sub002/pkg/events"
	pkgNats "github.com/byndl-mvp/PoC-sub002/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for the document lifecycle.
type Publisher interface {
	PublishSessionCompleted(ctx context.Context, sessionId uuid.UUID, gewerke []string)
	PublishDocumentGenerated(ctx context.Context, documentId, sessionId uuid.UUID, gewerk string, positions int, netSum float64)
	PublishCatalogRebuilt(ctx context.Context, gewerke []string, positions int)
}

// NatsPublisher implements Publisher using NATS.
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher. A nil publisher
// is valid and turns every emit into a no-op, so the pipeline works without
// a broker.
func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishSessionCompleted emits SESSION_COMPLETED when every trade's
// question batch has been answered.
func (p *NatsPublisher) PublishSessionCompleted(ctx context.Context, sessionId uuid.UUID, gewerke []string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "SESSION_COMPLETED",
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"gewerke":     gewerke,
			"entity_type": "session",
			"entity_id":   sessionId.String(),
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish SESSION_COMPLETED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishDocumentGenerated emits DOCUMENT_GENERATED after a specification
// document has been priced, validated and persisted.
func (p *NatsPublisher) PublishDocumentGenerated(ctx context.Context, documentId, sessionId uuid.UUID, gewerk string, positions int, netSum float64) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: "DOCUMENT_GENERATED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"session_id":  sessionId,
			"gewerk":      gewerk,
			"positions":   positions,
			"net_sum":     netSum,
			"entity_type": "specification",
			"entity_id":   documentId.String(),
			"occurred_at": now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish DOCUMENT_GENERATED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishCatalogRebuilt emits CATALOG_REBUILT after a catalog snapshot swap.
func (p *NatsPublisher) PublishCatalogRebuilt(ctx context.Context, gewerke []string, positions int) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "CATALOG_REBUILT",
		Data: map[string]interface{}{
			"gewerke":     gewerke,
			"positions":   positions,
			"entity_type": "catalog",
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish CATALOG_REBUILT event", map[string]interface{}{"error": err.Error()})
	}
}
