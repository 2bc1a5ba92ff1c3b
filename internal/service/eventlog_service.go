package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/pkg/events"
	pkgNats "github.com/byndl-mvp/PoC-sub002/pkg/nats"
)

type IEventLogService interface {
	Start()
}

// eventLogService keeps a durable audit trail of lifecycle events
// (session completions, document generations, catalog rebuilds) by
// consuming the external bus and writing structured log entries.
type eventLogService struct {
	subscriber *pkgNats.Subscriber
	logger     logger.ILogger
}

func NewEventLogService(sub *pkgNats.Subscriber, log logger.ILogger) IEventLogService {
	return &eventLogService{
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus. A nil subscriber (broker
// unreachable at bootstrap) leaves the audit trail off.
func (s *eventLogService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("EventLogService", "No event bus connection, audit trail disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("events.>", "eventlog-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("EventLogService", "Failed to start event log subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("EventLogService", "Event log started, listening to events.>", nil)
}

func (s *eventLogService) handleEvent(_ context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	s.logger.Info("EventLogService", fmt.Sprintf("Event: %s", typeCode), event.Payload())
	return nil
}
