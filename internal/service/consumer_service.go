package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/byndl-mvp/PoC-sub002/internal/dto"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/scope"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/unitofwork"
	"github.com/byndl-mvp/PoC-sub002/pkg/docevents"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService audits generated documents off the request path: it
// re-reads the persisted document and relays the lifecycle event to the
// external bus.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	publisher  docevents.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	publisher docevents.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DocumentGeneratedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.SpecDocumentRepository().FindOne(ctx, scope.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to load document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[WARN] Document not found: %s", payload.DocumentId)
		msg.Ack() // Deleted meanwhile? Ack.
		return
	}

	positions := 0
	netSum := 0.0
	if doc.Summary != nil {
		positions = doc.Summary.TotalPositions
		netSum = doc.Summary.NetSum
	}
	cs.publisher.PublishDocumentGenerated(ctx, doc.Id, doc.SessionId, doc.Gewerk, positions, netSum)

	log.Printf("[INFO] Document audited: %s (%s, %d positions)", doc.Id, doc.Gewerk, positions)
	msg.Ack()
}
