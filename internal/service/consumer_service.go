package service

import (
	"context"
	"encoding/json"
	"log"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains document-ingested events off the in-process bus and
// folds them into the session registry.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	registry   contract.SessionRegistry
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	registry contract.SessionRegistry,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		registry:   registry,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	var payload dto.DocumentIngestedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingested event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.registry.RecordIngestion(ctx, payload.SessionId, payload.Filename, payload.ChunksAdded)
	msg.Ack()
}
