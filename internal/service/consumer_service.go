package service

import (
	"context"
	"encoding/json"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/websocket"
	"notes-repository-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const CatalogUpdatedMessage = "catalog.updated"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type CatalogBroadcaster interface {
	Broadcast(msg websocket.Message)
}

type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	broadcaster    CatalogBroadcaster
	eventPublisher events.Publisher
	logger         logger.ILogger
}

// NewConsumerService fans catalog changes out to live sockets and the
// external event bus. eventPublisher may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	broadcaster CatalogBroadcaster,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		broadcaster:    broadcaster,
		eventPublisher: eventPublisher,
		logger:         log,
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

// processMessage always acks: delivery is best-effort and never retried.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.CatalogEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal catalog message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if cs.broadcaster != nil {
		cs.broadcaster.Broadcast(websocket.Message{Type: CatalogUpdatedMessage, Data: payload})
	}

	if cs.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type:       eventTypeFor(payload.Kind),
		Data:       eventData(payload),
		OccurredAt: payload.OccurredAt,
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("CONSUMER", "Failed to publish event", map[string]interface{}{
			"type":  evt.Type,
			"id":    payload.Id,
			"error": err.Error(),
		})
	}
}

func eventTypeFor(kind string) string {
	if kind == dto.CatalogKindSubject {
		return events.SubjectCreated
	}
	return events.NoteCreated
}

func eventData(p dto.CatalogEventMessage) map[string]interface{} {
	data := map[string]interface{}{
		"title":   p.Title,
		"user_id": p.UserId.String(),
	}
	if p.Kind == dto.CatalogKindSubject {
		data["subject_id"] = p.Id.String()
		return data
	}
	data["note_id"] = p.Id.String()
	if p.SubjectId != nil {
		data["subject_id"] = p.SubjectId.String()
	}
	return data
}
