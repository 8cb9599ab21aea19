package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "CATALOG_TEST"

func startConsumer(t *testing.T, sink *captureEvents) (IPublisherService, *captureBroadcaster) {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := &captureBroadcaster{}
	var publisher events.Publisher
	if sink != nil {
		publisher = sink
	}
	consumer := NewConsumerService(pubSub, testTopic, hub, publisher, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	return NewPublisherService(testTopic, pubSub), hub
}

func TestConsumerBroadcastsAndForwardsNoteCreated(t *testing.T) {
	sink := &captureEvents{}
	pub, hub := startConsumer(t, sink)

	subjectId := uuid.New()
	msg := dto.CatalogEventMessage{
		Kind:       dto.CatalogKindNote,
		Id:         uuid.New(),
		SubjectId:  &subjectId,
		Title:      "Derivadas",
		UserId:     uuid.New(),
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), payload))

	require.Eventually(t, func() bool { return len(sink.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.count())

	evt := sink.all()[0]
	assert.Equal(t, events.NoteCreated, evt.EventType())
	assert.Equal(t, msg.Id.String(), evt.Payload()["note_id"])
	assert.Equal(t, subjectId.String(), evt.Payload()["subject_id"])

	hub.mu.Lock()
	assert.Equal(t, CatalogUpdatedMessage, hub.sent[0].Type)
	hub.mu.Unlock()
}

func TestConsumerMapsSubjectEvents(t *testing.T) {
	sink := &captureEvents{}
	pub, _ := startConsumer(t, sink)

	payload, _ := json.Marshal(dto.CatalogEventMessage{Kind: dto.CatalogKindSubject, Id: uuid.New(), Title: "Fisica"})
	require.NoError(t, pub.Publish(context.Background(), payload))

	require.Eventually(t, func() bool { return len(sink.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, events.SubjectCreated, sink.all()[0].EventType())
}

func TestConsumerSurvivesBadPayloadAndBusErrors(t *testing.T) {
	sink := &captureEvents{err: errBoom}
	pub, hub := startConsumer(t, sink)

	require.NoError(t, pub.Publish(context.Background(), []byte("{not json")))

	payload, _ := json.Marshal(dto.CatalogEventMessage{Kind: dto.CatalogKindNote, Id: uuid.New()})
	require.NoError(t, pub.Publish(context.Background(), payload))
	require.NoError(t, pub.Publish(context.Background(), payload))

	// the malformed message is skipped; bus failures do not stop delivery
	require.Eventually(t, func() bool { return hub.count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Len(t, sink.all(), 2)
}

func TestConsumerWithoutEventBus(t *testing.T) {
	pub, hub := startConsumer(t, nil)

	payload, _ := json.Marshal(dto.CatalogEventMessage{Kind: dto.CatalogKindNote, Id: uuid.New()})
	require.NoError(t, pub.Publish(context.Background(), payload))

	require.Eventually(t, func() bool { return hub.count() == 1 }, time.Second, 5*time.Millisecond)
}
