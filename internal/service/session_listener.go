package service

import (
	"context"
	"time"

	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/session"
	"notes-repository-be/pkg/events"

	"github.com/google/uuid"
)

type SocketDisconnecter interface {
	DisconnectUser(userID uuid.UUID)
}

// NewSessionEventListener forwards sign-in/sign-out to the event bus and
// closes a user's live sockets when they sign out. Either sink may be nil.
func NewSessionEventListener(publisher events.Publisher, sockets SocketDisconnecter, log logger.ILogger) session.Listener {
	return func(evt session.Event) {
		if evt.Kind == session.EventSignedOut && sockets != nil {
			sockets.DisconnectUser(evt.Identity.UserID)
		}

		if publisher == nil {
			return
		}

		eventType := events.UserSignedIn
		if evt.Kind == session.EventSignedOut {
			eventType = events.UserSignedOut
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := publisher.Publish(ctx, events.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"user_id":    evt.Identity.UserID.String(),
				"email":      evt.Identity.Email,
				"session_id": evt.SessionID,
			},
			OccurredAt: evt.OccurredAt,
		})
		if err != nil {
			log.Warn("SESSION", "Failed to publish session event", map[string]interface{}{
				"type":  eventType,
				"error": err.Error(),
			})
		}
	}
}
