package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Registry remembers which session ids are still held. A token whose sid is
// no longer held resolves to ErrNoSession even if its signature is valid.
type Registry interface {
	Hold(ctx context.Context, sid string, userID uuid.UUID, ttl time.Duration) error
	Holds(ctx context.Context, sid string) (bool, error)
	Release(ctx context.Context, sid string) error
}
