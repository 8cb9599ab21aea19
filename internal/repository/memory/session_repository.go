package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps held session ids in process memory. Entries expire
// with the token they belong to.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Purge expired entries every 10 minutes
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Hold(_ context.Context, sid string, userID uuid.UUID, ttl time.Duration) error {
	r.cache.Set(sid, userID, ttl)
	return nil
}

func (r *SessionRepository) Holds(_ context.Context, sid string) (bool, error) {
	_, found := r.cache.Get(sid)
	return found, nil
}

func (r *SessionRepository) Release(_ context.Context, sid string) error {
	r.cache.Delete(sid)
	return nil
}
