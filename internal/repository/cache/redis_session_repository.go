package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository shares held session ids across instances.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionRepository(client *redis.Client, prefix string) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, prefix: prefix}
}

func (r *RedisSessionRepository) key(sid string) string {
	return r.prefix + sid
}

func (r *RedisSessionRepository) Hold(ctx context.Context, sid string, userID uuid.UUID, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(sid), userID.String(), ttl).Err()
}

func (r *RedisSessionRepository) Holds(ctx context.Context, sid string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(sid)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisSessionRepository) Release(ctx context.Context, sid string) error {
	return r.client.Del(ctx, r.key(sid)).Err()
}
