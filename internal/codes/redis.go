package codes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// Redis is a Store backed by a redis instance, for multi-node deployments.
// Expiry is delegated to redis key TTLs.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing redis client as a code Store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Put(ctx context.Context, subject, code string, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+subject, code, ttl).Err(); err != nil {
		return fmt.Errorf("store code for %s: %w", subject, err)
	}
	return nil
}

func (r *Redis) Consume(ctx context.Context, subject, code string) error {
	stored, err := r.client.GetDel(ctx, keyPrefix+subject).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeInvalid
	}
	if err != nil {
		return fmt.Errorf("read code for %s: %w", subject, err)
	}
	if stored != code {
		return ErrCodeInvalid
	}
	return nil
}
