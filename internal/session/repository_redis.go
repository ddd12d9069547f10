package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hu:session:"

// RedisRepo keeps bindings in redis so several server processes can share
// them. Expiry is delegated to the key TTL.
type RedisRepo struct {
	client *redis.Client
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

func (r *RedisRepo) Save(ctx context.Context, b Binding, ttl time.Duration) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+b.ID, payload, ttl).Err()
}

func (r *RedisRepo) Get(ctx context.Context, id string) (Binding, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Binding{}, ErrSessionNotFound
	}
	if err != nil {
		return Binding{}, err
	}
	var b Binding
	if err := json.Unmarshal(payload, &b); err != nil {
		return Binding{}, err
	}
	return b, nil
}

func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}
