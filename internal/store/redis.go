package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each snapshot as a plain string value.
type Redis struct {
	rc redis.UniversalClient
}

func NewRedis(rc redis.UniversalClient) *Redis {
	return &Redis{rc: rc}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.rc.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	return r.rc.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rc.Del(ctx, key).Err()
}

func (r *Redis) Close() error {
	return r.rc.Close()
}
