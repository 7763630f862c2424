package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "deskbook:session:"

// RedisRegistry stores sessions in Redis so several console processes can
// share logins. Expiry is delegated to the key TTL.
type RedisRegistry struct {
	rdb *redis.Client
}

func NewRedisRegistry(ctx context.Context, url string) (*RedisRegistry, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctxPing).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisRegistry{rdb: rdb}, nil
}

func (r *RedisRegistry) Put(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	return r.rdb.Set(ctx, redisKeyPrefix+sessionID, strconv.FormatInt(userID, 10), ttl).Err()
}

func (r *RedisRegistry) Lookup(ctx context.Context, sessionID string) (int64, error) {
	v, err := r.rdb.Get(ctx, redisKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}
		return 0, err
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, ErrNoSession
	}
	return userID, nil
}

func (r *RedisRegistry) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, redisKeyPrefix+sessionID).Err()
}

func (r *RedisRegistry) Close() error {
	return r.rdb.Close()
}
