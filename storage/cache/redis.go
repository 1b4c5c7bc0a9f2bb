// Package cache keeps the revoked sessions until their token would have expired anyway.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

const revokedPrefix = "session:revoked:"

type redisStore struct {
	client *redis.Client
}

var _ core.SessionStore = (*redisStore)(nil)

// OpenRedis connects to the server named by conf.RedisURL, e.g. redis://localhost:6379/0.
func OpenRedis(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis URL")
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

func NewRedisStore(client *redis.Client) *redisStore {
	return &redisStore{client: client}
}

func (s *redisStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := s.client.Set(ctx, revokedPrefix+sessionID, 1, ttl).Err()
	return errors.Wrap(err, "revoking session")
}

func (s *redisStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+sessionID).Result()
	if err != nil {
		return false, errors.Wrap(err, "checking session")
	}
	return n > 0, nil
}
