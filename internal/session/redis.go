package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds connection settings for the Redis-backed store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
}

// NewRedisStore returns a session store backed by Redis, for deployments
// running more than one API instance. A ttl of zero persists sessions
// until explicit logout.
func NewRedisStore(cfg RedisConfig, ttl time.Duration) (Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Create(ctx context.Context, identity Identity) (string, error) {
	identity.CreatedAt = time.Now()
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	token := newToken()
	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *redisStore) Resolve(ctx context.Context, token string) (*Identity, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &identity, nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	// DEL of an absent key is a no-op, which keeps Destroy idempotent.
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
