package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

type memoryStore struct {
	sessions *cache.Cache
}

// NewMemoryStore returns an in-process session store. A ttl of zero means
// sessions never expire, matching the observed behavior of the system this
// replaces; deployments should configure a real TTL.
func NewMemoryStore(ttl time.Duration) Store {
	expiration := cache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	}
	return &memoryStore{
		sessions: cache.New(expiration, cleanupInterval),
	}
}

func (s *memoryStore) Create(_ context.Context, identity Identity) (string, error) {
	identity.CreatedAt = time.Now()
	token := newToken()
	s.sessions.SetDefault(token, identity)
	return token, nil
}

func (s *memoryStore) Resolve(_ context.Context, token string) (*Identity, error) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return nil, ErrNotFound
	}
	identity := v.(Identity)
	return &identity, nil
}

func (s *memoryStore) Destroy(_ context.Context, token string) error {
	s.sessions.Delete(token)
	return nil
}

func (s *memoryStore) Close() error {
	s.sessions.Flush()
	return nil
}
