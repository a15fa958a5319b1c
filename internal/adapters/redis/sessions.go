package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"travel_assistant/internal/adapters/observability"
)

const sessionPrefix = "session:"

// SessionStore keeps widget sessions as JSON under session:<id>. Every save
// refreshes the TTL, so an idle widget's conversation simply expires.
type SessionStore struct{ c *redis.Client }

func NewSessionStore(c *redis.Client) *SessionStore { return &SessionStore{c: c} }

func (s *SessionStore) Load(ctx context.Context, id string, dst any) (bool, error) {
	v, err := s.c.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("sessions", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("sessions", "hit")
	return true, json.Unmarshal(v, dst)
}

func (s *SessionStore) Save(ctx context.Context, id string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("sessions", "set")
	return s.c.Set(ctx, sessionPrefix+id, b, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	observability.ObserveCache("sessions", "del")
	return s.c.Del(ctx, sessionPrefix+id).Err()
}
