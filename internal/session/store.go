package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store tracks which session ids are still live, so logout can end a
// session before its token expires.
type Store interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error
	Active(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

const keyPrefix = "session:"

type RedisStore struct {
	rdb redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, userID uuid.UUID, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+sessionID, userID.String(), ttl).Err()
}

func (s *RedisStore) Active(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisStore) Revoke(ctx context.Context, sessionID string) error {
	err := s.rdb.Del(ctx, keyPrefix+sessionID).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// NoopStore treats every signed, unexpired token as live. Logout then only
// drops the cookie on the client.
type NoopStore struct{}

var _ Store = NoopStore{}

func (NoopStore) Save(context.Context, string, uuid.UUID, time.Duration) error { return nil }
func (NoopStore) Active(context.Context, string) (bool, error)                 { return true, nil }
func (NoopStore) Revoke(context.Context, string) error                         { return nil }
