package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"saassyadmin/internal/util"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps browser sessions: an opaque id mapped to an account id.
// Reading a session extends it by ttl.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func (s *SessionStore) TTL() time.Duration { return s.ttl }

func (s *SessionStore) key(sessionID string) string { return "websession:" + sessionID }

func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	id, err := util.RandomToken(32)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.key(id), userID.String(), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	if sessionID == "" {
		return uuid.Nil, ErrSessionNotFound
	}
	raw, err := s.rdb.GetEx(ctx, s.key(sessionID), s.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}
	return id, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.rdb.Del(ctx, s.key(sessionID)).Err()
}
