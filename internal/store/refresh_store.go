package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRefreshInvalid = errors.New("refresh invalid")

// RefreshStore registers issued refresh token ids. A token is valid only
// while its id is registered, and Consume removes it, so each refresh token
// works once.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

func (s *RefreshStore) key(userID, jti string) string {
	return "refresh:" + userID + ":" + jti
}

func (s *RefreshStore) setKey(userID string) string {
	return "refresh:user:" + userID
}

func (s *RefreshStore) Put(ctx context.Context, userID, jti string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key(userID, jti), "1", s.ttl)
	pipe.SAdd(ctx, s.setKey(userID), jti)
	pipe.Expire(ctx, s.setKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RefreshStore) Consume(ctx context.Context, userID, jti string) error {
	pipe := s.rdb.TxPipeline()
	del := pipe.Del(ctx, s.key(userID, jti))
	pipe.SRem(ctx, s.setKey(userID), jti)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrRefreshInvalid
	}
	return nil
}

// RevokeAll drops every refresh token registered for the user.
func (s *RefreshStore) RevokeAll(ctx context.Context, userID string) error {
	jtis, err := s.rdb.SMembers(ctx, s.setKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, s.key(userID, jti))
	}
	keys = append(keys, s.setKey(userID))
	return s.rdb.Del(ctx, keys...).Err()
}
