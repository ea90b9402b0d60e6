package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/go-redis/redis/v8"
)

const DefaultKeyPrefix = "ers:session:"

// RedisStore is an auth.SessionStore backed by Redis. Each session is a JSON
// value whose TTL matches the session expiry, so Redis drops expired sessions
// on its own. A set per user indexes the user's session ids.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) userKey(userID int64) string {
	return fmt.Sprintf("%suser:%d", s.prefix, userID)
}

// Create implements auth.SessionStore.
func (s *RedisStore) Create(ctx context.Context, session auth.Session) error {
	ttl := time.Unix(session.ExpiresAt, 0).Sub(s.now())
	if ttl <= 0 {
		return apperror.Internal("Unable to create session", errors.New("session already expired"))
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return apperror.Internal("Unable to create session", err)
	}

	// Sessions share one lifetime, so the newest session outlives the index's
	// previous members.
	index := s.userKey(session.Principal.UserID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(session.ID), payload, ttl)
		pipe.SAdd(ctx, index, session.ID)
		pipe.Expire(ctx, index, ttl)
		return nil
	})
	if err != nil {
		return apperror.Internal("Unable to create session", err)
	}
	return nil
}

// Get implements auth.SessionStore.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (auth.Session, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err == redis.Nil {
		return auth.Session{}, auth.ErrSessionNotFound
	} else if err != nil {
		return auth.Session{}, apperror.Internal("Unable to get session", err)
	}

	var session auth.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return auth.Session{}, apperror.Internal("Unable to get session", err)
	}
	return session, nil
}

// Delete implements auth.SessionStore.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if errors.Is(err, auth.ErrSessionNotFound) {
		return nil
	} else if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(sessionID))
		pipe.SRem(ctx, s.userKey(session.Principal.UserID), sessionID)
		return nil
	})
	if err != nil {
		return apperror.Internal("Unable to delete session", err)
	}
	return nil
}

// DeleteByUser implements auth.SessionStore.
func (s *RedisStore) DeleteByUser(ctx context.Context, userID int64) error {
	index := s.userKey(userID)
	ids, err := s.client.SMembers(ctx, index).Result()
	if err != nil {
		return apperror.Internal("Unable to revoke sessions", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, index)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return apperror.Internal("Unable to revoke sessions", err)
	}
	return nil
}
