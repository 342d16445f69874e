// Package session provides a Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mealscan_backend/internal/feature/auth/domain/entity"
	"mealscan_backend/internal/feature/auth/usecase"
)

// ErrAlreadyExpired is returned when a session is written with a deadline in the past.
var ErrAlreadyExpired = errors.New("session already expired")

// SessionRedis implements usecase.SessionRepository using Redis.
// Each session is a JSON value whose TTL is its idle deadline, so Redis expires it on its own.
// A per-user set indexes the tokens of each user for bulk revocation.
type SessionRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// Compile-time check to ensure SessionRedis implements SessionRepository.
var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userSessionsKey returns the Redis key for a user's session set.
func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

func (r *SessionRedis) ttl(expiresAt time.Time) (time.Duration, error) {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return 0, ErrAlreadyExpired
	}
	return ttl, nil
}

// Create persists a new session and indexes it under its user.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	ttl, err := r.ttl(session.ExpiresAt)
	if err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.pruneUserSet(ctx, session.UserID); err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(session.ID), data, ttl)
		pipe.SAdd(ctx, r.userSessionsKey(session.UserID), session.ID)
		return nil
	})
	return err
}

// pruneUserSet drops tokens whose session already expired from the user's set.
func (r *SessionRedis) pruneUserSet(ctx context.Context, userID uint) error {
	setKey := r.userSessionsKey(userID)
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	for _, id := range ids {
		n, err := r.client.Exists(ctx, r.sessionKey(id)).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			if err := r.client.SRem(ctx, setKey, id).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindByID retrieves a session by its token.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Touch rewrites the session with the new deadline and TTL. It never recreates
// a session that expired in the meantime.
func (r *SessionRedis) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	ttl, err := r.ttl(expiresAt)
	if err != nil {
		return err
	}
	session.ExpiresAt = expiresAt
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = r.client.SetArgs(ctx, r.sessionKey(id), data, redis.SetArgs{Mode: "XX", TTL: ttl}).Err()
	if errors.Is(err, redis.Nil) {
		return usecase.ErrSessionNotFound
	}
	return err
}

// Delete removes a session. Unknown tokens are ignored.
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(id))
		pipe.SRem(ctx, r.userSessionsKey(session.UserID), id)
		return nil
	})
	return err
}

// DeleteByUserID removes all sessions of a user except keep.
func (r *SessionRedis) DeleteByUserID(ctx context.Context, userID uint, keep string) error {
	setKey := r.userSessionsKey(userID)
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			if id == keep {
				continue
			}
			pipe.Del(ctx, r.sessionKey(id))
			pipe.SRem(ctx, setKey, id)
		}
		return nil
	})
	return err
}

// DeleteExpired is a no-op: Redis expires sessions through their TTL.
func (r *SessionRedis) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
