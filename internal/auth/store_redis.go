package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore shares sessions between instances through Redis. Entries
// expire with their session.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

type sessionRecord struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewRedisSessionStore stores sessions under prefix + "session:".
func NewRedisSessionStore(client *redis.Client, prefix string) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: prefix + "session:"}
}

// Save implements SessionStore.
func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}
	raw, err := json.Marshal(sessionRecord{Subject: session.Subject, ExpiresAt: session.ExpiresAt.UTC()})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+session.Token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find implements SessionStore.
func (s *RedisSessionStore) Find(ctx context.Context, token string) (Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("find session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return Session{Token: token, Subject: record.Subject, ExpiresAt: record.ExpiresAt}, nil
}

// Delete implements SessionStore.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
