package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session record exists for a lookup.
var ErrSessionNotFound = errors.New("session not found")

const (
	sessionKeyPrefix         = "session:"
	sessionAccessIndexPrefix = "session:access:"
)

// Session holds the single currently valid token pair for one subject.
type Session struct {
	Subject      string    `json:"subject"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionRepository persists sessions in an expiring key-value store. At most
// one live session exists per subject.
type SessionRepository interface {
	// Save upserts the record for session.Subject, unconditionally overwriting
	// any previous record and resetting the TTL. Concurrent writers race
	// last-writer-wins; the loser's access token is orphaned, never leaked.
	Save(ctx context.Context, session *Session) error
	FindBySubject(ctx context.Context, subject string) (*Session, error)
	FindByAccessToken(ctx context.Context, accessToken string) (*Session, error)
	DeleteBySubject(ctx context.Context, subject string) error
}

type sessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository returns a Redis-backed store. The TTL is fixed to the
// refresh-token lifetime and applies to every record written.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &sessionRepository{client: client, ttl: ttl}
}

func (r *sessionRepository) Save(ctx context.Context, session *Session) error {
	if session == nil || session.Subject == "" {
		return errors.New("session subject required")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// Drop the stale access-token index entry before writing the new one.
	prev, err := r.FindBySubject(ctx, session.Subject)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.Subject, data, r.ttl)
	if prev != nil && prev.AccessToken != session.AccessToken {
		pipe.Del(ctx, sessionAccessIndexPrefix+prev.AccessToken)
	}
	pipe.Set(ctx, sessionAccessIndexPrefix+session.AccessToken, session.Subject, r.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRepository) FindBySubject(ctx context.Context, subject string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+subject).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) FindByAccessToken(ctx context.Context, accessToken string) (*Session, error) {
	subject, err := r.client.Get(ctx, sessionAccessIndexPrefix+accessToken).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session index: %w", err)
	}

	session, err := r.FindBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if session.AccessToken != accessToken {
		// Index entry outlived a rotation; treat as gone.
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (r *sessionRepository) DeleteBySubject(ctx context.Context, subject string) error {
	session, err := r.FindBySubject(ctx, subject)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKeyPrefix+subject)
	pipe.Del(ctx, sessionAccessIndexPrefix+session.AccessToken)
	_, err = pipe.Exec(ctx)
	return err
}
