package repository

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrInviteCodeNotFound is returned for unknown or expired invite codes.
var ErrInviteCodeNotFound = errors.New("invite code not found")

const (
	inviteCodeKeyPrefix   = "invite:code:"
	inviteFamilyKeyPrefix = "invite:family:"

	inviteCodeMaxAttempts = 5
)

// InviteCodeRepository issues short numeric codes that let a new member find
// a family. Codes expire on the store clock; a family reuses its live code
// instead of minting a new one per request.
type InviteCodeRepository interface {
	GetOrCreate(ctx context.Context, familyID string) (string, error)
	ResolveFamilyID(ctx context.Context, code string) (string, error)
}

type inviteCodeRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInviteCodeRepository returns a Redis-backed code store.
func NewInviteCodeRepository(client *redis.Client, ttl time.Duration) InviteCodeRepository {
	return &inviteCodeRepository{client: client, ttl: ttl}
}

func (r *inviteCodeRepository) GetOrCreate(ctx context.Context, familyID string) (string, error) {
	code, err := r.client.Get(ctx, inviteFamilyKeyPrefix+familyID).Result()
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("get invite code: %w", err)
	}

	// SetNX guards against rebinding another family's live code. Collisions
	// over an 8-digit space are rare enough that a few retries suffice.
	for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
		code = generateNumericCode()
		claimed, err := r.client.SetNX(ctx, inviteCodeKeyPrefix+code, familyID, r.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("store invite code: %w", err)
		}
		if !claimed {
			continue
		}
		if err := r.client.Set(ctx, inviteFamilyKeyPrefix+familyID, code, r.ttl).Err(); err != nil {
			return "", fmt.Errorf("store invite code: %w", err)
		}
		return code, nil
	}
	return "", errors.New("invite code space exhausted")
}

func (r *inviteCodeRepository) ResolveFamilyID(ctx context.Context, code string) (string, error) {
	familyID, err := r.client.Get(ctx, inviteCodeKeyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInviteCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve invite code: %w", err)
	}
	return familyID, nil
}

// generateNumericCode derives an 8-digit code from the low bits of a UUID.
// A variable so collision handling can be exercised in tests.
var generateNumericCode = func() string {
	id := uuid.New()
	low := binary.BigEndian.Uint32(id[12:16])
	return fmt.Sprintf("%08d", uint64(low)%90000000+10000000)
}
