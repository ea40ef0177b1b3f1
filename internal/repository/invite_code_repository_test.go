package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{8}$`)
	for i := 0; i < 100; i++ {
		code := generateNumericCode()
		require.True(t, pattern.MatchString(code), "code %q is not 8 digits", code)
		require.NotEqual(t, '0', rune(code[0]), "code %q has a leading zero", code)
	}
}

func TestInviteCodeRoundTrip(t *testing.T) {
	client := testRedisClient(t)
	repo := NewInviteCodeRepository(client, 30*time.Minute)
	ctx := context.Background()

	code, err := repo.GetOrCreate(ctx, "family-1")
	require.NoError(t, err)
	require.Len(t, code, 8)

	familyID, err := repo.ResolveFamilyID(ctx, code)
	require.NoError(t, err)
	require.Equal(t, "family-1", familyID)

	// A second request inside the TTL returns the same live code.
	again, err := repo.GetOrCreate(ctx, "family-1")
	require.NoError(t, err)
	require.Equal(t, code, again)
}

func TestInviteCodeCollisionKeepsExistingBinding(t *testing.T) {
	client := testRedisClient(t)
	repo := NewInviteCodeRepository(client, 30*time.Minute)
	ctx := context.Background()

	// Force the generator through a collision with family-1's live code.
	codes := []string{"11111111", "11111111", "22222222"}
	original := generateNumericCode
	generateNumericCode = func() string {
		code := codes[0]
		if len(codes) > 1 {
			codes = codes[1:]
		}
		return code
	}
	defer func() { generateNumericCode = original }()

	first, err := repo.GetOrCreate(ctx, "family-1")
	require.NoError(t, err)
	require.Equal(t, "11111111", first)

	second, err := repo.GetOrCreate(ctx, "family-2")
	require.NoError(t, err)
	require.Equal(t, "22222222", second)

	familyID, err := repo.ResolveFamilyID(ctx, "11111111")
	require.NoError(t, err)
	require.Equal(t, "family-1", familyID)
}

func TestInviteCodeUnknown(t *testing.T) {
	client := testRedisClient(t)
	repo := NewInviteCodeRepository(client, 30*time.Minute)

	_, err := repo.ResolveFamilyID(context.Background(), "00000000")
	require.ErrorIs(t, err, ErrInviteCodeNotFound)
}
