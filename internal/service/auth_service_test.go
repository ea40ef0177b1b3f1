package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/domain"
)

type memUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	copied := *user
	m.byID[user.ID] = &copied
	m.byEmail[user.Email] = &copied
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	copied := *user
	m.byID[user.ID] = &copied
	m.byEmail[user.Email] = &copied
	return nil
}

func (m *memUserRepo) UpdateFamily(_ context.Context, userID, familyID string) error {
	user, ok := m.byID[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	user.FamilyID = &familyID
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memUserRepo) ListByFamilyID(_ context.Context, familyID string) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range m.byID {
		if user.FamilyID != nil && *user.FamilyID == familyID {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

type memAdminRepo struct {
	byEmail map[string]*domain.Admin
	nextID  int
}

func (m *memAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	m.nextID++
	admin.ID = fmt.Sprintf("admin-%d", m.nextID)
	stored := *admin
	m.byEmail[admin.Email] = &stored
	return nil
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	admin, ok := m.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return admin, nil
}

func newAuthServiceFixture(t *testing.T, provider ProviderClient) (*AuthService, *memUserRepo) {
	t.Helper()
	fx := newTokenServiceFixture(t)
	users := newMemUserRepo()

	hash, err := auth.HashPassword("admin-password", bcrypt.MinCost)
	require.NoError(t, err)
	admins := &memAdminRepo{nextID: 1, byEmail: map[string]*domain.Admin{
		"admin@example.com": {ID: "admin-1", Email: "admin@example.com", PasswordHash: hash},
	}}

	return NewAuthService(users, admins, provider, fx.service, zap.NewNop()), users
}

func TestLoginWithProviderRegistersNewUser(t *testing.T) {
	provider := &StaticProviderClient{Profile: ProviderProfile{
		Email: "mom@example.com",
		Name:  "Mom",
	}}
	svc, users := newAuthServiceFixture(t, provider)

	pair, user, err := svc.LoginWithProvider(context.Background(), "any-code")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "mom@example.com", user.Email)

	stored, err := users.GetByEmail(context.Background(), "mom@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.ID)

	// A second login with the same provider identity reuses the row.
	_, again, err := svc.LoginWithProvider(context.Background(), "any-code")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
}

func TestLoginWithProviderRejectsFailedExchange(t *testing.T) {
	provider := &StaticProviderClient{Err: errors.New("provider unreachable")}
	svc, _ := newAuthServiceFixture(t, provider)

	_, _, err := svc.LoginWithProvider(context.Background(), "bad-code")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestLoginAdmin(t *testing.T) {
	svc, _ := newAuthServiceFixture(t, &StaticProviderClient{})

	pair, err := svc.LoginAdmin(context.Background(), "admin@example.com", "admin-password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	_, err = svc.LoginAdmin(context.Background(), "admin@example.com", "wrong-password")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, err = svc.LoginAdmin(context.Background(), "nobody@example.com", "admin-password")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestProvisionAdmin(t *testing.T) {
	svc, _ := newAuthServiceFixture(t, &StaticProviderClient{})
	ctx := context.Background()

	admin, err := svc.ProvisionAdmin(ctx, "ops@example.com", "Ops", "ops-password", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, admin.ID)
	require.NoError(t, auth.ComparePassword(admin.PasswordHash, "ops-password"))

	pair, err := svc.LoginAdmin(ctx, "ops@example.com", "ops-password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	_, err = svc.ProvisionAdmin(ctx, "ops@example.com", "Ops", "another", bcrypt.MinCost)
	require.Equal(t, "CONFLICT", domainCode(t, err))
}
