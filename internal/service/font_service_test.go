package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

type memFontRepo struct {
	fonts  map[string]*domain.Font
	nextID int
}

func newMemFontRepo() *memFontRepo {
	return &memFontRepo{fonts: make(map[string]*domain.Font)}
}

func (m *memFontRepo) Create(_ context.Context, font *domain.Font) error {
	m.nextID++
	font.ID = fmt.Sprintf("font-%d", m.nextID)
	stored := *font
	m.fonts[font.ID] = &stored
	return nil
}

func (m *memFontRepo) GetByID(_ context.Context, id string) (*domain.Font, error) {
	font, ok := m.fonts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *font
	return &copied, nil
}

func (m *memFontRepo) GetByUserID(_ context.Context, userID string) (*domain.Font, error) {
	for _, font := range m.fonts {
		if font.UserID == userID {
			copied := *font
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memFontRepo) ListByStatus(_ context.Context, status domain.FontStatus) ([]*domain.Font, error) {
	var out []*domain.Font
	for _, font := range m.fonts {
		if font.Status == status {
			copied := *font
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memFontRepo) UpdateStatus(_ context.Context, id string, status domain.FontStatus, path *string) error {
	font, ok := m.fonts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	font.Status = status
	if path != nil {
		font.Path = path
	}
	return nil
}

func (m *memFontRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.fonts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.fonts, id)
	return nil
}

func newFontServiceFixture(t *testing.T) (*FontService, *memFontRepo) {
	t.Helper()
	fonts := newMemFontRepo()
	return NewFontService(fonts, &fakeFileService{}, zap.NewNop()), fonts
}

func TestRequestFontPersistsTemplateKey(t *testing.T) {
	svc, fonts := newFontServiceFixture(t)
	ctx := context.Background()

	font, uploadURL, err := svc.RequestFont(ctx, "user-1", "아빠글씨", "dad-hand")
	require.NoError(t, err)
	require.NotEmpty(t, font.TemplateKey)
	require.Contains(t, uploadURL, font.TemplateKey)

	// The key survives persistence so a reviewer can fetch the sample later.
	stored, err := fonts.GetByID(ctx, font.ID)
	require.NoError(t, err)
	require.Equal(t, font.TemplateKey, stored.TemplateKey)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, font.TemplateKey, pending[0].TemplateKey)
	require.Contains(t, svc.TemplateURL(pending[0]), font.TemplateKey)
}

func TestRequestFontRejectsSecondRequest(t *testing.T) {
	svc, _ := newFontServiceFixture(t)
	ctx := context.Background()

	_, _, err := svc.RequestFont(ctx, "user-1", "아빠글씨", "dad-hand")
	require.NoError(t, err)

	_, _, err = svc.RequestFont(ctx, "user-1", "또글씨", "dad-hand-2")
	require.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestFontReviewLifecycle(t *testing.T) {
	svc, _ := newFontServiceFixture(t)
	ctx := context.Background()

	font, _, err := svc.RequestFont(ctx, "user-1", "아빠글씨", "dad-hand")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, font.ID, "font-file/dad-hand.ttf"))

	approved, err := svc.MyFont(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, domain.FontStatusApproved, approved.Status)
	require.Contains(t, svc.FontFileURL(approved), "font-file/dad-hand.ttf")

	// Only pending fonts are reviewable.
	err = svc.Reject(ctx, font.ID)
	require.Equal(t, "CONFLICT", domainCode(t, err))
}
