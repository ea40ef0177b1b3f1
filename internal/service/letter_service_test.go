package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/events"
)

type memLetterRepo struct {
	letters map[string]*domain.Letter
	nextID  int
}

func newMemLetterRepo() *memLetterRepo {
	return &memLetterRepo{letters: map[string]*domain.Letter{}}
}

func (m *memLetterRepo) Create(_ context.Context, letter *domain.Letter) error {
	m.nextID++
	letter.ID = fmt.Sprintf("letter-%d", m.nextID)
	letter.CreatedAt = time.Now()
	if letter.OpenAt.IsZero() {
		letter.OpenAt = letter.CreatedAt
	}
	copied := *letter
	m.letters[letter.ID] = &copied
	return nil
}

func (m *memLetterRepo) GetByID(_ context.Context, id string) (*domain.Letter, error) {
	letter, ok := m.letters[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *letter
	return &copied, nil
}

func (m *memLetterRepo) ListByReceiverID(_ context.Context, receiverID string) ([]*domain.Letter, error) {
	var out []*domain.Letter
	for _, letter := range m.letters {
		if letter.ReceiverID == receiverID {
			copied := *letter
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memLetterRepo) MarkRead(_ context.Context, id string) error {
	letter, ok := m.letters[id]
	if !ok {
		return pgx.ErrNoRows
	}
	letter.IsRead = true
	return nil
}

func (m *memLetterRepo) CountUnread(_ context.Context, receiverID string) (int64, error) {
	var count int64
	now := time.Now()
	for _, letter := range m.letters {
		if letter.ReceiverID == receiverID && !letter.IsRead && letter.Openable(now) {
			count++
		}
	}
	return count, nil
}

type fakeFileService struct{ counter int }

func (f *fakeFileService) NewKey(prefix string) string {
	f.counter++
	return fmt.Sprintf("%s/key-%d", prefix, f.counter)
}

func (f *fakeFileService) UploadURL(key string) string   { return "https://upload.test/" + key }
func (f *fakeFileService) DownloadURL(key string) string { return "https://cdn.test/" + key }

func newLetterServiceFixture(t *testing.T) (*LetterService, *memUserRepo, *memLetterRepo) {
	t.Helper()
	users := newMemUserRepo()
	letters := newMemLetterRepo()
	svc := NewLetterService(letters, users, &fakeFileService{}, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, users, letters
}

func seedFamilyPair(t *testing.T, users *memUserRepo) (sender, receiver *domain.User) {
	t.Helper()
	ctx := context.Background()
	sender = &domain.User{Email: "dad@example.com", Name: "Dad", Active: true}
	receiver = &domain.User{Email: "kid@example.com", Name: "Kid", Active: true}
	require.NoError(t, users.Create(ctx, sender))
	require.NoError(t, users.Create(ctx, receiver))
	require.NoError(t, users.UpdateFamily(ctx, sender.ID, "family-1"))
	require.NoError(t, users.UpdateFamily(ctx, receiver.ID, "family-1"))
	return sender, receiver
}

func TestSendLetterWithinFamily(t *testing.T) {
	svc, users, _ := newLetterServiceFixture(t)
	sender, receiver := seedFamilyPair(t, users)

	letter, uploadURL, err := svc.SendLetter(context.Background(), sender.ID, LetterInput{
		ReceiverID: receiver.ID,
		Type:       domain.LetterTypeText,
		Content:    "happy birthday",
	})
	require.NoError(t, err)
	require.Empty(t, uploadURL)
	require.Equal(t, "happy birthday", letter.Content)
	require.False(t, letter.IsRead)
}

func TestSendAudioLetterIssuesUploadURL(t *testing.T) {
	svc, users, _ := newLetterServiceFixture(t)
	sender, receiver := seedFamilyPair(t, users)

	letter, uploadURL, err := svc.SendLetter(context.Background(), sender.ID, LetterInput{
		ReceiverID: receiver.ID,
		Type:       domain.LetterTypeAudio,
	})
	require.NoError(t, err)
	require.NotEmpty(t, uploadURL)
	// Content carries the storage key, not the recording itself.
	require.NotEmpty(t, letter.Content)
	require.Contains(t, uploadURL, letter.Content)
}

func TestSendLetterRejectsCrossFamily(t *testing.T) {
	svc, users, _ := newLetterServiceFixture(t)
	sender, _ := seedFamilyPair(t, users)

	ctx := context.Background()
	stranger := &domain.User{Email: "stranger@example.com", Name: "Stranger", Active: true}
	require.NoError(t, users.Create(ctx, stranger))
	require.NoError(t, users.UpdateFamily(ctx, stranger.ID, "family-2"))

	_, _, err := svc.SendLetter(ctx, sender.ID, LetterInput{
		ReceiverID: stranger.ID,
		Type:       domain.LetterTypeText,
		Content:    "hello?",
	})
	require.Error(t, err)
	require.Equal(t, "FORBIDDEN", domainCode(t, err))

	// A sender with no family at all is rejected the same way.
	solo := &domain.User{Email: "solo@example.com", Name: "Solo", Active: true}
	require.NoError(t, users.Create(ctx, solo))
	_, _, err = svc.SendLetter(ctx, solo.ID, LetterInput{
		ReceiverID: sender.ID,
		Type:       domain.LetterTypeText,
		Content:    "hi",
	})
	require.Error(t, err)
	require.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestReadLetterEnforcesOpenAtAndReceiver(t *testing.T) {
	svc, users, _ := newLetterServiceFixture(t)
	sender, receiver := seedFamilyPair(t, users)
	ctx := context.Background()

	capsule, _, err := svc.SendLetter(ctx, sender.ID, LetterInput{
		ReceiverID: receiver.ID,
		Type:       domain.LetterTypeText,
		Content:    "open me next year",
		OpenAt:     time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.ReadLetter(ctx, receiver.ID, capsule.ID)
	require.Error(t, err)
	require.Equal(t, "FORBIDDEN", domainCode(t, err))

	plain, _, err := svc.SendLetter(ctx, sender.ID, LetterInput{
		ReceiverID: receiver.ID,
		Type:       domain.LetterTypeText,
		Content:    "open me now",
	})
	require.NoError(t, err)

	// Only the addressee may read it.
	_, err = svc.ReadLetter(ctx, sender.ID, plain.ID)
	require.Error(t, err)

	read, err := svc.ReadLetter(ctx, receiver.ID, plain.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)
}
