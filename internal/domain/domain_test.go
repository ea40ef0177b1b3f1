package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLetterOpenable(t *testing.T) {
	now := time.Now()

	sealed := &Letter{OpenAt: now.Add(time.Hour)}
	require.False(t, sealed.Openable(now))

	open := &Letter{OpenAt: now.Add(-time.Hour)}
	require.True(t, open.Openable(now))

	// A letter opening exactly now is readable.
	boundary := &Letter{OpenAt: now}
	require.True(t, boundary.Openable(now))
}

func TestScheduleValidRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.True(t, (&Schedule{StartDate: start, EndDate: start.Add(24 * time.Hour)}).ValidRange())
	require.True(t, (&Schedule{StartDate: start, EndDate: start}).ValidRange())
	require.False(t, (&Schedule{StartDate: start, EndDate: start.Add(-time.Hour)}).ValidRange())
}

func TestUserJoined(t *testing.T) {
	require.False(t, (&User{}).Joined())

	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, (&User{Birth: &birth}).Joined())

	phone := "010-1234-5678"
	require.True(t, (&User{PhoneNumber: &phone}).Joined())
}
