package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hashed)

	require.NoError(t, ComparePassword(hashed, "correct horse battery staple"))
	require.Error(t, ComparePassword(hashed, "wrong password"))
}

func TestPasswordHashUsesDefaultCostWhenUnset(t *testing.T) {
	hashed, err := HashPassword("secret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}
