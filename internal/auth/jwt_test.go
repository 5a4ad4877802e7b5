package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	userID := uuid.New()

	token, err := m.Issue(userID, "ana@example.com")
	require.NoError(t, err)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).Issue(uuid.New(), "a@b.c")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(uuid.New(), "a@b.c")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
