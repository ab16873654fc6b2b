package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	signed, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID, "tokens carry a jti")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueWithTTL(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	signed, err := m.IssueWithTTL(7, 15*time.Minute)
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := NewManager("otro-secreto", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = NewManager(testSecret, time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager(testSecret, time.Hour)

	signed, err := m.IssueWithTTL(42, -time.Minute)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_MissingSubject(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	signed, err := m.IssueWithTTL(0, time.Hour)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}
