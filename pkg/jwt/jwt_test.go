package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewManager_EmptySecret(t *testing.T) {
	_, err := NewManager("", time.Minute, time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestNewManager_DefaultTTLs(t *testing.T) {
	m, err := NewManager(testSecret, 0, 0)
	require.NoError(t, err)

	pair, err := m.IssuePair(1)
	require.NoError(t, err)

	access, err := m.ValidateToken(pair.Access)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultAccessTTL), access.ExpiresAt.Time, time.Minute)

	refresh, err := m.ValidateToken(pair.Refresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultRefreshTTL), refresh.ExpiresAt.Time, time.Minute)
}

func TestIssuePair(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair(42)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	access, err := m.ValidateTokenType(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.NotEmpty(t, access.ID)

	refresh, err := m.ValidateTokenType(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refresh.UserID)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestValidateTokenType_WrongType(t *testing.T) {
	m := newTestManager(t)
	pair, err := m.IssuePair(1)
	require.NoError(t, err)

	_, err = m.ValidateTokenType(pair.Access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = m.ValidateTokenType(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestValidateToken_Invalid(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager("another-secret-key-at-least-32-chars", time.Minute, time.Minute)
	require.NoError(t, err)
	foreign, err := other.IssueAccess(1)
	require.NoError(t, err)

	expiredManager, err := NewManager(testSecret, -time.Minute, -time.Minute)
	require.NoError(t, err)
	expired, err := expiredManager.IssueAccess(1)
	require.NoError(t, err)

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, TokenType: TokenTypeAccess})
	unsigned, err := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "foreign secret", token: foreign},
		{name: "expired", token: expired},
		{name: "alg none", token: unsigned},
		{name: "truncated", token: strings.TrimSuffix(foreign, foreign[len(foreign)-4:])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateToken(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestValidateToken_MissingTokenType(t *testing.T) {
	m := newTestManager(t)
	claims := jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
