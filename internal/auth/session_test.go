package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_RoundTrip(t *testing.T) {
	manager := NewSessionManager("test-secret")
	userID := uuid.New()

	token, err := manager.Issue(userID, "alice@example.com", "Alice", "https://example.com/a.png")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}

func TestSessionManager_RejectsTamperedToken(t *testing.T) {
	manager := NewSessionManager("test-secret")

	token, err := manager.Issue(uuid.New(), "alice@example.com", "", "")
	require.NoError(t, err)

	_, err = manager.Parse(token + "x")
	assert.Error(t, err)
}

func TestSessionManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewSessionManager("secret-a")
	verifier := NewSessionManager("secret-b")

	token, err := issuer.Issue(uuid.New(), "alice@example.com", "", "")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_RejectsExpiredToken(t *testing.T) {
	manager := NewSessionManager("test-secret")

	claims := SessionClaims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	manager := NewSessionManager("test-secret")

	_, err := manager.Parse("not-a-jwt")
	assert.Error(t, err)
}
