package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "mc_session"

// SessionMaxAge is the session lifetime in seconds (30 days). The cookie is
// the session; there is no server-side session store.
const SessionMaxAge = 30 * 24 * 60 * 60

// SessionClaims are the claims encoded into the session token
type SessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager issues and parses HS256-signed session tokens
type SessionManager struct {
	secret []byte
}

// NewSessionManager creates a new session manager
func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret)}
}

// Issue creates a signed session token for a user
func (s *SessionManager) Issue(userID uuid.UUID, email, name, picture string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionMaxAge * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a session token and returns its claims
func (s *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("session token has no valid subject")
	}

	return claims, nil
}

// UserID returns the user id encoded in the claims
func (c *SessionClaims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}
