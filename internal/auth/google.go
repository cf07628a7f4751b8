// Package auth handles the Google OAuth exchange and the session cookie JWT.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthentication covers every failure of the OAuth code exchange: a bad
// code, an unverifiable id_token, or missing required claims.
var ErrAuthentication = errors.New("authentication failed")

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	googleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
)

// GoogleProfile holds the identity claims extracted from a verified id_token
type GoogleProfile struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// GoogleClient exchanges authorization codes and verifies Google id_tokens
type GoogleClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	jwksURL      string
	httpClient   *http.Client

	mu         sync.Mutex
	publicKeys map[string]*rsa.PublicKey
}

// NewGoogleClient creates a new Google OAuth client
func NewGoogleClient(clientID, clientSecret, redirectURI string) *GoogleClient {
	return &GoogleClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     googleTokenURL,
		jwksURL:      googleJWKSURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		publicKeys: make(map[string]*rsa.PublicKey),
	}
}

// AuthURL returns the consent-screen redirect URL requesting profile and
// email scopes. No side effects.
func (g *GoogleClient) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", g.clientID)
	q.Set("redirect_uri", g.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("access_type", "offline")
	return googleAuthURL + "?" + q.Encode()
}

type tokenResponse struct {
	IDToken string `json:"id_token"`
}

// ExchangeCode exchanges an authorization code for an id_token, verifies it
// and returns the identity claims it carries.
func (g *GoogleClient) ExchangeCode(ctx context.Context, code string) (*GoogleProfile, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("redirect_uri", g.redirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token exchange: %v", ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned status %d", ErrAuthentication, resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("%w: failed to parse token response: %v", ErrAuthentication, err)
	}
	if tokens.IDToken == "" {
		return nil, fmt.Errorf("%w: no id_token in response", ErrAuthentication)
	}

	return g.verifyIDToken(tokens.IDToken)
}

// verifyIDToken checks the RS256 signature against Google's JWKS plus the
// issuer and audience claims, then extracts the profile.
func (g *GoogleClient) verifyIDToken(idToken string) (*GoogleProfile, error) {
	token, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, ok := t.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("no kid in token header")
		}
		return g.getPublicKey(kid)
	},
		jwt.WithAudience(g.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to verify id_token: %v", ErrAuthentication, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid id_token claims", ErrAuthentication)
	}

	iss, _ := claims["iss"].(string)
	if iss != "accounts.google.com" && iss != "https://accounts.google.com" {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrAuthentication, iss)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" || email == "" {
		return nil, fmt.Errorf("%w: id_token missing sub or email claim", ErrAuthentication)
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &GoogleProfile{
		Sub:     sub,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}

// googleJWKS represents the JWK Set served by Google
type googleJWKS struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		Use string `json:"use"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

// getPublicKey fetches and caches the public key for a given kid
func (g *GoogleClient) getPublicKey(kid string) (*rsa.PublicKey, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if key, exists := g.publicKeys[kid]; exists {
		return key, nil
	}

	jwks, err := g.fetchJWKS()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	for _, key := range jwks.Keys {
		if key.Kid == kid {
			publicKey, err := jwkToRSAPublicKey(key.N, key.E)
			if err != nil {
				return nil, fmt.Errorf("failed to convert JWK to RSA public key: %w", err)
			}

			g.publicKeys[kid] = publicKey
			return publicKey, nil
		}
	}

	return nil, fmt.Errorf("public key not found for kid: %s", kid)
}

// fetchJWKS fetches the JSON Web Key Set from Google
func (g *GoogleClient) fetchJWKS() (*googleJWKS, error) {
	resp, err := g.httpClient.Get(g.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS endpoint returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read JWKS response: %w", err)
	}

	var jwks googleJWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return nil, fmt.Errorf("failed to parse JWKS: %w", err)
	}

	return &jwks, nil
}

// jwkToRSAPublicKey builds an RSA public key from base64url-encoded modulus
// and exponent values.
func jwkToRSAPublicKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	exponent := 0
	for _, b := range eBytes {
		exponent = exponent<<8 | int(b)
	}
	if exponent == 0 {
		return nil, fmt.Errorf("invalid exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: exponent,
	}, nil
}
