// Package jwt issues and verifies the signed session tokens. Tokens are
// self-contained; nothing about a session is stored server-side.
package jwt

import (
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenError represents token related errors.
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	// DefaultSessionExpire is the signature validity window of a session token.
	DefaultSessionExpire = time.Hour * 24

	ErrNeedSigningKey = TokenError("cannot sign token without signing key")
	ErrInvalidToken   = TokenError("invalid token")
)

const jtiSize = 16

// TokenManager handles session token operations under a single shared
// secret, loaded once at startup.
type TokenManager struct {
	key    string
	expire time.Duration
}

// NewTokenManager creates a new TokenManager instance. An optional expiry
// overrides the default one-day validity.
func NewTokenManager(key string, expire ...time.Duration) *TokenManager {
	tm := &TokenManager{key: key, expire: DefaultSessionExpire}
	if len(expire) > 0 && expire[0] != 0 {
		tm.expire = expire[0]
	}
	return tm
}

// validateKey validates the signing key.
func (tm *TokenManager) validateKey() error {
	if tm.key == "" {
		return ErrNeedSigningKey
	}
	return nil
}

// Generate signs a session token for the given subject (account id).
func (tm *TokenManager) Generate(subject string) (string, error) {
	if err := tm.validateKey(); err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwtstd.MapClaims{
		"jti": gonanoid.Must(jtiSize),
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(tm.expire).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(tm.key))
}

// Decode verifies a token's signature and expiry and returns its subject.
// Malformed, tampered and expired tokens all come back as ErrInvalidToken.
func (tm *TokenManager) Decode(tokenString string) (string, error) {
	if err := tm.validateKey(); err != nil {
		return "", err
	}

	token, err := jwtstd.Parse(tokenString, func(t *jwtstd.Token) (any, error) {
		if _, ok := t.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(tm.key), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtstd.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
