// Package session carries the caller's identity. Clients treat the bearer
// token as opaque apart from its subject; the API server verifies it.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session errors.
var (
	ErrNoSubject    = errors.New("session: token has no subject")
	ErrInvalidToken = errors.New("session: invalid token")
	ErrNoSecret     = errors.New("session: signing secret is empty")
)

// Session is the identity the client acts as.
type Session struct {
	Token  string
	UserID string
}

// FromToken reads the subject claim without verifying the signature.
func FromToken(token string) (Session, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Session{}, ErrNoSubject
	}
	return Session{Token: token, UserID: claims.Subject}, nil
}

// ReadOnly reports whether a scene owned by ownerID must be shown read-only.
// An empty owner means the session's own galaxy.
func (s Session) ReadOnly(ownerID string) bool {
	return ownerID != "" && ownerID != s.UserID
}

// Verifier issues and checks HS256 tokens whose subject is a user id.
type Verifier struct {
	Secret []byte
}

// NewVerifier returns a Verifier for secret.
func NewVerifier(secret string) (Verifier, error) {
	if secret == "" {
		return Verifier{}, ErrNoSecret
	}
	return Verifier{Secret: []byte(secret)}, nil
}

// Issue signs a token for userID. A zero ttl issues a token without expiry.
func (v Verifier) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.Secret)
	if err != nil {
		return "", fmt.Errorf("session: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its subject.
func (v Verifier) Verify(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrNoSubject
	}
	return claims.Subject, nil
}
