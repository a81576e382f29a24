// Package session issues and validates the signed tokens that identify a
// dashboard operator session.
package session

import (
	"errors"
	"fmt"
	"time"

	"fraudshield/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "fraudshield-dashboard"

var (
	ErrInvalidToken     = errors.New("invalid session token")
	ErrMissingSessionID = errors.New("session token has no session id")
)

// Service signs HS256 session tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a session service. A zero ttl issues tokens that
// never expire.
func NewService(secret string, ttl time.Duration) *Service {
	if secret == "" {
		panic("session secret is required")
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue starts a new session with the default scopes.
func (s *Service) Issue() (string, *models.SessionClaims, error) {
	now := s.now()
	sid := uuid.NewString()

	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   issuer,
			Subject:  sid,
		},
		SessionID: sid,
		Scopes:    models.DefaultScopes(),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims, nil
}

// Parse validates a token and returns its claims.
func (s *Service) Parse(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == "" {
		return nil, ErrMissingSessionID
	}
	return claims, nil
}
