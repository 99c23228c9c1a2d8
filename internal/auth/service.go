// Package auth signs librarians in against the configured credentials and
// issues the bearer tokens that guard every mutation.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryapi/internal/platform/crypto"
)

var ErrUnauthorized = errors.New("unauthorized")

type Service struct {
	secret       string
	email        string
	passwordHash string
	// decoy is compared when the email does not match, so both failures
	// cost one bcrypt comparison.
	decoy string
	ttl   time.Duration
}

// NewService returns a service accepting a single librarian account. With an
// empty email or hash every login is refused.
func NewService(secret, email, passwordHash string, ttl time.Duration) *Service {
	decoy, _ := crypto.HashPassword("not-the-librarian-password")
	return &Service{
		decoy:        decoy,
		secret:       secret,
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		ttl:          ttl,
	}
}

// Token is a signed access token and its lifetime in seconds.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (s *Service) Login(_ context.Context, email, password string) (Token, error) {
	if s.email == "" || s.passwordHash == "" {
		return Token{}, ErrUnauthorized
	}

	hash := s.passwordHash
	match := strings.EqualFold(strings.TrimSpace(email), s.email)
	if !match {
		hash = s.decoy
	}
	if !crypto.VerifyPassword(hash, password) || !match {
		return Token{}, ErrUnauthorized
	}

	accessToken, _, err := crypto.GenerateToken(s.secret, s.email, crypto.RoleLibrarian, s.ttl)
	if err != nil {
		return Token{}, err
	}
	return Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.ttl.Seconds()),
	}, nil
}
