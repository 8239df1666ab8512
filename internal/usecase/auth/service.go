package auth

import (
	"strings"

	domain "retailstore/backend/internal/domain/auth"
)

// Service coordinates token issuance and verification. It keeps no state
// beyond the signing secret held by the token manager; nothing is persisted
// and tokens are never revoked before expiry.
type Service struct {
	tokens TokenManager
}

// NewService constructs an auth service.
func NewService(tokens TokenManager) *Service {
	return &Service{tokens: tokens}
}

// Issue creates a signed token asserting the given username. Two calls with
// the same username yield distinct tokens, both valid until their own expiry.
func (s *Service) Issue(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", domain.ErrUsernameRequired
	}
	return s.tokens.Generate(username)
}

// Verify validates a bearer token and returns the embedded claims. An empty
// token fails with ErrMissingToken; a present but unverifiable one with
// ErrInvalidToken.
func (s *Service) Verify(token string) (*domain.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrMissingToken
	}
	username, err := s.tokens.Validate(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Claims{Username: username}, nil
}
