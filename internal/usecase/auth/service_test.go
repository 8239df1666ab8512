package auth

import (
	"errors"
	"testing"

	domain "retailstore/backend/internal/domain/auth"
)

type stubTokenManager struct {
	generated   string
	generateErr error
	validated   string
	validateErr error
	lastInput   string
}

func (s *stubTokenManager) Generate(username string) (string, error) {
	s.lastInput = username
	return s.generated, s.generateErr
}

func (s *stubTokenManager) Validate(token string) (string, error) {
	s.lastInput = token
	return s.validated, s.validateErr
}

func TestIssueRequiresUsername(t *testing.T) {
	svc := NewService(&stubTokenManager{})

	for _, username := range []string{"", "   "} {
		if _, err := svc.Issue(username); !errors.Is(err, domain.ErrUsernameRequired) {
			t.Fatalf("username %q: expected ErrUsernameRequired, got %v", username, err)
		}
	}
}

func TestIssueTrimsAndDelegates(t *testing.T) {
	tokens := &stubTokenManager{generated: "signed"}
	svc := NewService(tokens)

	signed, err := svc.Issue("  alice  ")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed != "signed" {
		t.Fatalf("expected token %q, got %q", "signed", signed)
	}
	if tokens.lastInput != "alice" {
		t.Fatalf("expected trimmed username, got %q", tokens.lastInput)
	}
}

func TestVerifyMissingToken(t *testing.T) {
	svc := NewService(&stubTokenManager{})

	for _, token := range []string{"", "  "} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("token %q: expected ErrMissingToken, got %v", token, err)
		}
	}
}

func TestVerifyInvalidToken(t *testing.T) {
	svc := NewService(&stubTokenManager{validateErr: errors.New("signature mismatch")})

	_, err := svc.Verify("bad-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if errors.Is(err, domain.ErrMissingToken) {
		t.Fatal("invalid token must not be reported as missing")
	}
}

func TestVerifyReturnsClaims(t *testing.T) {
	svc := NewService(&stubTokenManager{validated: "alice"})

	claims, err := svc.Verify("good-token")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username %q, got %q", "alice", claims.Username)
	}
}
