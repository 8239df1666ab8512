package token

import (
	"testing"
	"time"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "retail-store")

	signed, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	username, err := manager.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected username %q, got %q", "alice", username)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, "retail-store")
	verifier := NewJWTManager("secret-b", time.Hour, "retail-store")

	signed, err := issuer.Generate("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.Validate(signed); err == nil {
		t.Fatal("expected validation to fail for token signed with another secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "retail-store")
	manager.nowFunc = func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}

	signed, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := manager.Validate(signed); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "retail-store")
	if _, err := manager.Validate("not-a-token"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}

func TestGenerateProducesDistinctTokens(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "retail-store")

	base := time.Now()
	manager.nowFunc = func() time.Time { return base }
	first, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("generate first: %v", err)
	}

	manager.nowFunc = func() time.Time { return base.Add(time.Second) }
	second, err := manager.Generate("alice")
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}

	if first == second {
		t.Fatal("expected tokens issued at different instants to differ")
	}
	for _, signed := range []string{first, second} {
		if _, err := manager.Validate(signed); err != nil {
			t.Fatalf("expected both tokens to remain valid: %v", err)
		}
	}
}
