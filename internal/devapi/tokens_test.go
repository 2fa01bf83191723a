package devapi

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken("user-123", 2, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Generation != 2 {
		t.Fatalf("claims mismatch: got %q/%d", claims.UserID, claims.Generation)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u1", 0, []byte("secret"), -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken(tok, []byte("secret")); err != ErrorTokenExpired {
		t.Fatalf("expected ErrorTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", 0, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := ParseToken(tok, []byte("wrong-secret")); err != ErrorInvalidToken {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not-a-jwt", []byte("s")); err != ErrorInvalidToken {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}
