package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, expiresAt, err := provider.Generate("19cs05", RoleStudent, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected a future expiry, got %v", expiresAt)
	}
	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Roll != "19cs05" {
		t.Fatalf("unexpected roll: %q", claims.Roll)
	}
	if claims.Role != RoleStudent {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret-a").Generate("19cs05", RoleStudent, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewJWTProvider("secret-b").Parse(token); err == nil {
		t.Fatalf("expected a signature error")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate("19cs05", RoleStudent, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatalf("expected an expiry error")
	}
}

func TestJWTRollFallsBackToSubject(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	// Tokens minted by the external auth service may carry only sub.
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "19cs05",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := provider.Parse(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Roll != "19cs05" {
		t.Fatalf("expected roll taken from sub, got %q", claims.Roll)
	}
}

func TestJWTRejectsMissingRoll(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate("", RoleStudent, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatalf("expected an error for a token without roll or subject")
	}
}
