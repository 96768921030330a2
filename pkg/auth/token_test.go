package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/bakeria/bakeria-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-secret",
		Issuer: "bakeria-test",
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, time.Hour, AccessTokenClaims{
		Name:   "somchai",
		Email:  "somchai@example.com",
		Groups: []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "sub-1234",
		},
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Name != "somchai" {
		t.Fatalf("unexpected name %q", claims.Name)
	}
	if claims.Subject != "sub-1234" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if !claims.HasGroup("user") {
		t.Fatalf("expected user group membership")
	}
	if claims.HasGroup("admin") {
		t.Fatalf("unexpected admin group membership")
	}
}

func TestParseAccessToken_RejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	other := config.JWTConfig{Secret: cfg.Secret, Issuer: "someone-else"}

	signed, err := MintAccessToken(other, time.Now(), time.Hour, AccessTokenClaims{Name: "somchai"})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatalf("expected issuer mismatch error")
	}
}

func TestParseAccessToken_RejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAccessToken(cfg, time.Now(), time.Hour, AccessTokenClaims{Name: "somchai"})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	bad := config.JWTConfig{Secret: "other-secret", Issuer: cfg.Issuer}
	if _, err := ParseAccessToken(bad, signed); err == nil {
		t.Fatalf("expected signature validation error")
	}
}

func TestParseAccessToken_RejectsExpired(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), time.Hour, AccessTokenClaims{Name: "somchai"})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatalf("expected expiry validation error")
	}
}

func TestParseAccessToken_RejectsWrongAlgorithm(t *testing.T) {
	cfg := testJWTConfig()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, AccessTokenClaims{
		Name: "somchai",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil || !strings.Contains(err.Error(), "signing method") {
		t.Fatalf("expected signing method rejection, got %v", err)
	}
}

func TestMintAccessToken_Validation(t *testing.T) {
	if _, err := MintAccessToken(config.JWTConfig{Issuer: "x"}, time.Now(), time.Hour, AccessTokenClaims{}); err == nil {
		t.Fatalf("expected missing secret error")
	}
	if _, err := MintAccessToken(config.JWTConfig{Secret: "x"}, time.Now(), time.Hour, AccessTokenClaims{}); err == nil {
		t.Fatalf("expected missing issuer error")
	}
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), 0, AccessTokenClaims{}); err == nil {
		t.Fatalf("expected ttl error")
	}
}
