package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bakeria/bakeria-backend/internal/identity"
	pkgAuth "github.com/bakeria/bakeria-backend/pkg/auth"
	"github.com/bakeria/bakeria-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "bakeria-test"}
}

func mintToken(t *testing.T, claims pkgAuth.AccessTokenClaims) string {
	t.Helper()
	signed, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now(), time.Hour, claims)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

func principalCapture(captured **identity.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthResolvesShopperPrincipal(t *testing.T) {
	var captured *identity.Principal
	handler := Auth(testJWTConfig(), nil)(principalCapture(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/me", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, pkgAuth.AccessTokenClaims{
		Name:   "somchai",
		Groups: []string{"user"},
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if captured == nil || captured.UserID != "somchai" {
		t.Fatalf("expected shopper principal, got %+v", captured)
	}
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	var captured *identity.Principal
	handler := OptionalAuth(testJWTConfig(), nil)(principalCapture(&captured))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != nil {
		t.Fatalf("anonymous request should carry no principal, got %+v", captured)
	}
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	handler := OptionalAuth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("present-but-invalid token must be rejected, got %d", w.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(testJWTConfig(), nil)(RequireStaff(nil)(ok))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, pkgAuth.AccessTokenClaims{
		Groups:           []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{Subject: "staff-1"},
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("staff token should pass, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, pkgAuth.AccessTokenClaims{
		Name:   "somchai",
		Groups: []string{"user"},
	}))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("shopper must not reach staff routes, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	RequireStaff(nil)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing principal must read as unauthenticated, got %d", w.Code)
	}
}
