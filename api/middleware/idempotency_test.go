package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryIdempotencyStore struct {
	values map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "bakeria:idempotency:" + scope + ":" + id
}

func (m *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func checkoutHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"orderId":"order-1"}}`))
	})
}

func checkoutRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "abc-123")
	return req
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var calls int
	handler := Idempotency(newMemoryIdempotencyStore(), 0, nil)(checkoutHandler(&calls))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, checkoutRequest(`{"shipping":{}}`))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, checkoutRequest(`{"shipping":{}}`))
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", second.Body.String(), first.Body.String())
	}
	if got := second.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("replay should keep content type, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("handler must run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	var calls int
	handler := Idempotency(newMemoryIdempotencyStore(), 0, nil)(checkoutHandler(&calls))

	handler.ServeHTTP(httptest.NewRecorder(), checkoutRequest(`{"shipping":{"name":"A"}}`))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, checkoutRequest(`{"shipping":{"name":"B"}}`))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on body mismatch, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "IDEMPOTENCY_KEY_REUSED") {
		t.Fatalf("expected IDEMPOTENCY_KEY_REUSED code, got %s", w.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler must not run on conflict, ran %d times", calls)
	}
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	var calls int
	handler := Idempotency(newMemoryIdempotencyStore(), 0, nil)(checkoutHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", w.Code)
	}
	if calls != 0 {
		t.Fatalf("handler must not run, ran %d times", calls)
	}
}

func TestIdempotencyIgnoresUncoveredRoutes(t *testing.T) {
	var calls int
	handler := Idempotency(newMemoryIdempotencyStore(), 0, nil)(checkoutHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("uncovered route should pass through, got %d", w.Code)
	}
	if calls != 1 {
		t.Fatalf("handler should run, ran %d times", calls)
	}
}
