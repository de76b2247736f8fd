package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"turfly/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	store := NewInMemoryIdempotencyStore(1 * time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc123"}`))
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, rec.Code)
		}
		if rec.Body.String() != `{"id":"abc123"}` {
			t.Fatalf("request %d: unexpected body %q", i, rec.Body.String())
		}
	}

	if calls != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotency_MissingKeyIsNotCached(t *testing.T) {
	store := NewInMemoryIdempotencyStore(1 * time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Errorf("expected handler to run for every request, ran %d times", calls)
	}
}

func TestIdempotency_ErrorResponsesAreNotCached(t *testing.T) {
	store := NewInMemoryIdempotencyStore(1 * time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set("Idempotency-Key", "key-retry")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Errorf("expected failed response to be retried, handler ran %d times", calls)
	}
}

func TestOperatorRateLimit_BlocksAfterLimit(t *testing.T) {
	limiter := NewOperatorRateLimiter(2, 1*time.Minute, DefaultOperatorExtractor, testLogger())
	defer limiter.Stop()

	handler := OperatorRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil)
		req.Header.Set("X-Operator-ID", "op-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %d", codes[2])
	}
}

func TestOperatorRateLimit_AnonymousRequestsBypass(t *testing.T) {
	limiter := NewOperatorRateLimiter(1, 1*time.Minute, DefaultOperatorExtractor, testLogger())
	defer limiter.Stop()

	handler := OperatorRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: anonymous request was limited", i)
		}
	}
}

func TestOperatorRateLimit_OperatorsAreIsolated(t *testing.T) {
	limiter := NewOperatorRateLimiter(1, 1*time.Minute, DefaultOperatorExtractor, testLogger())
	defer limiter.Stop()

	if !limiter.Allow("op-a") {
		t.Fatal("first request for op-a should pass")
	}
	if limiter.Allow("op-a") {
		t.Error("second request for op-a should be limited")
	}
	if !limiter.Allow("op-b") {
		t.Error("op-b should have its own budget")
	}
}
