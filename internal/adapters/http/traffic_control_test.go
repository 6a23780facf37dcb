package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddlewareRejectsBeyondBurst(t *testing.T) {
	handler := rateLimitMiddleware(okHandler(), 1, 2)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/documents", nil))
		codes = append(codes, res.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected burst to pass, got %v", codes)
	}

	limited := false
	for _, code := range codes[2:] {
		if code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Fatalf("expected a 429 past the burst, got %v", codes)
	}
}

func TestRateLimitMiddlewareSetsRetryAfter(t *testing.T) {
	handler := rateLimitMiddleware(okHandler(), 1, 1)

	// Drain the single burst token, then hit the limit.
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.Code)
	}
	if res.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimitMiddlewareDisabledAtZero(t *testing.T) {
	handler := rateLimitMiddleware(okHandler(), 0, 0)

	for i := 0; i < 50; i++ {
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
		if res.Code != http.StatusOK {
			t.Fatalf("expected pass-through, got %d on request %d", res.Code, i)
		}
	}
}

func TestBackpressureMiddlewareShedsWhenSaturated(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	slow := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	})
	handler := backpressureMiddleware(slow, 1, 20*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	}()

	// Give the first request time to take the only slot.
	time.Sleep(10 * time.Millisecond)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while saturated, got %d", res.Code)
	}

	once.Do(func() { close(release) })
	wg.Wait()
}
