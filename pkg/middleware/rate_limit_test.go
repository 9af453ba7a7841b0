package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tranquilstay/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimiter_Allow(t *testing.T) {
	limiter := NewInMemoryRateLimiter(2, time.Minute)
	defer limiter.Stop()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	first, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, _ := limiter.Allow(context.Background(), "10.0.0.1")
	assert.True(t, second.Allowed)

	third, _ := limiter.Allow(context.Background(), "10.0.0.1")
	assert.False(t, third.Allowed)

	other, _ := limiter.Allow(context.Background(), "10.0.0.2")
	assert.True(t, other.Allowed)

	now = now.Add(time.Minute + time.Second)
	later, _ := limiter.Allow(context.Background(), "10.0.0.1")
	assert.True(t, later.Allowed)
}

type failingRateLimitStore struct{}

func (failingRateLimitStore) Allow(context.Context, string) (RateLimitResult, error) {
	return RateLimitResult{}, errors.New("redis: connection refused")
}
func (failingRateLimitStore) Limit() int { return 1 }
func (failingRateLimitStore) Stop()      {}

func TestRateLimit_Middleware(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Minute)
	defer limiter.Stop()

	handler := RateLimit(limiter, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	req.RemoteAddr = "192.0.2.10:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(HeaderRateLimit))
	assert.Equal(t, "0", rec.Header().Get(HeaderRateLimitRemaining))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_StoreFailureAllows(t *testing.T) {
	handler := RateLimit(failingRateLimitStore{}, logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{"forwarded for chain", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.9:1", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.7"}, "10.0.0.9:1", "203.0.113.7"},
		{"remote addr", nil, "198.51.100.2:4321", "198.51.100.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(req))
		})
	}
}
