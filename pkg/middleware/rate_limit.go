package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "tranquilstay/pkg/errors"
	httputil "tranquilstay/pkg/http"
	"tranquilstay/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	HeaderRateLimit          = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"

	rateLimitKeyPrefix = "ratelimit"
)

type RateLimitResult struct {
	Allowed   bool
	Remaining int
}

// RateLimitStore counts requests per key within a window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
	Limit() int
	Stop()
}

// InMemoryRateLimiter keeps a sliding window of request timestamps per key.
// Counts are per process; use RedisRateLimiter when running several replicas.
type InMemoryRateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	limiter := &InMemoryRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *InMemoryRateLimiter) Limit() int {
	return rl.limit
}

func (rl *InMemoryRateLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[key][:0]
	for _, ts := range rl.requests[key] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return RateLimitResult{Allowed: false, Remaining: 0}, nil
	}

	valid = append(valid, now)
	rl.requests[key] = valid
	return RateLimitResult{Allowed: true, Remaining: rl.limit - len(valid)}, nil
}

func (rl *InMemoryRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := rl.now()
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || now.Sub(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *InMemoryRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// RedisRateLimiter is a fixed-window counter shared by every replica.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (rl *RedisRateLimiter) Limit() int {
	return rl.limit
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	bucket := rl.now().UnixNano() / int64(rl.window)
	redisKey := fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, key, bucket)

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return RateLimitResult{}, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	if count > int64(rl.limit) {
		return RateLimitResult{Allowed: false, Remaining: 0}, nil
	}
	return RateLimitResult{Allowed: true, Remaining: rl.limit - int(count)}, nil
}

// Stop is a no-op; the Redis client is closed with the other connections.
func (rl *RedisRateLimiter) Stop() {}

// RateLimit throttles requests per client IP. A failing store lets the request through.
func RateLimit(store RateLimitStore, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ClientIP(r)

			result, err := store.Allow(r.Context(), clientIP)
			if err != nil {
				log.Warn("Rate limit store unavailable, allowing request",
					"request_id", RequestIDFromContext(r.Context()),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderRateLimit, strconv.Itoa(store.Limit()))
			w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))

			if !result.Allowed {
				log.Warn("Rate limit exceeded",
					"request_id", RequestIDFromContext(r.Context()),
					"client_ip", clientIP,
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.RateLimited("Rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
