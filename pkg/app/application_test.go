package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sessionhandler "tranquilstay/internal/session/handler"
	"tranquilstay/pkg/auth"
	"tranquilstay/pkg/config"
	"tranquilstay/pkg/contracts"
	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type okPinger struct{}

func (okPinger) Ping(context.Context, *readpref.ReadPref) error { return nil }

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/echo", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":"ok"}`))
	})
	router.GET("/panic", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		panic("boom")
	})
}

func newTestApp(t *testing.T, rateLimit int) http.Handler {
	t.Helper()
	return newTestAppWith(t, rateLimit, echoHandler{})
}

func newTestAppWith(t *testing.T, rateLimit int, handlers ...contracts.Handler) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Port:               "0",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		RateLimitRequests:  rateLimit,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1024,
		Log:                logger.Discard(),
	}
	a := NewApplication(cfg)
	a.SetApp(okPinger{}, handlers...)
	t.Cleanup(a.stopWorkers)
	return a.Handler()
}

func TestRootIsLiveness(t *testing.T) {
	h := newTestApp(t, 10)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tranquil stay server is running", rec.Body.String())
}

func TestRootAnswersCORS(t *testing.T) {
	h := newTestApp(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	h := newTestApp(t, 10)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeNotFound)
}

func TestMiddlewareStack(t *testing.T) {
	h := newTestApp(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestMiddlewareStack_RejectsWrongContentType(t *testing.T) {
	h := newTestApp(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`x`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestMiddlewareStack_RecoversPanics(t *testing.T) {
	h := newTestApp(t, 10)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddlewareStack_RateLimits(t *testing.T) {
	h := newTestApp(t, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestIdempotencyKeyDoesNotReplaySessions(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	h := newTestAppWith(t, 100, sessionhandler.NewSessionHandler(tokens, false, logger.Discard()))

	login := func(email, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"`+email+`"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "login-1")
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	sessionEmail := func(rec *httptest.ResponseRecorder) string {
		for _, c := range rec.Result().Cookies() {
			if c.Name == auth.CookieName {
				claims, err := tokens.Verify(c.Value)
				require.NoError(t, err)
				return claims.Email
			}
		}
		t.Fatal("no session cookie")
		return ""
	}

	victim := login("victim@x.com", "198.51.100.1:5000")
	require.Equal(t, http.StatusOK, victim.Code)
	assert.Equal(t, "victim@x.com", sessionEmail(victim))

	attacker := login("attacker@x.com", "198.51.100.2:5000")
	require.Equal(t, http.StatusOK, attacker.Code)
	assert.Empty(t, attacker.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, "attacker@x.com", sessionEmail(attacker))

	retry := login("victim@x.com", "198.51.100.1:5000")
	require.Equal(t, http.StatusOK, retry.Code)
	assert.Empty(t, retry.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, "victim@x.com", sessionEmail(retry))
}

func TestIdempotencyKeyIsScopedToCaller(t *testing.T) {
	h := newTestApp(t, 100)

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "k1")
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusCreated, send("198.51.100.1:5000").Code)
	assert.Equal(t, "true", send("198.51.100.1:5000").Header().Get("Idempotent-Replayed"))
	assert.Empty(t, send("198.51.100.2:5000").Header().Get("Idempotent-Replayed"))
}
