package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tranquilstay/pkg/auth"
	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardSecret = "guard-test-secret-0123456789"

func newGuardRouter(t *testing.T) (*httprouter.Router, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService(guardSecret, time.Hour)
	guard := NewAuthGuard(tokens, logger.Discard())

	echo := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(claims.Email))
	}

	router := httprouter.New()
	router.GET("/rooms/:id", guard.Protect(echo))
	router.GET("/booking/:email", guard.Protect(echo, MatchPathIdentity("email")))
	return router, tokens
}

func serveWithCookie(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestAuthGuard_MissingCookie(t *testing.T) {
	router, _ := newGuardRouter(t)

	rec := serveWithCookie(router, "/rooms/abc", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.CodeUnauthorized, errorCode(t, rec))
}

func TestAuthGuard_InvalidToken(t *testing.T) {
	router, _ := newGuardRouter(t)

	rec := serveWithCookie(router, "/rooms/abc", "garbage")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGuard_ForeignSecret(t *testing.T) {
	router, _ := newGuardRouter(t)
	token, err := auth.NewTokenService("some-other-secret-entirely", time.Hour).Issue("guest@example.com", "")
	require.NoError(t, err)

	rec := serveWithCookie(router, "/rooms/abc", token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGuard_ValidToken(t *testing.T) {
	router, tokens := newGuardRouter(t)
	token, err := tokens.Issue("guest@example.com", "Guest")
	require.NoError(t, err)

	rec := serveWithCookie(router, "/rooms/abc", token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest@example.com", rec.Body.String())
}

func TestAuthGuard_PathIdentity(t *testing.T) {
	router, tokens := newGuardRouter(t)
	token, err := tokens.Issue("guest@example.com", "")
	require.NoError(t, err)

	tests := []struct {
		name         string
		path         string
		expectedCode int
	}{
		{"same email", "/booking/guest@example.com", http.StatusOK},
		{"same email different case", "/booking/Guest@Example.com", http.StatusOK},
		{"other user", "/booking/other@example.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithCookie(router, tt.path, token)
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusForbidden {
				assert.Equal(t, apperrors.CodeForbidden, errorCode(t, rec))
			}
		})
	}
}
