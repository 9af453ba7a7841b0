package middleware

import (
	"errors"
	"net/http"

	"tranquilstay/pkg/auth"
	apperrors "tranquilstay/pkg/errors"
	httputil "tranquilstay/pkg/http"
	"tranquilstay/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// TokenVerifier decodes a session token into claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Policy decides whether authenticated claims may access a route. A non-nil error rejects the request.
type Policy func(r *http.Request, ps httprouter.Params, claims *auth.Claims) error

type AuthGuard struct {
	verifier TokenVerifier
	log      *logger.Logger
}

func NewAuthGuard(verifier TokenVerifier, log *logger.Logger) *AuthGuard {
	return &AuthGuard{verifier: verifier, log: log}
}

// Protect requires a valid session cookie, applies policies in order and stores the claims on the request context.
func (g *AuthGuard) Protect(next httprouter.Handle, policies ...Policy) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := g.authenticate(r)
		if err != nil {
			g.reject(w, r, err)
			return
		}

		for _, policy := range policies {
			if err := policy(r, ps, claims); err != nil {
				g.reject(w, r, err)
				return
			}
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)), ps)
	}
}

func (g *AuthGuard) authenticate(r *http.Request) (*auth.Claims, error) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperrors.Unauthorized("unauthorized access")
	}

	claims, err := g.verifier.Verify(cookie.Value)
	if err != nil {
		message := "unauthorized access"
		if errors.Is(err, auth.ErrExpiredToken) {
			message = "session has expired"
		}
		return nil, apperrors.Wrap(err, apperrors.CodeUnauthorized, message, http.StatusUnauthorized)
	}
	return claims, nil
}

func (g *AuthGuard) reject(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.AsAppError(err)
	g.log.Warn("Request rejected by auth guard",
		"request_id", RequestIDFromContext(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"code", appErr.Code,
		"error", err,
	)
	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		g.log.Error("Failed to write auth response", "error", writeErr)
	}
}

// MatchPathIdentity requires the route parameter param to name the authenticated user.
func MatchPathIdentity(param string) Policy {
	return func(_ *http.Request, ps httprouter.Params, claims *auth.Claims) error {
		if !auth.SameIdentity(ps.ByName(param), claims.Email) {
			return apperrors.Forbidden("forbidden access")
		}
		return nil
	}
}
