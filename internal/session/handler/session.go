package handler

import (
	"net/http"

	"tranquilstay/pkg/auth"
	apperrors "tranquilstay/pkg/errors"
	httputil "tranquilstay/pkg/http"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/sanitizer"
	"tranquilstay/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
)

type SessionRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=100"`
}

type SessionResponse struct {
	Success bool `json:"success"`
}

type SessionHandler struct {
	tokens     *auth.TokenService
	validate   *validator.Validate
	production bool
	log        *logger.Logger
}

func NewSessionHandler(tokens *auth.TokenService, production bool, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		tokens:     tokens,
		validate:   validation.New(log),
		production: production,
		log:        log,
	}
}

// Issue signs a session token for the given identity and sets it as the session cookie.
func (h *SessionHandler) Issue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req SessionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Issue", err)
		return
	}

	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Name = sanitizer.NormalizeName(req.Name)
	if err := validation.Struct(h.validate, &req); err != nil {
		h.writeError(w, "Issue", validation.ToAppError(err))
		return
	}

	token, err := h.tokens.Issue(req.Email, req.Name)
	if err != nil {
		h.log.Error("Failed to sign session token", "error", err)
		h.writeError(w, "Issue", apperrors.Internal("Failed to issue session", err))
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.tokens.TTL(), h.production))
	h.log.Info("Session issued", "email", req.Email)

	if err := httputil.WriteJSON(w, http.StatusOK, SessionResponse{Success: true}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Issue", "operation", "WriteJSON", "error", err)
	}
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.SetCookie(w, auth.ClearedCookie(h.production))

	if err := httputil.WriteJSON(w, http.StatusOK, SessionResponse{Success: true}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Logout", "operation", "WriteJSON", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/jwt", h.Issue)
	router.GET("/logout", h.Logout)
}
