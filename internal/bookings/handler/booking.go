package handler

import (
	"net/http"

	"tranquilstay/internal/bookings/service"
	"tranquilstay/pkg/auth"
	httputil "tranquilstay/pkg/http"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"
	"tranquilstay/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	guard   *middleware.AuthGuard
	log     *logger.Logger
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

func NewBookingHandler(service service.BookingService, guard *middleware.AuthGuard, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, model.InsertResult{InsertedID: booking.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.GetByEmail(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "GetByEmail", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByEmailAndID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByEmailAndID(r.Context(), ps.ByName("email"), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByEmailAndID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmailAndID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.BookingUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	result, err := h.service.Update(r.Context(), requester(r), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), requester(r), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, DeleteResult{DeletedCount: 1}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// requester is the authenticated email. Routes using it are always behind Protect.
func requester(r *http.Request) string {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return ""
	}
	return claims.Email
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	sameUser := middleware.MatchPathIdentity("email")

	router.GET("/booking", h.GetAll)
	router.POST("/booking", h.Create)
	router.GET("/booking/:email", h.guard.Protect(h.GetByEmail, sameUser))
	router.GET("/booking/:email/:id", h.guard.Protect(h.GetByEmailAndID, sameUser))
	router.PATCH("/booking/:id", h.guard.Protect(h.Update))
	router.DELETE("/booking/:id", h.guard.Protect(h.Delete))
}
