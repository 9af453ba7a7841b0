package handler

import (
	"net/http"

	"tranquilstay/internal/feedback/service"
	httputil "tranquilstay/pkg/http"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"
	"tranquilstay/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type FeedbackHandler struct {
	service service.FeedbackService
	guard   *middleware.AuthGuard
	log     *logger.Logger
}

func NewFeedbackHandler(service service.FeedbackService, guard *middleware.AuthGuard, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var feedback model.Feedback
	if err := httputil.DecodeJSON(r, &feedback); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &feedback); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, model.InsertResult{InsertedID: feedback.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *FeedbackHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	feedback, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, feedback); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FeedbackHandler) GetByBookingID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	feedback, err := h.service.GetByBookingID(r.Context(), ps.ByName("bookingId"))
	if err != nil {
		h.writeError(w, "GetByBookingID", err)
		return
	}

	if err := httputil.WriteSuccess(w, feedback); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByBookingID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FeedbackHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *FeedbackHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/feedback", h.GetAll)
	router.POST("/feedback", h.Create)
	router.GET("/feedback/:bookingId", h.guard.Protect(h.GetByBookingID))
}
