package handler

import (
	"net/http"

	"tranquilstay/internal/rooms/service"
	httputil "tranquilstay/pkg/http"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	guard   *middleware.AuthGuard
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, guard *middleware.AuthGuard, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *RoomHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/rooms", h.GetAll)
	router.GET("/rooms/:id", h.guard.Protect(h.GetByID))
}
