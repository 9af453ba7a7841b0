package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tranquilstay/pkg/auth"
	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"
	"tranquilstay/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoomService struct {
	rooms map[string]*model.Room
}

func (s *stubRoomService) GetAll(ctx context.Context) ([]*model.Room, error) {
	rooms := []*model.Room{}
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *stubRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("Room", id)
	}
	return room, nil
}

func setup(t *testing.T) (*httprouter.Router, string) {
	t.Helper()
	tokens := auth.NewTokenService("room-handler-secret-123", time.Hour)
	token, err := tokens.Issue("guest@example.com", "Guest")
	require.NoError(t, err)

	svc := &stubRoomService{rooms: map[string]*model.Room{
		"r1": {ID: "r1", Title: "Sea view", Availability: true},
	}}
	h := NewRoomHandler(svc, middleware.NewAuthGuard(tokens, logger.Discard()), logger.Discard())

	router := httprouter.New()
	h.RegisterRoutes(router)
	return router, token
}

func TestGetAll_IsPublic(t *testing.T) {
	router, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []model.Room `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestGetByID_RequiresSession(t *testing.T) {
	router, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms/r1", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetByID_WithSession(t *testing.T) {
	router, token := setup(t)

	for path, want := range map[string]int{"/rooms/r1": http.StatusOK, "/rooms/r9": http.StatusNotFound} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, path)
	}
}
