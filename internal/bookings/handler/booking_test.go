package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

type stubBookingService struct {
	created   *model.Booking
	requester string
	updates   *model.BookingUpdate
	createErr error
}

func (s *stubBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	booking.ResolveRoomID()
	booking.ID = "65a1f0c2e4b0a1b2c3d4e5b1"
	s.created = booking
	return nil
}

func (s *stubBookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	return []*model.Booking{{ID: "b1"}}, nil
}

func (s *stubBookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	return []*model.Booking{{ID: "b1", Email: email}}, nil
}

func (s *stubBookingService) GetByEmailAndID(ctx context.Context, email string, id string) (*model.Booking, error) {
	return &model.Booking{ID: id, Email: email}, nil
}

func (s *stubBookingService) Update(ctx context.Context, requester string, id string, updates *model.BookingUpdate) (*model.UpdateResult, error) {
	s.requester = requester
	s.updates = updates
	return &model.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubBookingService) Delete(ctx context.Context, requester string, id string) error {
	s.requester = requester
	return nil
}

func setup(t *testing.T) (*httprouter.Router, *stubBookingService, string) {
	t.Helper()
	tokens := auth.NewTokenService("booking-handler-secret-1", time.Hour)
	token, err := tokens.Issue("guest@example.com", "Guest")
	require.NoError(t, err)

	svc := &stubBookingService{}
	h := NewBookingHandler(svc, middleware.NewAuthGuard(tokens, logger.Discard()), logger.Discard())
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router, svc, token
}

func do(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_AcceptsLegacyRoomField(t *testing.T) {
	router, svc, _ := setup(t)

	rec := do(router, http.MethodPost, "/booking",
		`{"bookingId":"65a1f0c2e4b0a1b2c3d4e5f1","email":"a@x.com","checkIn":"2024-01-01","checkOut":"2024-01-03","adults":2}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"insertedId":"65a1f0c2e4b0a1b2c3d4e5b1"}}`, rec.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f1", svc.created.RoomID)
}

func TestCreate_Errors(t *testing.T) {
	router, svc, _ := setup(t)

	rec := do(router, http.MethodPost, "/booking", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.createErr = apperrors.Conflict("Room is already booked")
	rec = do(router, http.MethodPost, "/booking", `{"roomId":"r"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeConflict, body.Code)
}

func TestEmailRoutes_RequireMatchingIdentity(t *testing.T) {
	router, _, token := setup(t)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no session", "/booking/guest@example.com", "", http.StatusUnauthorized},
		{"own bookings", "/booking/guest@example.com", token, http.StatusOK},
		{"other user's bookings", "/booking/other@example.com", token, http.StatusForbidden},
		{"own booking", "/booking/guest@example.com/b1", token, http.StatusOK},
		{"other user's booking", "/booking/other@example.com/b1", token, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodGet, tt.path, "", tt.token)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUpdate_PassesRequesterAndLegacyFields(t *testing.T) {
	router, svc, token := setup(t)

	rec := do(router, http.MethodPatch, "/booking/b1", `{"newCheckIn":"2024-02-01","newAdults":3}`, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"matchedCount":1,"modifiedCount":1}}`, rec.Body.String())
	assert.Equal(t, "guest@example.com", svc.requester)
	require.NotNil(t, svc.updates.CheckIn)
	assert.Equal(t, "2024-02-01", *svc.updates.CheckIn)
	assert.Equal(t, 3, *svc.updates.Adults)
}

func TestDelete_RequiresSession(t *testing.T) {
	router, svc, token := setup(t)

	rec := do(router, http.MethodDelete, "/booking/b1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(router, http.MethodDelete, "/booking/b1", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest@example.com", svc.requester)
}
