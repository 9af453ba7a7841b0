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
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/middleware"
	"tranquilstay/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingB1 = "65a1f0c2e4b0a1b2c3d4e5b1"

type stubFeedbackService struct {
	created []*model.Feedback
}

func (s *stubFeedbackService) Create(ctx context.Context, feedback *model.Feedback) error {
	feedback.ID = "65a1f0c2e4b0a1b2c3d4e5f9"
	s.created = append(s.created, feedback)
	return nil
}

func (s *stubFeedbackService) GetAll(ctx context.Context) ([]*model.Feedback, error) {
	return s.created, nil
}

func (s *stubFeedbackService) GetByBookingID(ctx context.Context, bookingID string) ([]*model.Feedback, error) {
	out := []*model.Feedback{}
	for _, f := range s.created {
		if f.BookingID == bookingID {
			out = append(out, f)
		}
	}
	return out, nil
}

func setup(t *testing.T) (*httprouter.Router, *stubFeedbackService, string) {
	t.Helper()
	tokens := auth.NewTokenService("feedback-handler-secret-123", time.Hour)
	token, err := tokens.Issue("guest@example.com", "Guest")
	require.NoError(t, err)

	svc := &stubFeedbackService{}
	h := NewFeedbackHandler(svc, middleware.NewAuthGuard(tokens, logger.Discard()), logger.Discard())

	router := httprouter.New()
	h.RegisterRoutes(router)
	return router, svc, token
}

func TestCreate_ReturnsInsertedID(t *testing.T) {
	router, svc, _ := setup(t)

	body := `{"bookingId":"` + bookingB1 + `","email":"guest@example.com","rating":5,"comment":"Lovely","photos":["a.png"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"insertedId":"65a1f0c2e4b0a1b2c3d4e5f9"}}`, rec.Body.String())

	require.Len(t, svc.created, 1)
	assert.Equal(t, 5, svc.created[0].Rating)
	assert.Contains(t, svc.created[0].Extra, "photos")
}

func TestCreate_RejectsMalformedBody(t *testing.T) {
	router, svc, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(`{"rating":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.created)
}

func TestGetAll_IsPublic(t *testing.T) {
	router, _, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedback", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetByBookingID_RequiresSession(t *testing.T) {
	router, _, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedback/"+bookingB1, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetByBookingID_WithSession(t *testing.T) {
	router, svc, token := setup(t)
	require.NoError(t, svc.Create(context.Background(), &model.Feedback{BookingID: bookingB1, Rating: 4, Comment: "Good"}))

	req := httptest.NewRequest(http.MethodGet, "/feedback/"+bookingB1, nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []model.Feedback `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Good", body.Data[0].Comment)
}
