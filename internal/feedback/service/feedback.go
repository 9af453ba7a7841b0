package service

import (
	"context"
	"strings"

	"tranquilstay/internal/events"
	"tranquilstay/internal/feedback/repository"
	"tranquilstay/internal/feedback/validator"
	"tranquilstay/pkg/config"
	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/sanitizer"
	"tranquilstay/pkg/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackService interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetAll(ctx context.Context) ([]*model.Feedback, error)
	GetByBookingID(ctx context.Context, bookingID string) ([]*model.Feedback, error)
}

type feedbackService struct {
	repo      repository.FeedbackRepository
	validator *validator.FeedbackValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewFeedbackService(
	repo repository.FeedbackRepository,
	validator *validator.FeedbackValidator,
	publisher events.Publisher,
	cfg *config.Config,
) FeedbackService {
	return &feedbackService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *feedbackService) Create(ctx context.Context, feedback *model.Feedback) error {
	s.sanitize(feedback)
	if err := s.validator.Validate(feedback); err != nil {
		return validation.ToAppError(err)
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		s.cfg.Log.Error("Failed to create feedback", "booking_id", feedback.BookingID, "error", err)
		return apperrors.Internal("Failed to create feedback", err)
	}

	s.cfg.Log.Info("Feedback created successfully", "id", feedback.ID, "booking_id", feedback.BookingID, "rating", feedback.Rating)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.Event{Type: events.FeedbackCreated, Key: feedback.BookingID, Payload: feedback})
	return nil
}

func (s *feedbackService) GetAll(ctx context.Context) ([]*model.Feedback, error) {
	feedback, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list feedback", "error", err)
		return nil, apperrors.Internal("Failed to retrieve feedback", err)
	}
	return feedback, nil
}

// GetByBookingID is not restricted to the booking owner; feedback is public through GetAll anyway.
func (s *feedbackService) GetByBookingID(ctx context.Context, bookingID string) ([]*model.Feedback, error) {
	bookingID = strings.TrimSpace(bookingID)
	if !primitive.IsValidObjectID(bookingID) {
		return nil, apperrors.InvalidInput("Invalid booking ID format")
	}

	feedback, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		s.cfg.Log.Error("Failed to list feedback by booking", "booking_id", bookingID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve feedback", err)
	}
	return feedback, nil
}

func (s *feedbackService) sanitize(feedback *model.Feedback) {
	feedback.BookingID = strings.TrimSpace(feedback.BookingID)
	feedback.Email = sanitizer.NormalizeEmail(feedback.Email)
	feedback.Name = sanitizer.NormalizeName(feedback.Name)
	feedback.Comment = sanitizer.NormalizeComment(feedback.Comment)
}
