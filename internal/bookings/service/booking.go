package service

import (
	"context"
	"errors"
	"strings"

	bookingserrors "tranquilstay/internal/bookings/errors"
	"tranquilstay/internal/bookings/repository"
	"tranquilstay/internal/bookings/validator"
	"tranquilstay/internal/events"
	roomserrors "tranquilstay/internal/rooms/errors"
	roomsrepository "tranquilstay/internal/rooms/repository"
	"tranquilstay/pkg/auth"
	"tranquilstay/pkg/config"
	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/sanitizer"
	"tranquilstay/pkg/validation"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetAll(ctx context.Context) ([]*model.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	GetByEmailAndID(ctx context.Context, email string, id string) (*model.Booking, error)
	Update(ctx context.Context, requester string, id string, updates *model.BookingUpdate) (*model.UpdateResult, error)
	Delete(ctx context.Context, requester string, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	rooms     roomsrepository.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms roomsrepository.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		rooms:     rooms,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create reserves the room and inserts the booking in one transaction.
// A room that is already booked fails with Conflict and nothing is written.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.ResolveRoomID()
	s.sanitize(booking)
	if err := s.validator.Validate(booking); err != nil {
		return validation.ToAppError(err)
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.rooms.Reserve(sessCtx, booking.RoomID); err != nil {
			return s.reserveError(booking.RoomID, err)
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeConflict) || apperrors.HasCode(err, apperrors.CodeNotFound) {
			s.cfg.Log.Warn("Booking rejected", "room_id", booking.RoomID, "email", booking.Email, "error", err)
			return err
		}
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
	)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.Event{Type: events.BookingCreated, Key: booking.ID, Payload: booking})
	return nil
}

func (s *bookingService) reserveError(roomID string, err error) error {
	switch {
	case errors.Is(err, roomserrors.ErrUnavailable):
		return apperrors.Conflict("Room is already booked").WithDetails(map[string]any{"roomId": roomID})
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Room", roomID)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID format")
	default:
		return apperrors.Internal("Failed to reserve room", err)
	}
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByEmail(ctx context.Context, email string) ([]*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by email", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByEmailAndID(ctx context.Context, email string, id string) (*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(id) == "" {
		return nil, apperrors.InvalidInput("Email and booking ID are required")
	}

	booking, err := s.repo.FindByIDAndEmail(ctx, id, email)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return booking, nil
}

// Update changes stay dates and occupants of a booking owned by requester. Room availability is untouched.
func (s *bookingService) Update(ctx context.Context, requester string, id string, updates *model.BookingUpdate) (*model.UpdateResult, error) {
	if updates == nil || updates.IsEmpty() {
		return nil, apperrors.InvalidInput("No fields to update")
	}
	s.sanitizeUpdate(updates)

	current, err := s.ownedBooking(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates, current); err != nil {
		return nil, validation.ToAppError(err)
	}

	result, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "modified", result.ModifiedCount)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.Event{Type: events.BookingUpdated, Key: id, Payload: updates})

	return &model.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

// Delete removes a booking owned by requester and frees its room in the same transaction.
func (s *bookingService) Delete(ctx context.Context, requester string, id string) error {
	booking, err := s.ownedBooking(ctx, requester, id)
	if err != nil {
		return err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			return s.lookupError(id, err)
		}
		if err := s.rooms.Release(sessCtx, booking.RoomID); err != nil {
			// A booking whose room was removed can still be cancelled.
			if errors.Is(err, roomserrors.ErrNotFound) || errors.Is(err, roomserrors.ErrInvalidID) {
				s.cfg.Log.Warn("Booked room not found, nothing to release", "id", id, "room_id", booking.RoomID)
				return nil
			}
			return apperrors.Internal("Failed to release room", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.AsAppError(err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id, "room_id", booking.RoomID)
	events.Emit(ctx, s.publisher, s.cfg.Log, events.Event{Type: events.BookingDeleted, Key: id, Payload: booking})
	return nil
}

func (s *bookingService) ownedBooking(ctx context.Context, requester string, id string) (*model.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	if !auth.SameIdentity(booking.Email, requester) {
		return nil, apperrors.Forbidden("forbidden access")
	}
	return booking, nil
}

func (s *bookingService) lookupError(id string, err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error("Booking store failure", "id", id, "error", err)
	return apperrors.Internal("Failed to access booking", err)
}

func (s *bookingService) sanitize(booking *model.Booking) {
	booking.Email = sanitizer.NormalizeEmail(booking.Email)
	booking.RoomID = strings.TrimSpace(booking.RoomID)
	booking.CheckIn = sanitizer.NormalizeDate(booking.CheckIn)
	booking.CheckOut = sanitizer.NormalizeDate(booking.CheckOut)
}

func (s *bookingService) sanitizeUpdate(updates *model.BookingUpdate) {
	if updates.CheckIn != nil {
		normalized := sanitizer.NormalizeDate(*updates.CheckIn)
		updates.CheckIn = &normalized
	}
	if updates.CheckOut != nil {
		normalized := sanitizer.NormalizeDate(*updates.CheckOut)
		updates.CheckOut = &normalized
	}
}
