package validator

import (
	"time"

	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/sanitizer"
	"tranquilstay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validation.New(log)

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := validation.Struct(v.validate, booking); err != nil {
		return err
	}

	return validateStayRange(booking.CheckIn, booking.CheckOut)
}

// ValidateUpdate checks the update on its own, then the stay it would produce when applied to current.
func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate, current *model.Booking) error {
	if err := validation.Struct(v.validate, update); err != nil {
		return err
	}

	checkIn, checkOut := current.CheckIn, current.CheckOut
	if update.CheckIn != nil {
		checkIn = *update.CheckIn
	}
	if update.CheckOut != nil {
		checkOut = *update.CheckOut
	}

	return validateStayRange(checkIn, checkOut)
}

func validateStayRange(checkIn, checkOut string) error {
	in, errIn := time.Parse(sanitizer.DateLayout, checkIn)
	out, errOut := time.Parse(sanitizer.DateLayout, checkOut)
	if errIn != nil || errOut != nil {
		// Stored documents may predate date validation; field rules already cover new input.
		return nil
	}

	if !out.After(in) {
		return validation.ValidationErrors{
			validation.ValidationError{
				Field:   "checkOut",
				Message: "checkOut must be after checkIn",
			},
		}
	}
	return nil
}
