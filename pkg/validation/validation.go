package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// New returns a validator that reports JSON field names and knows the stay_date rule.
func New(log *logger.Logger) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("stay_date", validateStayDate); err != nil {
		log.Fatal("Failed to register 'stay_date' validator", "error", err)
	}

	return v
}

// validateStayDate accepts calendar dates in YYYY-MM-DD form.
func validateStayDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(sanitizer.DateLayout, fl.Field().String())
	return err == nil
}

// Struct validates s and returns ValidationErrors for rule violations.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "stay_date":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

// ToAppError maps validation failures to a 422 carrying every field error. Other errors pass through.
func ToAppError(err error) error {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.Validation("Validation failed", map[string]any{
			"errors": validationErrs,
		})
	}
	var single ValidationError
	if errors.As(err, &single) {
		return apperrors.Validation("Validation failed", map[string]any{
			"errors": ValidationErrors{single},
		})
	}
	return err
}
