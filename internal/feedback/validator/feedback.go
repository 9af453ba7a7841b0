package validator

import (
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type FeedbackValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFeedbackValidator(log *logger.Logger) *FeedbackValidator {
	return &FeedbackValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *FeedbackValidator) Validate(feedback *model.Feedback) error {
	return validation.Struct(v.validate, feedback)
}
