package validator

import (
	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type UserValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewUserValidator(log *logger.Logger) *UserValidator {
	return &UserValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *UserValidator) Validate(user *model.User) error {
	return validation.Struct(v.validate, user)
}

func (v *UserValidator) ValidateLogin(login *model.UserLogin) error {
	return validation.Struct(v.validate, login)
}
