package service

import (
	"context"

	"tranquilstay/internal/users/repository"
	"tranquilstay/internal/users/validator"
	"tranquilstay/pkg/config"
	apperrors "tranquilstay/pkg/errors"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/sanitizer"
	"tranquilstay/pkg/validation"
)

type UserService interface {
	GetAll(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, user *model.User) error
	RecordLogin(ctx context.Context, login *model.UserLogin) (*model.UpdateResult, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.Name = sanitizer.NormalizeName(user.Name)
	user.PhotoURL = sanitizer.NormalizeURL(user.PhotoURL)

	if err := s.validator.Validate(user); err != nil {
		return validation.ToAppError(err)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.cfg.Log.Error("Failed to create user", "error", err)
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID)
	return nil
}

// RecordLogin stores the login time. An unknown email is not an error; the result reports zero matches.
func (s *userService) RecordLogin(ctx context.Context, login *model.UserLogin) (*model.UpdateResult, error) {
	login.Email = sanitizer.NormalizeEmail(login.Email)
	if err := s.validator.ValidateLogin(login); err != nil {
		return nil, validation.ToAppError(err)
	}

	result, err := s.repo.UpdateLastLogin(ctx, login.Email, login.LastLoginAt)
	if err != nil {
		s.cfg.Log.Error("Failed to record login", "error", err)
		return nil, apperrors.Internal("Failed to update user", err)
	}

	if result.MatchedCount == 0 {
		s.cfg.Log.Debug("Login recorded for unknown user")
	}
	return &model.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}
