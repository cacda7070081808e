package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/repositories"
	"github.com/meric/studentbase/internal/pkg/apperrors"
	"github.com/meric/studentbase/internal/pkg/auth"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo        repositories.IUserRepository
	jwtService      *auth.JWTService
	passwordService *auth.PasswordService
	logger          zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	passwordService *auth.PasswordService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtService:      jwtService,
		passwordService: passwordService,
		logger:          logger,
	}
}

// Register creates a new user with the given role. All fields are trimmed;
// empty username, email or password fail validation before any store call.
// A duplicate email surfaces as apperrors.ErrEmailAlreadyExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, apperrors.NewValidationError("username", "username is required")
	}
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password", "password is required")
	}

	hash, err := s.passwordService.HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Profile resolves the authenticated user's stored identity. Going through
// the store rather than echoing token claims means a token for a since-
// deleted user stops resolving immediately.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, expiresIn int, user *models.User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return "", 0, nil, apperrors.NewValidationError("email", "email and password are required")
	}

	user, err = s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", 0, nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("Failed to look up user during login")
		return "", 0, nil, err
	}

	if !s.passwordService.CheckPassword(user.PasswordHash, password) {
		return "", 0, nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err = s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token")
		return "", 0, nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return token, expiresIn, user, nil
}
