package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/repositories"
	"github.com/meric/studentbase/internal/config"
	"github.com/meric/studentbase/internal/pkg/apperrors"
	"github.com/meric/studentbase/internal/pkg/auth"
)

// CreateDefaultData creates the default admin user if one is configured and
// not already present. Registration never produces an admin, so without
// seeding there would be no way to perform admin-only operations.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Info().Msg("Admin seeding not configured, skipping")
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)
	passwordService := auth.NewPasswordService()

	username := cfg.Seed.AdminUsername
	if username == "" {
		username = "admin"
	}

	hash, err := passwordService.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to hash seed admin password")
		return err
	}

	admin := &models.User{
		Username:     username,
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", cfg.Seed.AdminEmail).Msg("Default admin already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Failed to create default admin")
		return err
	}

	lgr.Info().Int64("userID", admin.ID).Msg("Default admin created")
	return nil
}
