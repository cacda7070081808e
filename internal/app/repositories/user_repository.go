package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/pkg/apperrors"
	"github.com/meric/studentbase/internal/pkg/dberrors"
	"github.com/meric/studentbase/internal/pkg/logger"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a new user and returns its generated ID. The email is
// normalized to lowercase so uniqueness is case-insensitive. A unique
// violation surfaces as apperrors.ErrEmailAlreadyExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "password_hash", "role").
		Values(user.Username, email, user.PasswordHash, string(user.Role)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", email).Msg("Error creating user")
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	user.Email = email
	return id, nil
}

// GetUserByEmail retrieves a user by email (case-insensitive via the same
// normalization applied on insert).
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "email", "password_hash", "role").
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	return r.scanUser(ctx, sql, args)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "email", "password_hash", "role").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by id query: %w", err)
	}

	return r.scanUser(ctx, sql, args)
}

func (r *UserRepository) scanUser(ctx context.Context, sql string, args []interface{}) (*models.User, error) {
	var user models.User
	var role string
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// Unrecognized stored roles degrade to the default role.
	user.Role = models.ParseRole(role)
	return &user, nil
}

// CountByRole counts users holding the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"role": string(role)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("role", string(role)).Msg("Error counting users by role")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
