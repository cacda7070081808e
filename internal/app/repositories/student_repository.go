package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/pkg/apperrors"
	"github.com/meric/studentbase/internal/pkg/dberrors"
	"github.com/meric/studentbase/internal/pkg/helpers"
	"github.com/meric/studentbase/internal/pkg/logger"
)

// IStudentRepository defines the interface for student record operations.
// Each method executes a single statement, so every call is one atomic unit
// of work.
type IStudentRepository interface {
	ListAll(ctx context.Context) ([]models.Student, error)
	ListByCreator(ctx context.Context, userID int64) ([]models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (int64, error)
	Update(ctx context.Context, id int64, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
	CountByCreator(ctx context.Context, userID int64) (int64, error)
}

var studentColumns = []string{
	"id", "name", "subject", "email", "rollno", "phone",
	"unit_test1_marks", "unit_test2_marks", "created_by",
}

// StudentRepository handles student record database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListAll retrieves every student record, newest first.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id DESC")
	return r.queryStudents(ctx, query)
}

// ListByCreator retrieves the records created by the given user, newest first.
func (r *StudentRepository) ListByCreator(ctx context.Context, userID int64) ([]models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"created_by": userID}).
		OrderBy("id DESC")
	return r.queryStudents(ctx, query)
}

func (r *StudentRepository) queryStudents(ctx context.Context, query squirrel.SelectBuilder) ([]models.Student, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading student rows: %w", err)
	}

	return students, nil
}

// GetByID retrieves a single student record.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	row := r.db.QueryRow(ctx, sql, args...)
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error getting student by ID")
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// Create inserts a new student record attributed to student.CreatedBy and
// returns the generated ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "subject", "email", "rollno", "phone",
			"unit_test1_marks", "unit_test2_marks", "created_by").
		Values(student.Name, student.Subject, student.Email, student.RollNo, student.Phone,
			helpers.NullIntFromPtr(student.UnitTest1Marks),
			helpers.NullIntFromPtr(student.UnitTest2Marks),
			student.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		// created_by references users(id); a dangling creator means the
		// user was deleted after the token was issued.
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("createdBy", student.CreatedBy).Msg("Error creating student")
		return 0, fmt.Errorf("failed to create student: %w", err)
	}

	student.ID = id
	return id, nil
}

// Update overwrites every field of the record except created_by, which is
// immutable. Returns ErrStudentNotFound when the record does not exist.
func (r *StudentRepository) Update(ctx context.Context, id int64, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", student.Name).
		Set("subject", student.Subject).
		Set("email", student.Email).
		Set("rollno", student.RollNo).
		Set("phone", student.Phone).
		Set("unit_test1_marks", helpers.NullIntFromPtr(student.UnitTest1Marks)).
		Set("unit_test2_marks", helpers.NullIntFromPtr(student.UnitTest2Marks)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student")
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student record. Returns ErrStudentNotFound when the
// record does not exist.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// CountAll counts every student record.
func (r *StudentRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("students"))
}

// CountByCreator counts the records created by the given user.
func (r *StudentRepository) CountByCreator(ctx context.Context, userID int64) (int64, error) {
	return r.count(ctx, r.sb.Select("COUNT(*)").From("students").Where(squirrel.Eq{"created_by": userID}))
}

func (r *StudentRepository) count(ctx context.Context, query squirrel.SelectBuilder) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// scanStudent scans one student row from either pgx.Row or pgx.Rows.
func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var mark1, mark2 *int32

	err := row.Scan(
		&student.ID, &student.Name, &student.Subject, &student.Email,
		&student.RollNo, &student.Phone, &mark1, &mark2, &student.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	if mark1 != nil {
		v := int(*mark1)
		student.UnitTest1Marks = &v
	}
	if mark2 != nil {
		v := int(*mark2)
		student.UnitTest2Marks = &v
	}
	return &student, nil
}
