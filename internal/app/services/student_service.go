package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/models/dto"
	"github.com/meric/studentbase/internal/app/policy"
	"github.com/meric/studentbase/internal/app/repositories"
	"github.com/meric/studentbase/internal/pkg/apperrors"
)

// StudentService orchestrates role-scoped operations on student records.
// Policy decisions happen here, before any mutating store call.
type StudentService struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// List returns the student records visible to the subject, newest first.
func (s *StudentService) List(ctx context.Context, sub policy.Subject) ([]models.Student, error) {
	switch policy.ListScope(sub) {
	case policy.ScopeAll:
		return s.studentRepo.ListAll(ctx)
	default:
		return s.studentRepo.ListByCreator(ctx, sub.UserID)
	}
}

// Get fetches a single record. Existence is checked before ownership, so a
// missing record reports not-found and a foreign one reports forbidden.
// Callers can tell a 404 from a 403; that ordering is part of the API
// contract.
func (s *StudentService) Get(ctx context.Context, sub policy.Subject, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanReadStudent(sub, student.CreatedBy) {
		return nil, apperrors.NewForbiddenError("you do not have access to this student record")
	}

	return student, nil
}

// Create validates the fields and inserts a record attributed to the caller.
func (s *StudentService) Create(ctx context.Context, sub policy.Subject, req *dto.StudentRequest) (*models.Student, error) {
	if !policy.CanCreateStudent(sub) {
		return nil, apperrors.NewForbiddenError("you cannot create student records")
	}

	student, err := buildStudent(req)
	if err != nil {
		return nil, err
	}
	student.CreatedBy = sub.UserID

	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Int64("createdBy", sub.UserID).Msg("Student record created")
	return student, nil
}

// Update fully overwrites a record. Admin only; created_by never changes.
func (s *StudentService) Update(ctx context.Context, sub policy.Subject, id int64, req *dto.StudentRequest) (*models.Student, error) {
	if !policy.CanUpdateStudent(sub) {
		return nil, apperrors.NewForbiddenError("only admins can update student records")
	}

	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student, err := buildStudent(req)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, id, student); err != nil {
		return nil, err
	}
	student.ID = id
	// The store never rewrites created_by; the response must not either.
	student.CreatedBy = existing.CreatedBy

	s.logger.Info().Int64("studentID", id).Int64("updatedBy", sub.UserID).Msg("Student record updated")
	return student, nil
}

// Delete removes a record. Admin only.
func (s *StudentService) Delete(ctx context.Context, sub policy.Subject, id int64) error {
	if !policy.CanDeleteStudent(sub) {
		return apperrors.NewForbiddenError("only admins can delete student records")
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", id).Int64("deletedBy", sub.UserID).Msg("Student record deleted")
	return nil
}

// Stats aggregates counts. The student total follows the caller's list
// scope; the admin and user totals are global regardless of role.
func (s *StudentService) Stats(ctx context.Context, sub policy.Subject) (*dto.StatsResponse, error) {
	var totalStudents int64
	var err error

	switch policy.StatsScope(sub) {
	case policy.ScopeAll:
		totalStudents, err = s.studentRepo.CountAll(ctx)
	default:
		totalStudents, err = s.studentRepo.CountByCreator(ctx, sub.UserID)
	}
	if err != nil {
		return nil, err
	}

	totalAdmins, err := s.userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		TotalStudents: totalStudents,
		TotalAdmins:   totalAdmins,
		TotalUsers:    totalUsers,
	}, nil
}

// buildStudent validates and normalizes the request into a model. Required
// fields must be non-empty after trimming; the check runs before any store
// call so a failed request never writes.
func buildStudent(req *dto.StudentRequest) (*models.Student, error) {
	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	rollNo := strings.TrimSpace(req.RollNo)
	phone := strings.TrimSpace(req.Phone)

	switch {
	case name == "":
		return nil, apperrors.NewValidationError("name", "name is required")
	case subject == "":
		return nil, apperrors.NewValidationError("subject", "subject is required")
	case email == "":
		return nil, apperrors.NewValidationError("email", "email is required")
	case rollNo == "":
		return nil, apperrors.NewValidationError("rollno", "rollno is required")
	}

	return &models.Student{
		Name:           name,
		Subject:        subject,
		Email:          email,
		RollNo:         rollNo,
		Phone:          phone,
		UnitTest1Marks: req.UnitTest1Marks.Ptr(),
		UnitTest2Marks: req.UnitTest2Marks.Ptr(),
	}, nil
}
