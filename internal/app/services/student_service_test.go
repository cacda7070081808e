package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/models/dto"
	"github.com/meric/studentbase/internal/app/policy"
	"github.com/meric/studentbase/internal/pkg/apperrors"
)

var (
	adminSub   = policy.Subject{UserID: 1, Role: models.RoleAdmin}
	userSub    = policy.Subject{UserID: 2, Role: models.RoleUser}
	defaultSub = policy.Subject{UserID: 3, Role: models.RoleDefault}
)

func newTestStudentService() (*StudentService, *fakeStudentRepository, *fakeUserRepository) {
	studentRepo := newFakeStudentRepository()
	userRepo := newFakeUserRepository()
	return NewStudentService(studentRepo, userRepo, zerolog.Nop()), studentRepo, userRepo
}

func studentReq(name string) *dto.StudentRequest {
	return &dto.StudentRequest{
		Name:           name,
		Subject:        "Physics",
		Email:          name + "@school.test",
		RollNo:         "R-" + name,
		Phone:          "555-0100",
		UnitTest1Marks: dto.MarkOf(70),
	}
}

// seedStudent creates a record owned by the given subject and returns it.
func seedStudent(t *testing.T, svc *StudentService, sub policy.Subject, name string) *models.Student {
	t.Helper()
	student, err := svc.Create(context.Background(), sub, studentReq(name))
	if err != nil {
		t.Fatalf("seeding student %q: %v", name, err)
	}
	return student
}

func TestCreateAttributesOwnership(t *testing.T) {
	svc, _, _ := newTestStudentService()

	student := seedStudent(t, svc, defaultSub, "mia")
	if student.CreatedBy != defaultSub.UserID {
		t.Errorf("CreatedBy = %d, want %d", student.CreatedBy, defaultSub.UserID)
	}
	if student.ID == 0 {
		t.Error("created student has no ID")
	}
	if student.UnitTest1Marks == nil || *student.UnitTest1Marks != 70 {
		t.Errorf("UnitTest1Marks = %v, want 70", student.UnitTest1Marks)
	}
	if student.UnitTest2Marks != nil {
		t.Errorf("UnitTest2Marks = %v, want nil for absent mark", student.UnitTest2Marks)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, repo, _ := newTestStudentService()
	ctx := context.Background()

	req := studentReq("bad")
	req.Name = "   "
	if _, err := svc.Create(ctx, adminSub, req); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank name: error = %v, want ErrValidationFailed", err)
	}

	req = studentReq("bad")
	req.RollNo = ""
	if _, err := svc.Create(ctx, adminSub, req); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank rollno: error = %v, want ErrValidationFailed", err)
	}

	if n, _ := repo.CountAll(ctx); n != 0 {
		t.Errorf("store has %d records after failed creates, want 0", n)
	}
}

func TestListScoping(t *testing.T) {
	svc, _, _ := newTestStudentService()
	ctx := context.Background()

	seedStudent(t, svc, adminSub, "a1")
	seedStudent(t, svc, userSub, "u1")
	seedStudent(t, svc, defaultSub, "d1")
	seedStudent(t, svc, defaultSub, "d2")

	tests := []struct {
		name string
		sub  policy.Subject
		want int
	}{
		{"admin sees all", adminSub, 4},
		{"user sees all", userSub, 4},
		{"default sees own only", defaultSub, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.sub)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("List returned %d records, want %d", len(got), tt.want)
			}
			if tt.sub == defaultSub {
				for _, s := range got {
					if s.CreatedBy != defaultSub.UserID {
						t.Errorf("default-role listing leaked record %d owned by %d", s.ID, s.CreatedBy)
					}
				}
			}
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _ := newTestStudentService()

	first := seedStudent(t, svc, adminSub, "older")
	second := seedStudent(t, svc, adminSub, "newer")

	got, err := svc.List(context.Background(), adminSub)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d records, want 2", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("List order = [%d %d], want newest first", got[0].ID, got[1].ID)
	}
}

func TestGetOwnershipAndExistence(t *testing.T) {
	svc, _, _ := newTestStudentService()
	ctx := context.Background()

	owned := seedStudent(t, svc, defaultSub, "mine")
	foreign := seedStudent(t, svc, userSub, "theirs")

	if _, err := svc.Get(ctx, defaultSub, owned.ID); err != nil {
		t.Errorf("owner read: error = %v, want nil", err)
	}
	if _, err := svc.Get(ctx, adminSub, foreign.ID); err != nil {
		t.Errorf("admin read of foreign record: error = %v, want nil", err)
	}

	if _, err := svc.Get(ctx, defaultSub, foreign.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("default read of foreign record: error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Get(ctx, userSub, owned.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("user read of foreign record: error = %v, want ErrPermissionDenied", err)
	}

	// A missing record reports not-found even to non-admins: existence is
	// checked before ownership.
	if _, err := svc.Get(ctx, defaultSub, 9999); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("missing record: error = %v, want ErrStudentNotFound", err)
	}
}

func TestUpdateAdminOnly(t *testing.T) {
	svc, repo, _ := newTestStudentService()
	ctx := context.Background()

	student := seedStudent(t, svc, userSub, "target")

	req := studentReq("renamed")
	req.UnitTest2Marks = dto.MarkOf(91)

	for _, sub := range []policy.Subject{userSub, defaultSub} {
		if _, err := svc.Update(ctx, sub, student.ID, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("update as %s: error = %v, want ErrPermissionDenied", sub.Role, err)
		}
	}

	updated, err := svc.Update(ctx, adminSub, student.ID, req)
	if err != nil {
		t.Fatalf("admin update returned error: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("name = %q, want %q", updated.Name, "renamed")
	}
	if updated.CreatedBy != userSub.UserID {
		t.Errorf("response CreatedBy = %d, want the real owner %d", updated.CreatedBy, userSub.UserID)
	}

	stored, err := repo.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if stored.CreatedBy != userSub.UserID {
		t.Errorf("CreatedBy changed to %d on update, want %d preserved", stored.CreatedBy, userSub.UserID)
	}
	if stored.UnitTest2Marks == nil || *stored.UnitTest2Marks != 91 {
		t.Errorf("UnitTest2Marks = %v, want 91", stored.UnitTest2Marks)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	svc, _, _ := newTestStudentService()

	_, err := svc.Update(context.Background(), adminSub, 404, studentReq("ghost"))
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("error = %v, want ErrStudentNotFound", err)
	}
}

func TestDeleteAdminOnly(t *testing.T) {
	svc, repo, _ := newTestStudentService()
	ctx := context.Background()

	student := seedStudent(t, svc, defaultSub, "doomed")

	for _, sub := range []policy.Subject{userSub, defaultSub} {
		if err := svc.Delete(ctx, sub, student.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Errorf("delete as %s: error = %v, want ErrPermissionDenied", sub.Role, err)
		}
	}
	if n, _ := repo.CountAll(ctx); n != 1 {
		t.Fatalf("record deleted by non-admin, count = %d", n)
	}

	if err := svc.Delete(ctx, adminSub, student.ID); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, adminSub, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("second delete: error = %v, want ErrStudentNotFound", err)
	}
}

func TestStatsScoping(t *testing.T) {
	svc, _, userRepo := newTestStudentService()
	ctx := context.Background()

	userRepo.CreateUser(ctx, &models.User{Username: "root", Email: "root@x.test", Role: models.RoleAdmin})
	userRepo.CreateUser(ctx, &models.User{Username: "u1", Email: "u1@x.test", Role: models.RoleUser})
	userRepo.CreateUser(ctx, &models.User{Username: "u2", Email: "u2@x.test", Role: models.RoleUser})
	userRepo.CreateUser(ctx, &models.User{Username: "d1", Email: "d1@x.test", Role: models.RoleDefault})

	seedStudent(t, svc, adminSub, "s1")
	seedStudent(t, svc, userSub, "s2")
	seedStudent(t, svc, defaultSub, "s3")

	adminStats, err := svc.Stats(ctx, adminSub)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if adminStats.TotalStudents != 3 {
		t.Errorf("admin TotalStudents = %d, want 3", adminStats.TotalStudents)
	}

	defaultStats, err := svc.Stats(ctx, defaultSub)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if defaultStats.TotalStudents != 1 {
		t.Errorf("default TotalStudents = %d, want 1 (own records only)", defaultStats.TotalStudents)
	}

	// Role counts are global regardless of who asks.
	for _, stats := range []*dto.StatsResponse{adminStats, defaultStats} {
		if stats.TotalAdmins != 1 {
			t.Errorf("TotalAdmins = %d, want 1", stats.TotalAdmins)
		}
		if stats.TotalUsers != 2 {
			t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
		}
	}
}
