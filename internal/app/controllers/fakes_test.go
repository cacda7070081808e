package controllers_test

import (
	"context"
	"sort"
	"strings"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/pkg/apperrors"
)

// memUserRepo is an in-memory user store for handler tests.
type memUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range r.users {
		if u.Email == email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = r.nextID
	user.Email = email
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// memStudentRepo is an in-memory student store for handler tests.
type memStudentRepo struct {
	nextID   int64
	students map[int64]*models.Student
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{nextID: 1, students: make(map[int64]*models.Student)}
}

func (r *memStudentRepo) ListAll(_ context.Context) ([]models.Student, error) {
	return r.list(func(*models.Student) bool { return true }), nil
}

func (r *memStudentRepo) ListByCreator(_ context.Context, userID int64) ([]models.Student, error) {
	return r.list(func(s *models.Student) bool { return s.CreatedBy == userID }), nil
}

func (r *memStudentRepo) list(keep func(*models.Student) bool) []models.Student {
	out := make([]models.Student, 0)
	for _, s := range r.students {
		if keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memStudentRepo) Create(_ context.Context, student *models.Student) (int64, error) {
	student.ID = r.nextID
	r.nextID++
	cp := *student
	r.students[student.ID] = &cp
	return student.ID, nil
}

func (r *memStudentRepo) Update(_ context.Context, id int64, student *models.Student) error {
	existing, ok := r.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *student
	cp.ID = id
	cp.CreatedBy = existing.CreatedBy
	r.students[id] = &cp
	return nil
}

func (r *memStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *memStudentRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.students)), nil
}

func (r *memStudentRepo) CountByCreator(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, s := range r.students {
		if s.CreatedBy == userID {
			n++
		}
	}
	return n, nil
}
