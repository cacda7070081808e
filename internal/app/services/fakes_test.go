package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/pkg/apperrors"
)

// fakeUserRepository is an in-memory stand-in for the Postgres user store.
type fakeUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		nextID: 1,
		users:  make(map[int64]*models.User),
	}
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepository) CountByRole(_ context.Context, role models.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// fakeStudentRepository is an in-memory stand-in for the Postgres student
// store. Listing returns newest first, matching the SQL ORDER BY id DESC.
type fakeStudentRepository struct {
	mu       sync.Mutex
	nextID   int64
	students map[int64]*models.Student
}

func newFakeStudentRepository() *fakeStudentRepository {
	return &fakeStudentRepository{
		nextID:   1,
		students: make(map[int64]*models.Student),
	}
}

func (r *fakeStudentRepository) ListAll(_ context.Context) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(*models.Student) bool { return true }), nil
}

func (r *fakeStudentRepository) ListByCreator(_ context.Context, userID int64) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(s *models.Student) bool { return s.CreatedBy == userID }), nil
}

func (r *fakeStudentRepository) list(keep func(*models.Student) bool) []models.Student {
	out := make([]models.Student, 0)
	for _, s := range r.students {
		if keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeStudentRepository) GetByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepository) Create(_ context.Context, student *models.Student) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student.ID = r.nextID
	r.nextID++
	cp := *student
	r.students[student.ID] = &cp
	return student.ID, nil
}

func (r *fakeStudentRepository) Update(_ context.Context, id int64, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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

func (r *fakeStudentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepository) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.students)), nil
}

func (r *fakeStudentRepository) CountByCreator(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.students {
		if s.CreatedBy == userID {
			n++
		}
	}
	return n, nil
}
