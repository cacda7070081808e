package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		StudentRepository: NewStudentRepository(db),
	}
}
