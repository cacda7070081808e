package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashing. Deliberately expensive
// to slow down brute-force attempts.
const BcryptCost = 12

// PasswordService handles password hashing and verification. The bcrypt
// algorithm embeds a fresh random salt in every digest, so no separate salt
// storage is needed.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: BcryptCost}
}

// newPasswordServiceWithCost is used by tests to avoid the full hashing cost.
func newPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// HashPassword produces a salted one-way digest of the password.
func (s *PasswordService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against a stored digest. Returns false
// for a wrong password or a malformed digest, never an error.
func (s *PasswordService) CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
