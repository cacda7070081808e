package models

// Role defines the user role. The set is closed: anything read from the
// store that is not a known role is treated as RoleDefault.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleUser    Role = "user"
	RoleDefault Role = "default"
)

// ParseRole maps a stored role value onto the closed role set. Unrecognized
// values degrade to RoleDefault, the lowest privilege.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return RoleDefault
	}
}

// IsValidRole reports whether s names one of the known roles exactly.
// Used when a role arrives in a request rather than from the store.
func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleDefault:
		return true
	default:
		return false
	}
}

// User defines the user model based on the 'users' table
type User struct {
	ID           int64  `json:"id" db:"id" example:"1"`             // Unique identifier for the user
	Username     string `json:"username" db:"username"`             // Display name chosen at registration
	Email        string `json:"email" db:"email"`                   // User's email address, stored lowercase
	PasswordHash string `json:"-" db:"password_hash"`               // Hashed password (excluded from JSON)
	Role         Role   `json:"role" db:"role" example:"default"`   // User's role (admin, user or default)
}
