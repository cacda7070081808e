// Package policy is the central authorization contract: given a subject
// (user ID plus role) and an operation on a student record, it decides
// allow, deny or scope-filter. The functions are pure and take no store
// access, so every decision is exhaustively testable.
package policy

import (
	"github.com/meric/studentbase/internal/app/models"
)

// Subject identifies the caller of an operation.
type Subject struct {
	UserID int64
	Role   models.Role
}

// Scope describes which student records an operation may touch.
type Scope int

const (
	// ScopeAll covers every record.
	ScopeAll Scope = iota
	// ScopeOwned covers only records created by the subject.
	ScopeOwned
)

// ListScope returns the visibility scope for listing student records.
// Admin and user see all rows; the default role sees only its own.
func ListScope(sub Subject) Scope {
	switch sub.Role {
	case models.RoleAdmin, models.RoleUser:
		return ScopeAll
	case models.RoleDefault:
		return ScopeOwned
	default:
		return ScopeOwned
	}
}

// StatsScope returns the scope for the "total students" aggregate. It
// follows the same rule as listing.
func StatsScope(sub Subject) Scope {
	return ListScope(sub)
}

// CanReadStudent decides whether the subject may read a single record with
// the given owner. Admin reads any row; everyone else only rows they
// created. Note the asymmetry with ListScope: a "user" role lists all rows
// but cannot fetch a foreign row by ID.
func CanReadStudent(sub Subject, ownerID int64) bool {
	switch sub.Role {
	case models.RoleAdmin:
		return true
	case models.RoleUser, models.RoleDefault:
		return ownerID == sub.UserID
	default:
		return ownerID == sub.UserID
	}
}

// CanCreateStudent decides whether the subject may create a record. Every
// authenticated subject may; the record is attributed to the creator.
func CanCreateStudent(sub Subject) bool {
	switch sub.Role {
	case models.RoleAdmin, models.RoleUser, models.RoleDefault:
		return true
	default:
		return true
	}
}

// CanUpdateStudent decides whether the subject may overwrite a record.
// Admin only, regardless of ownership.
func CanUpdateStudent(sub Subject) bool {
	return sub.Role == models.RoleAdmin
}

// CanDeleteStudent decides whether the subject may delete a record.
// Admin only, regardless of ownership.
func CanDeleteStudent(sub Subject) bool {
	return sub.Role == models.RoleAdmin
}
