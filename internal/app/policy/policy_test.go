package policy

import (
	"testing"

	"github.com/meric/studentbase/internal/app/models"
)

func TestListScope(t *testing.T) {
	tests := []struct {
		role models.Role
		want Scope
	}{
		{models.RoleAdmin, ScopeAll},
		{models.RoleUser, ScopeAll},
		{models.RoleDefault, ScopeOwned},
	}

	for _, tt := range tests {
		got := ListScope(Subject{UserID: 1, Role: tt.role})
		if got != tt.want {
			t.Errorf("ListScope(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestStatsScopeMatchesListScope(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleUser, models.RoleDefault} {
		sub := Subject{UserID: 7, Role: role}
		if StatsScope(sub) != ListScope(sub) {
			t.Errorf("StatsScope(%s) diverges from ListScope", role)
		}
	}
}

func TestCanReadStudent(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		userID  int64
		ownerID int64
		want    bool
	}{
		{"admin reads own", models.RoleAdmin, 1, 1, true},
		{"admin reads foreign", models.RoleAdmin, 1, 2, true},
		{"user reads own", models.RoleUser, 1, 1, true},
		{"user reads foreign", models.RoleUser, 1, 2, false},
		{"default reads own", models.RoleDefault, 1, 1, true},
		{"default reads foreign", models.RoleDefault, 1, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanReadStudent(Subject{UserID: tt.userID, Role: tt.role}, tt.ownerID)
			if got != tt.want {
				t.Errorf("CanReadStudent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateStudent(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleUser, models.RoleDefault} {
		if !CanCreateStudent(Subject{UserID: 1, Role: role}) {
			t.Errorf("CanCreateStudent(%s) = false, want true", role)
		}
	}
}

func TestMutationIsAdminOnly(t *testing.T) {
	tests := []struct {
		role models.Role
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RoleUser, false},
		{models.RoleDefault, false},
	}

	for _, tt := range tests {
		sub := Subject{UserID: 1, Role: tt.role}
		if got := CanUpdateStudent(sub); got != tt.want {
			t.Errorf("CanUpdateStudent(%s) = %v, want %v", tt.role, got, tt.want)
		}
		if got := CanDeleteStudent(sub); got != tt.want {
			t.Errorf("CanDeleteStudent(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
