package domain

import (
	"strings"
	"time"
)

const (
	RoleLecturer = "lecturer"
	RoleStudent  = "student"
)

// ValidLevels enumerates the academic levels a student may register with.
var ValidLevels = []string{"100L", "200L", "300L", "400L", "500L", "600L", "ND", "HND", "MSc", "PhD"}

// StudentDetails carries the fields that only exist for the student role.
// A User holds a nil *StudentDetails when the role is lecturer, so the
// role-conditional requirement lives in the type rather than in scattered
// runtime checks.
type StudentDetails struct {
	MatNo string `json:"mat_no"`
	Level string `json:"level"`
}

// User models an authenticated actor: a lecturer or a student.
type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         string          `json:"role"`
	Phone        string          `json:"phone,omitempty"`
	Department   string          `json:"department"`
	Student      *StudentDetails `json:"student,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsLecturer reports whether the user holds the privileged role.
func (u *User) IsLecturer() bool {
	return u.Role == RoleLecturer
}

// NormalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive across the whole user collection.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether role is one of the two accepted values.
func ValidRole(role string) bool {
	return role == RoleLecturer || role == RoleStudent
}

// ValidLevel reports whether level is an accepted academic level.
func ValidLevel(level string) bool {
	for _, l := range ValidLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Validate checks the role-conditional shape of the record: students must
// carry matriculation details, lecturers must not.
func (u *User) Validate() error {
	if u.Name == "" || u.Email == "" || u.Department == "" {
		return Validation("name, email and department are required")
	}
	if !ValidRole(u.Role) {
		return Validation("role must be lecturer or student")
	}
	switch u.Role {
	case RoleStudent:
		if u.Student == nil || u.Student.MatNo == "" || u.Student.Level == "" {
			return Validation("mat_no and level are required for students")
		}
		if !ValidLevel(u.Student.Level) {
			return Validation("level must be one of: " + strings.Join(ValidLevels, ", "))
		}
	case RoleLecturer:
		if u.Student != nil {
			return Validation("mat_no and level are not allowed for lecturers")
		}
	}
	return nil
}

// Identity is the caller identity resolved from a verified bearer token and
// attached to the request context by the auth middleware. It is trusted
// as-is for the lifetime of the token; the user record is not re-fetched
// per request, so a role change or deletion only takes effect once the
// token expires.
type Identity struct {
	UserID string
	Role   string
	Email  string
}
