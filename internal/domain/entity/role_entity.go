package entity

import "strings"

// Role represents an authorization role.
// Stored as the Postgres enum user_role.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return r, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }
