package entity

import (
	"time"
)

// User is the aggregate root for the roster.
// Password holds a bcrypt hash and stays empty until the first successful
// login sets it. Token is the stable session token; neither is ever serialised.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Phone       string       `json:"phone"`
	Role        Role         `json:"role"`
	Password    string       `json:"-"`
	Token       string       `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

func (u *User) IsAdmin() bool   { return u != nil && u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u != nil && u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u != nil && u.Role == RoleStudent }

// HasPassword reports whether the bootstrap credential has been set.
func (u *User) HasPassword() bool { return u.Password != "" }

// EnrolledIn reports whether u holds an enrollment in classID.
// Only meaningful on a user loaded with its enrollments.
func (u *User) EnrolledIn(classID string) bool {
	if u == nil {
		return false
	}
	for _, e := range u.Enrollments {
		if e.ClassID == classID {
			return true
		}
	}
	return false
}
