package entity

import "time"

// Enrollment joins a User to a Class. (UserID, ClassID) is unique.
// Notes is a pointer so that it can be left out entirely for callers
// who must not see it.
type Enrollment struct {
	UserID    string    `json:"user_id"`
	ClassID   string    `json:"class_id"`
	Title     string    `json:"title"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  *User  `json:"user,omitempty"`
	Class *Class `json:"class,omitempty"`
}

// EnrollmentPatch carries the optional fields of an enrollment update.
type EnrollmentPatch struct {
	Title *string
	Notes *string
}

// Empty reports whether the patch changes nothing.
func (p EnrollmentPatch) Empty() bool { return p.Title == nil && p.Notes == nil }
