// Package memory is an in-process implementation of the roster repositories.
// It enforces the same keys and cascades as the Postgres schema and backs the
// test suites and STORE_DRIVER=memory.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

type pairKey struct {
	userID  string
	classID string
}

// Store holds every table behind one lock so cascades are atomic.
type Store struct {
	mu          sync.RWMutex
	users       map[string]entity.User
	classes     map[string]entity.Class
	enrollments map[pairKey]entity.Enrollment
	now         func() time.Time
	last        time.Time
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]entity.User),
		classes:     make(map[string]entity.Class),
		enrollments: make(map[pairKey]entity.Enrollment),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserRepository             { return &UserRepository{s: s} }
func (s *Store) Classes() *ClassRepository          { return &ClassRepository{s: s} }
func (s *Store) Enrollments() *EnrollmentRepository { return &EnrollmentRepository{s: s} }

// copies never share the Notes pointer or nested slices with stored rows

func copyUser(u entity.User) entity.User {
	u.Enrollments = nil
	return u
}

func copyClass(c entity.Class) entity.Class {
	c.Users = nil
	return c
}

func copyEnrollment(e entity.Enrollment) entity.Enrollment {
	if e.Notes != nil {
		n := *e.Notes
		e.Notes = &n
	}
	e.User = nil
	e.Class = nil
	return e
}

// tick returns a timestamp strictly after the previous one so that ordering
// by creation time is stable even on coarse clocks. Callers hold s.mu.
func (s *Store) tick() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func sortUsers(us []entity.User) {
	sort.SliceStable(us, func(i, j int) bool {
		if !us[i].CreatedAt.Equal(us[j].CreatedAt) {
			return us[i].CreatedAt.Before(us[j].CreatedAt)
		}
		return us[i].Email < us[j].Email
	})
}

func sortClasses(cs []entity.Class) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.Before(cs[j].CreatedAt)
		}
		return cs[i].Name < cs[j].Name
	})
}

func sortEnrollments(es []entity.Enrollment) {
	sort.SliceStable(es, func(i, j int) bool {
		return es[i].CreatedAt.Before(es[j].CreatedAt)
	})
}
