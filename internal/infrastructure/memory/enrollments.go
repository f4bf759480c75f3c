package memory

import (
	"context"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/domain/repository"
)

type EnrollmentRepository struct {
	s *Store
}

func (r *EnrollmentRepository) Create(_ context.Context, e *entity.Enrollment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[e.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.classes[e.ClassID]; !ok {
		return repository.ErrNotFound
	}
	k := pairKey{userID: e.UserID, classID: e.ClassID}
	if _, exists := s.enrollments[k]; exists {
		return repository.ErrConflict
	}
	if e.Notes == nil {
		empty := ""
		e.Notes = &empty
	}
	e.CreatedAt = s.tick()
	e.UpdatedAt = e.CreatedAt
	s.enrollments[k] = copyEnrollment(*e)
	return nil
}

func (r *EnrollmentRepository) Get(_ context.Context, userID, classID string) (*entity.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.enrollments[pairKey{userID: userID, classID: classID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyEnrollment(e)
	return &out, nil
}

func (r *EnrollmentRepository) Update(_ context.Context, userID, classID string, patch entity.EnrollmentPatch) (*entity.Enrollment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	k := pairKey{userID: userID, classID: classID}
	cur, ok := s.enrollments[k]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		cur.Title = *patch.Title
	}
	if patch.Notes != nil {
		n := *patch.Notes
		cur.Notes = &n
	}
	cur.UpdatedAt = s.tick()
	s.enrollments[k] = cur
	out := copyEnrollment(cur)
	return &out, nil
}

func (r *EnrollmentRepository) Delete(_ context.Context, userID, classID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	k := pairKey{userID: userID, classID: classID}
	if _, ok := s.enrollments[k]; !ok {
		return repository.ErrNotFound
	}
	delete(s.enrollments, k)
	return nil
}

func (r *EnrollmentRepository) ListByUser(_ context.Context, userID string) ([]entity.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Enrollment, 0)
	for k, e := range r.s.enrollments {
		if k.userID != userID {
			continue
		}
		c, ok := r.s.classes[k.classID]
		if !ok {
			continue
		}
		cp := copyEnrollment(e)
		cc := copyClass(c)
		cp.Class = &cc
		out = append(out, cp)
	}
	sortEnrollments(out)
	return out, nil
}

func (r *EnrollmentRepository) ListByClasses(_ context.Context, classIDs []string) ([]entity.Enrollment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := make(map[string]struct{}, len(classIDs))
	for _, id := range classIDs {
		want[id] = struct{}{}
	}
	out := make([]entity.Enrollment, 0)
	for k, e := range r.s.enrollments {
		if _, ok := want[k.classID]; !ok {
			continue
		}
		u, ok := r.s.users[k.userID]
		if !ok {
			continue
		}
		cp := copyEnrollment(e)
		cu := copyUser(u)
		cp.User = &cu
		out = append(out, cp)
	}
	sortEnrollments(out)
	return out, nil
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
