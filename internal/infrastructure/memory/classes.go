package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/domain/repository"
)

type ClassRepository struct {
	s *Store
}

func (r *ClassRepository) Create(_ context.Context, c *entity.Class) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = s.tick()
	c.UpdatedAt = c.CreatedAt
	s.classes[c.ID] = copyClass(*c)
	return nil
}

func (r *ClassRepository) GetByID(_ context.Context, id string) (*entity.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyClass(c)
	return &out, nil
}

func (r *ClassRepository) Update(_ context.Context, c *entity.Class) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.classes[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name = c.Name
	cur.Description = c.Description
	cur.UpdatedAt = s.tick()
	c.UpdatedAt = cur.UpdatedAt
	s.classes[c.ID] = cur
	return nil
}

// Delete removes the class and cascades to its enrollments.
func (r *ClassRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.classes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.classes, id)
	for k := range s.enrollments {
		if k.classID == id {
			delete(s.enrollments, k)
		}
	}
	return nil
}

func (r *ClassRepository) List(_ context.Context) ([]entity.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Class, 0, len(r.s.classes))
	for _, c := range r.s.classes {
		out = append(out, copyClass(c))
	}
	sortClasses(out)
	return out, nil
}

func (r *ClassRepository) ListForUser(_ context.Context, userID string) ([]entity.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.Class, 0)
	for k := range r.s.enrollments {
		if k.userID != userID {
			continue
		}
		if c, ok := r.s.classes[k.classID]; ok {
			out = append(out, copyClass(c))
		}
	}
	sortClasses(out)
	return out, nil
}

var _ repository.ClassRepository = (*ClassRepository)(nil)
