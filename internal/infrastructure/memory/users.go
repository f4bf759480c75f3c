package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Token == u.Token {
			return repository.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyUser(u)
	return &out, nil
}

func (r *UserRepository) find(match func(entity.User) bool) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			out := copyUser(u)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByToken(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return r.find(func(u entity.User) bool { return u.Token == token })
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name = u.Name
	cur.Title = u.Title
	cur.Phone = u.Phone
	cur.Role = u.Role
	cur.UpdatedAt = s.tick()
	u.UpdatedAt = cur.UpdatedAt
	s.users[u.ID] = cur
	return nil
}

func (r *UserRepository) SetPassword(_ context.Context, id, hash string) error {
	return r.setPassword(id, hash)
}

func (r *UserRepository) ClearPassword(_ context.Context, id string) error {
	return r.setPassword(id, "")
}

func (r *UserRepository) setPassword(id, hash string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Password = hash
	cur.UpdatedAt = s.tick()
	s.users[id] = cur
	return nil
}

func (r *UserRepository) SetPasswordIfUnset(_ context.Context, id, hash string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if cur.Password != "" {
		return false, nil
	}
	cur.Password = hash
	cur.UpdatedAt = s.tick()
	s.users[id] = cur
	return true, nil
}

// Delete removes the user and cascades to its enrollments.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	for k := range s.enrollments {
		if k.userID == id {
			delete(s.enrollments, k)
		}
	}
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, copyUser(u))
	}
	sortUsers(out)
	return out, nil
}

func (r *UserRepository) ListNotInClass(_ context.Context, classID string) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entity.User, 0)
	for _, u := range r.s.users {
		if _, enrolled := r.s.enrollments[pairKey{userID: u.ID, classID: classID}]; enrolled {
			continue
		}
		out = append(out, copyUser(u))
	}
	sortUsers(out)
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
