package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	repo "github.com/oksasatya/classroom-roster/internal/domain/repository"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

// sessionTokenBytes is the entropy of a generated session token.
const sessionTokenBytes = 32

type UserService struct {
	Users    repo.UserRepository
	Sessions *SessionCache
	Index    *UserIndex
	Mail     *Notifier
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, sessions *SessionCache, index *UserIndex, mail *Notifier, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Sessions: sessions, Index: index, Mail: mail, Logger: logger}
}

type CreateUserInput struct {
	Email string
	Name  string
	Role  entity.Role
	Title string
	Phone string
}

// CreateUser registers a user with no password; the first login sets it.
func (s *UserService) CreateUser(ctx context.Context, caller *entity.User, in CreateUserInput) (*entity.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	email := NormalizeEmail(in.Email)
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleStudent
	}
	token, err := helpers.GenerateToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email: email,
		Name:  strings.TrimSpace(in.Name),
		Title: in.Title,
		Phone: in.Phone,
		Role:  role,
		Token: token,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost a race with another create for the same email
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log(caller, u.ID).Info("user created")
	s.Index.Put(ctx, u)
	s.Mail.AccountCreated(ctx, u)
	return u, nil
}

// UpdateUserInput holds the optional fields of an update; nil means keep.
type UpdateUserInput struct {
	Name     *string
	Title    *string
	Phone    *string
	Password *string
	Role     *entity.Role
}

// UpdateUser lets a user edit themselves and an admin edit anyone. Only an
// admin may change a role; a role sent by anyone else is ignored.
func (s *UserService) UpdateUser(ctx context.Context, caller *entity.User, id string, in UpdateUserInput) (*entity.User, error) {
	if err := requireSelfOrAdmin(caller, id); err != nil {
		return nil, denied(err)
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Title != nil {
		u.Title = *in.Title
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Role != nil && caller.IsAdmin() {
		u.Role = *in.Role
	}

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	// the credential is written on its own so a concurrent bootstrap login
	// is never overwritten by the profile write above
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, mapHashErr(err)
		}
		if err := s.Users.SetPassword(ctx, u.ID, hash); err != nil {
			return nil, mapRepoErr(err, ErrUserNotFound)
		}
		u.Password = hash
	}
	s.log(caller, u.ID).WithField("password_changed", in.Password != nil).Info("user updated")
	s.Index.Put(ctx, u)
	return u, nil
}

// DeleteUser removes a user and, through the store, all of their enrollments.
func (s *UserService) DeleteUser(ctx context.Context, caller *entity.User, id string) (*entity.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	if err := s.Users.Delete(ctx, id); err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	s.Sessions.Forget(ctx, u.Token)
	s.Index.Remove(ctx, u.ID)
	s.log(caller, u.ID).Info("user deleted")
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context, caller *entity.User) ([]entity.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	return s.Users.List(ctx)
}

// Self returns the caller as resolved for this request. Students do not see
// the notes on their own enrollments.
func (s *UserService) Self(_ context.Context, caller *entity.User) (*entity.User, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	out := *caller
	out.Enrollments = make([]entity.Enrollment, len(caller.Enrollments))
	copy(out.Enrollments, caller.Enrollments)
	if !canSeeNotes(caller) {
		for i := range out.Enrollments {
			out.Enrollments[i].Notes = nil
		}
	}
	return &out, nil
}

// ResetPassword clears the user's credential so that their next login sets
// a new one, and re-sends the invitation. The session token is unchanged.
// The returned flag reports whether an invitation was enqueued.
func (s *UserService) ResetPassword(ctx context.Context, caller *entity.User, id string) (bool, error) {
	if err := requireAdmin(caller); err != nil {
		return false, denied(err)
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return false, mapRepoErr(err, ErrUserNotFound)
	}
	if err := s.Users.ClearPassword(ctx, u.ID); err != nil {
		return false, mapRepoErr(err, ErrUserNotFound)
	}
	u.Password = ""
	s.log(caller, u.ID).Info("credential reset")
	return s.Mail.AccountCreated(ctx, u), nil
}

// SearchUsers queries the Elasticsearch mirror. Admin only.
func (s *UserService) SearchUsers(ctx context.Context, caller *entity.User, q string, size int) ([]map[string]any, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	return s.Index.Search(ctx, q, size)
}

func (s *UserService) log(caller *entity.User, target string) *logrus.Entry {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithFields(logrus.Fields{"actor_id": caller.ID, "user_id": target})
}
