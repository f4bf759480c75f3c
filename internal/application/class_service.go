package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	repo "github.com/oksasatya/classroom-roster/internal/domain/repository"
)

type ClassService struct {
	Classes     repo.ClassRepository
	Users       repo.UserRepository
	Enrollments repo.EnrollmentRepository
	Logger      *logrus.Logger
}

func NewClassService(classes repo.ClassRepository, users repo.UserRepository, enrollments repo.EnrollmentRepository, logger *logrus.Logger) *ClassService {
	return &ClassService{Classes: classes, Users: users, Enrollments: enrollments, Logger: logger}
}

func (s *ClassService) CreateClass(ctx context.Context, caller *entity.User, name, description string) (*entity.Class, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	c := &entity.Class{Name: strings.TrimSpace(name), Description: description}
	if err := s.Classes.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Users = []entity.Enrollment{}
	s.log(caller, c.ID).Info("class created")
	return c, nil
}

type ClassPatch struct {
	Name        *string
	Description *string
}

// UpdateClass is open to admins and to teachers enrolled in the class.
// The scope check runs before the lookup so a teacher cannot probe for
// classes outside their own.
func (s *ClassService) UpdateClass(ctx context.Context, caller *entity.User, id string, patch ClassPatch) (*entity.Class, error) {
	if err := requireClassScope(caller, id); err != nil {
		return nil, denied(err)
	}
	c, err := s.Classes.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrClassNotFound)
	}
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if err := s.Classes.Update(ctx, c); err != nil {
		return nil, mapRepoErr(err, ErrClassNotFound)
	}
	s.log(caller, c.ID).Info("class updated")
	return c, nil
}

// DeleteClass removes a class and, through the store, its enrollments.
func (s *ClassService) DeleteClass(ctx context.Context, caller *entity.User, id string) (*entity.Class, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	c, err := s.Classes.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, ErrClassNotFound)
	}
	if err := s.Classes.Delete(ctx, id); err != nil {
		return nil, mapRepoErr(err, ErrClassNotFound)
	}
	s.log(caller, c.ID).Info("class deleted")
	return c, nil
}

// ListAvailableClasses returns every class for an admin and the caller's own
// classes for anyone else, each with its enrollments. Non-admins get a
// reduced user projection, and students never receive notes.
func (s *ClassService) ListAvailableClasses(ctx context.Context, caller *entity.User) ([]entity.Class, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	var (
		classes []entity.Class
		err     error
	)
	if caller.IsAdmin() {
		classes, err = s.Classes.List(ctx)
	} else {
		classes, err = s.Classes.ListForUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(classes))
	byID := make(map[string]int, len(classes))
	for i := range classes {
		ids[i] = classes[i].ID
		byID[classes[i].ID] = i
		classes[i].Users = []entity.Enrollment{}
	}

	enrollments, err := s.Enrollments.ListByClasses(ctx, ids)
	if err != nil {
		return nil, err
	}
	showNotes := canSeeNotes(caller)
	for _, e := range enrollments {
		i, ok := byID[e.ClassID]
		if !ok {
			continue
		}
		if !showNotes {
			e.Notes = nil
		}
		if !caller.IsAdmin() && e.User != nil {
			e.User = publicProfile(e.User)
		}
		classes[i].Users = append(classes[i].Users, e)
	}
	return classes, nil
}

// ListAvailableUsersForClass returns the users that could still be added to classID.
func (s *ClassService) ListAvailableUsersForClass(ctx context.Context, caller *entity.User, classID string) ([]entity.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	if _, err := s.Classes.GetByID(ctx, classID); err != nil {
		return nil, mapRepoErr(err, ErrClassNotFound)
	}
	return s.Users.ListNotInClass(ctx, classID)
}

// publicProfile is what classmates see of each other.
func publicProfile(u *entity.User) *entity.User {
	return &entity.User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (s *ClassService) log(caller *entity.User, classID string) *logrus.Entry {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithFields(logrus.Fields{"actor_id": caller.ID, "class_id": classID})
}
