package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	repo "github.com/oksasatya/classroom-roster/internal/domain/repository"
)

// EnrollmentService manages class membership. Uniqueness of the
// (user, class) pair is enforced by the store, not by locking here.
type EnrollmentService struct {
	Enrollments repo.EnrollmentRepository
	Users       repo.UserRepository
	Classes     repo.ClassRepository
	Mail        *Notifier
	Logger      *logrus.Logger
}

func NewEnrollmentService(enrollments repo.EnrollmentRepository, users repo.UserRepository, classes repo.ClassRepository, mail *Notifier, logger *logrus.Logger) *EnrollmentService {
	return &EnrollmentService{Enrollments: enrollments, Users: users, Classes: classes, Mail: mail, Logger: logger}
}

// AddUserToClass creates the enrollment. Admin only.
func (s *EnrollmentService) AddUserToClass(ctx context.Context, caller *entity.User, userID, classID string) (*entity.Enrollment, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, denied(err)
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err, ErrUserNotFound)
	}
	c, err := s.Classes.GetByID(ctx, classID)
	if err != nil {
		return nil, mapRepoErr(err, ErrClassNotFound)
	}

	e := &entity.Enrollment{UserID: userID, ClassID: classID}
	if err := s.Enrollments.Create(ctx, e); err != nil {
		switch {
		case errors.Is(err, repo.ErrConflict):
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, repo.ErrNotFound):
			// user or class deleted since the lookups above
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log(caller, userID, classID).Info("user added to class")
	s.Mail.Enrolled(ctx, u, c, e)
	return e, nil
}

// UpdateEnrollment patches title and/or notes. Admins, and teachers enrolled
// in the class. A missing pair is reported as not found.
func (s *EnrollmentService) UpdateEnrollment(ctx context.Context, caller *entity.User, userID, classID string, patch entity.EnrollmentPatch) (*entity.Enrollment, error) {
	if err := requireClassScope(caller, classID); err != nil {
		return nil, denied(err)
	}
	e, err := s.Enrollments.Update(ctx, userID, classID, patch)
	if err != nil {
		return nil, mapRepoErr(err, ErrEnrollmentNotFound)
	}
	s.log(caller, userID, classID).Info("enrollment updated")
	return e, nil
}

// RemoveUserFromClass deletes the enrollment. Admins, and teachers enrolled
// in the class.
func (s *EnrollmentService) RemoveUserFromClass(ctx context.Context, caller *entity.User, userID, classID string) error {
	if err := requireClassScope(caller, classID); err != nil {
		return denied(err)
	}
	if err := s.Enrollments.Delete(ctx, userID, classID); err != nil {
		return mapRepoErr(err, ErrEnrollmentNotFound)
	}
	s.log(caller, userID, classID).Info("user removed from class")
	return nil
}

func (s *EnrollmentService) log(caller *entity.User, userID, classID string) *logrus.Entry {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithFields(logrus.Fields{"actor_id": caller.ID, "user_id": userID, "class_id": classID})
}
