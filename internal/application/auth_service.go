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

// AuthService logs users in and resolves session tokens to callers.
type AuthService struct {
	Users       repo.UserRepository
	Enrollments repo.EnrollmentRepository
	Sessions    *SessionCache
	Logger      *logrus.Logger
}

func NewAuthService(users repo.UserRepository, enrollments repo.EnrollmentRepository, sessions *SessionCache, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Enrollments: enrollments, Sessions: sessions, Logger: logger}
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks email/password. A user without a password gets the supplied
// one as their permanent credential; when two first logins race, only the
// one that wrote the hash succeeds unless both passwords match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metricLoginsFailed.Add(1)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.HasPassword() {
		hash, err := helpers.HashPassword(password)
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			metricLoginsFailed.Add(1)
			return nil, ErrInvalidCredentials
		}
		if err != nil {
			return nil, err
		}
		set, err := s.Users.SetPasswordIfUnset(ctx, u.ID, hash)
		if err != nil {
			return nil, mapRepoErr(err, ErrInvalidCredentials)
		}
		if set {
			u.Password = hash
			metricCredentialsSet.Add(1)
			metricLoginsOK.Add(1)
			if s.Logger != nil {
				s.Logger.WithField("user_id", u.ID).Info("credential bootstrapped on first login")
			}
			return u, nil
		}
		// lost the race; compare against the hash that won
		if u, err = s.Users.GetByID(ctx, u.ID); err != nil {
			return nil, mapRepoErr(err, ErrInvalidCredentials)
		}
	}

	if !helpers.CompareHashAndPassword(u.Password, password) {
		metricLoginsFailed.Add(1)
		return nil, ErrInvalidCredentials
	}
	metricLoginsOK.Add(1)
	return u, nil
}

// Resolve maps a session token to its user, loaded with enrollments and
// their classes. The user is read from the store on every call.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		metricSessionsRejected.Add(1)
		return nil, ErrInvalidSession
	}

	var u *entity.User
	if id, ok := s.Sessions.Lookup(ctx, token); ok {
		cached, err := s.Users.GetByID(ctx, id)
		if err == nil && cached.Token == token {
			metricSessionCacheHits.Add(1)
			u = cached
		} else {
			s.Sessions.Forget(ctx, token)
		}
	}

	if u == nil {
		found, err := s.Users.GetByToken(ctx, token)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				metricSessionsRejected.Add(1)
				return nil, ErrInvalidSession
			}
			return nil, err
		}
		u = found
		s.Sessions.Store(ctx, token, u.ID)
	}

	enrollments, err := s.Enrollments.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Enrollments = enrollments
	metricSessionsResolved.Add(1)
	return u, nil
}
