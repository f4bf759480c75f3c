package repository

import (
	"context"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByToken(ctx context.Context, token string) (*entity.User, error)
	// Update writes the profile fields and role. It never touches the credential.
	Update(ctx context.Context, u *entity.User) error
	SetPassword(ctx context.Context, id, hash string) error
	ClearPassword(ctx context.Context, id string) error
	// SetPasswordIfUnset stores hash only while no password is set and
	// reports whether this call was the one that set it.
	SetPasswordIfUnset(ctx context.Context, id, hash string) (bool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.User, error)
	// ListNotInClass returns the users holding no enrollment in classID.
	ListNotInClass(ctx context.Context, classID string) ([]entity.User, error)
}
