package repository

import (
	"context"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

// EnrollmentRepository persists the user/class join.
// Create returns ErrConflict for an existing pair and ErrNotFound when
// either side does not exist. Update and Delete return ErrNotFound when no
// row matches the pair.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *entity.Enrollment) error
	Get(ctx context.Context, userID, classID string) (*entity.Enrollment, error)
	Update(ctx context.Context, userID, classID string, patch entity.EnrollmentPatch) (*entity.Enrollment, error)
	Delete(ctx context.Context, userID, classID string) error
	// ListByUser returns userID's enrollments with Class populated.
	ListByUser(ctx context.Context, userID string) ([]entity.Enrollment, error)
	// ListByClasses returns the enrollments of classIDs with User populated.
	ListByClasses(ctx context.Context, classIDs []string) ([]entity.Enrollment, error)
}
