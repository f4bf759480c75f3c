package repository

import (
	"context"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
)

// ClassRepository defines class persistence. Deleting a class removes its enrollments.
type ClassRepository interface {
	Create(ctx context.Context, c *entity.Class) error
	GetByID(ctx context.Context, id string) (*entity.Class, error)
	Update(ctx context.Context, c *entity.Class) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Class, error)
	// ListForUser returns the classes userID is enrolled in.
	ListForUser(ctx context.Context, userID string) ([]entity.Class, error)
}
