package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/domain/repository"
)

const classColumns = `c.id::text, c.name, c.description, c.created_at, c.updated_at`

type ClassRepository struct {
	pool *pgxpool.Pool
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

func scanClass(row pgx.Row) (*entity.Class, error) {
	c := &entity.Class{}
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *ClassRepository) Create(ctx context.Context, c *entity.Class) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO classes (name, description)
		VALUES ($1, $2)
		RETURNING id::text, created_at, updated_at
	`, c.Name, c.Description)

	return mapErr(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *ClassRepository) GetByID(ctx context.Context, id string) (*entity.Class, error) {
	return scanClass(r.pool.QueryRow(ctx, `SELECT `+classColumns+` FROM classes AS c WHERE c.id = $1`, id))
}

func (r *ClassRepository) Update(ctx context.Context, c *entity.Class) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE classes
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, c.Name, c.Description, c.ID)

	return mapErr(row.Scan(&c.UpdatedAt))
}

// Delete removes the class; enrollments go with it via ON DELETE CASCADE.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ClassRepository) List(ctx context.Context) ([]entity.Class, error) {
	return r.query(ctx, `SELECT `+classColumns+` FROM classes AS c ORDER BY c.created_at, c.name`)
}

func (r *ClassRepository) ListForUser(ctx context.Context, userID string) ([]entity.Class, error) {
	return r.query(ctx, `
		SELECT `+classColumns+` FROM classes AS c
		JOIN enrollments e ON e.class_id = c.id
		WHERE e.user_id = $1
		ORDER BY c.created_at, c.name
	`, userID)
}

func (r *ClassRepository) query(ctx context.Context, sql string, args ...any) ([]entity.Class, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]entity.Class, 0)
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, mapErr(rows.Err())
}

var _ repository.ClassRepository = (*ClassRepository)(nil)
