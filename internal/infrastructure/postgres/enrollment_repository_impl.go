package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/domain/repository"
)

const enrollmentColumns = `e.user_id::text, e.class_id::text, e.title, e.notes, e.created_at, e.updated_at`

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

func scanEnrollment(row pgx.Row, extra ...any) (*entity.Enrollment, error) {
	e := &entity.Enrollment{}
	var notes string
	dest := append([]any{&e.UserID, &e.ClassID, &e.Title, &notes, &e.CreatedAt, &e.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, mapErr(err)
	}
	e.Notes = &notes
	return e, nil
}

// Create inserts the pair. The composite primary key rejects duplicates and
// the foreign keys reject unknown users or classes.
func (r *EnrollmentRepository) Create(ctx context.Context, e *entity.Enrollment) error {
	var notes string
	if e.Notes != nil {
		notes = *e.Notes
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (user_id, class_id, title, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, e.UserID, e.ClassID, e.Title, notes)

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return mapErr(err)
	}
	e.Notes = &notes
	return nil
}

func (r *EnrollmentRepository) Get(ctx context.Context, userID, classID string) (*entity.Enrollment, error) {
	return scanEnrollment(r.pool.QueryRow(ctx, `
		SELECT `+enrollmentColumns+` FROM enrollments AS e
		WHERE e.user_id = $1 AND e.class_id = $2
	`, userID, classID))
}

// Update patches the single row keyed by the pair; nil fields are kept.
func (r *EnrollmentRepository) Update(ctx context.Context, userID, classID string, patch entity.EnrollmentPatch) (*entity.Enrollment, error) {
	return scanEnrollment(r.pool.QueryRow(ctx, `
		UPDATE enrollments AS e
		SET title = COALESCE($3, e.title), notes = COALESCE($4, e.notes), updated_at = now()
		WHERE e.user_id = $1 AND e.class_id = $2
		RETURNING `+enrollmentColumns+`
	`, userID, classID, patch.Title, patch.Notes))
}

func (r *EnrollmentRepository) Delete(ctx context.Context, userID, classID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE user_id = $1 AND class_id = $2`, userID, classID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]entity.Enrollment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+enrollmentColumns+`, `+classColumns+`
		FROM enrollments AS e
		JOIN classes AS c ON c.id = e.class_id
		WHERE e.user_id = $1
		ORDER BY c.created_at, c.name
	`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]entity.Enrollment, 0)
	for rows.Next() {
		c := &entity.Class{}
		e, err := scanEnrollment(rows, &c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		e.Class = c
		out = append(out, *e)
	}
	return out, mapErr(rows.Err())
}

func (r *EnrollmentRepository) ListByClasses(ctx context.Context, classIDs []string) ([]entity.Enrollment, error) {
	out := make([]entity.Enrollment, 0)
	if len(classIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+enrollmentColumns+`,
			u.id::text, u.email, u.name, u.title, u.phone, u.role::text, u.created_at, u.updated_at
		FROM enrollments AS e
		JOIN users AS u ON u.id = e.user_id
		WHERE e.class_id::text = ANY($1)
		ORDER BY e.created_at, u.email
	`, classIDs)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		u := &entity.User{}
		e, err := scanEnrollment(rows, &u.ID, &u.Email, &u.Name, &u.Title, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		e.User = u
		out = append(out, *e)
	}
	return out, mapErr(rows.Err())
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)
