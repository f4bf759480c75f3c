package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	"github.com/oksasatya/classroom-roster/internal/domain/repository"
)

const userColumns = `id::text, email, name, title, phone, role::text, password_hash, token, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var hash *string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Title, &u.Phone, &u.Role, &hash, &u.Token,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	if hash != nil {
		u.Password = *hash
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, title, phone, role, token)
		VALUES ($1, $2, $3, $4, $5::user_role, $6)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.Name, u.Title, u.Phone, string(u.Role), u.Token)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE token = $1`, token))
}

// Update writes the profile fields and role. Email, token and password_hash
// are left alone.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, title = $2, phone = $3, role = $4::user_role, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, u.Name, u.Title, u.Phone, string(u.Role), u.ID)

	return mapErr(row.Scan(&u.UpdatedAt))
}

func (r *UserRepository) SetPassword(ctx context.Context, id, hash string) error {
	return r.execOne(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
}

// ClearPassword puts the user back into the bootstrap state.
func (r *UserRepository) ClearPassword(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE users SET password_hash = NULL, updated_at = now() WHERE id = $1`, id)
}

func (r *UserRepository) execOne(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetPasswordIfUnset(ctx context.Context, id, hash string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = now()
		WHERE id = $2 AND password_hash IS NULL
	`, hash, id)
	if err != nil {
		return false, mapErr(err)
	}
	return res.RowsAffected() == 1, nil
}

// Delete removes the user; enrollments go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, email`)
}

func (r *UserRepository) ListNotInClass(ctx context.Context, classID string) ([]entity.User, error) {
	return r.query(ctx, `
		SELECT `+userColumns+` FROM users AS u
		WHERE NOT EXISTS (
			SELECT 1 FROM enrollments e WHERE e.user_id = u.id AND e.class_id = $1
		)
		ORDER BY u.created_at, u.email
	`, classID)
}

func (r *UserRepository) query(ctx context.Context, sql string, args ...any) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, mapErr(rows.Err())
}

var _ repository.UserRepository = (*UserRepository)(nil)
