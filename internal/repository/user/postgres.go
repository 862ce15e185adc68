package user

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

const userColumns = `id, name, email, password_hash, tax_id, phone, COALESCE(postal_code, ''),
       COALESCE(street, ''), COALESCE(neighborhood, ''), COALESCE(city, ''), COALESCE(state, ''), role, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (name, email, password_hash, tax_id, phone, postal_code, street, neighborhood, city, state, role)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11)
RETURNING ` + userColumns + `
`
	return r.scanUser(r.pool.QueryRow(ctx, q,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.TaxID,
		u.Phone,
		u.PostalCode,
		u.Street,
		u.Neighborhood,
		u.City,
		u.State,
		u.Role,
	))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1)
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id int64, p domain.ProfileUpdate) error {
	const q = `
UPDATE users SET
    name         = $2,
    phone        = $3,
    postal_code  = NULLIF($4, ''),
    street       = NULLIF($5, ''),
    neighborhood = NULLIF($6, ''),
    city         = NULLIF($7, ''),
    state        = NULLIF($8, '')
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id, p.Name, p.Phone, p.PostalCode, p.Street, p.Neighborhood, p.City, p.State)
	if err != nil {
		r.logger.Printf("user repo: update profile id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		r.logger.Printf("user repo: update password id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.TaxID,
		&u.Phone,
		&u.PostalCode,
		&u.Street,
		&u.Neighborhood,
		&u.City,
		&u.State,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: scan error=%v", err)
		return nil, err
	}
	return &u, nil
}
