package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

const productColumns = `id, name, COALESCE(description, ''), price, original_price, COALESCE(image, ''),
       COALESCE(color, ''), COALESCE(category, ''), COALESCE(availability, ''),
       COALESCE(shipping_area, ''), shipping_cost, rating, created_at`

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

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR availability = $2)
  AND ($3 = '' OR name ILIKE '%' || $3 || '%')
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, filter.Category, filter.Availability, filter.Search)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, original_price, image, color, category, availability, shipping_area, shipping_cost, rating)
VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
RETURNING id, created_at
`
	err := r.pool.QueryRow(ctx, q,
		p.Name,
		p.Description,
		p.Price,
		p.OriginalPrice,
		p.Image,
		p.Color,
		p.Category,
		p.Availability,
		p.ShippingArea,
		p.ShippingCost,
		p.Rating,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, patch domain.ProductPatch) error {
	const q = `
UPDATE products SET
    name           = COALESCE($2, name),
    description    = COALESCE($3, description),
    price          = COALESCE($4, price),
    original_price = COALESCE($5, original_price),
    image          = COALESCE($6, image),
    color          = COALESCE($7, color),
    category       = COALESCE($8, category),
    availability   = COALESCE($9, availability),
    shipping_area  = COALESCE($10, shipping_area),
    shipping_cost  = COALESCE($11, shipping_cost),
    rating         = COALESCE($12, rating)
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id,
		patch.Name,
		patch.Description,
		patch.Price,
		patch.OriginalPrice,
		patch.Image,
		patch.Color,
		patch.Category,
		patch.Availability,
		patch.ShippingArea,
		patch.ShippingCost,
		patch.Rating,
	)
	if err != nil {
		r.logger.Printf("product repo: update id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Categories(ctx context.Context) ([]string, error) {
	const q = `
SELECT DISTINCT category
FROM products
WHERE category IS NOT NULL
ORDER BY category
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Image,
		&p.Color,
		&p.Category,
		&p.Availability,
		&p.ShippingArea,
		&p.ShippingCost,
		&p.Rating,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
