package cart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Upsert inserts a cart line or, when the (user_id, product_id) pair already
// exists, atomically increments its quantity. Size is kept from the first
// insert. The single statement makes concurrent adds for the same pair safe.
func (r *postgresRepo) Upsert(ctx context.Context, line domain.CartLine) (*domain.CartLine, error) {
	const q = `
INSERT INTO cart (user_id, product_id, quantity, size)
VALUES ($1, $2, $3, NULLIF($4, ''))
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
RETURNING id, user_id, product_id, quantity, COALESCE(size, ''), created_at
`
	var out domain.CartLine
	err := r.pool.QueryRow(ctx, q, line.UserID, line.ProductID, line.Quantity, line.Size).Scan(
		&out.ID,
		&out.UserID,
		&out.ProductID,
		&out.Quantity,
		&out.Size,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) SetQuantity(ctx context.Context, userID, lineID int64, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE cart SET quantity = $3 WHERE id = $1 AND user_id = $2`, lineID, userID, quantity)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, lineID int64) error {
	// Removing an absent line is not an error.
	_, err := r.pool.Exec(ctx, `DELETE FROM cart WHERE id = $1 AND user_id = $2`, lineID, userID)
	return err
}

func (r *postgresRepo) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart WHERE user_id = $1`, userID)
	return err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartView, error) {
	const q = `
SELECT c.id, p.id, p.name, p.price, COALESCE(p.image, ''), COALESCE(p.color, ''), c.quantity, COALESCE(c.size, '')
FROM cart c
JOIN products p ON p.id = c.product_id
WHERE c.user_id = $1
ORDER BY c.id ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartView
	for rows.Next() {
		var v domain.CartView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.Image, &v.Color, &v.Quantity, &v.Size); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}
