package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// ErrAdminPasswordUnset is returned when the admin account needs to be
// created but SEED_ADMIN_PASSWORD is not set.
var ErrAdminPasswordUnset = errors.New("SEED_ADMIN_PASSWORD must be set to create the admin account")

type productSeed struct {
	Name         string
	Description  string
	Price        string
	Category     string
	Availability string
	Color        string
}

// Apply inserts basic demo data for manual testing. It is idempotent:
// products are matched by name, the admin account by email.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:         "Classic Cotton T-Shirt",
			Description:  "Soft cotton tee in a straight cut",
			Price:        "19.90",
			Category:     "clothing",
			Availability: "in_stock",
			Color:        "white",
		},
		{
			Name:         "Ceramic Coffee Mug",
			Description:  "330ml ceramic mug",
			Price:        "12.99",
			Category:     "kitchen",
			Availability: "in_stock",
			Color:        "black",
		},
		{
			Name:         "Canvas Tote Bag",
			Description:  "Heavy canvas tote with inner pocket",
			Price:        "24.50",
			Category:     "accessories",
			Availability: "out_of_stock",
			Color:        "natural",
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}

	if err := ensureAdmin(ctx, pool); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO products (name, description, price, category, availability, color)
SELECT $1, $2, $3, $4, $5, $6
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err = pool.Exec(ctx, q, p.Name, p.Description, price, p.Category, p.Availability, p.Color)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = 'admin@storefront.local')`,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	password, err := adminPassword(os.Getenv("SEED_ADMIN_PASSWORD"))
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (name, email, password_hash, tax_id, phone, role)
SELECT 'Admin', 'admin@storefront.local', $1, '00000000000', '0000000000', 'admin'
WHERE NOT EXISTS (SELECT 1 FROM users WHERE lower(email) = 'admin@storefront.local')
`
	_, err = pool.Exec(ctx, q, string(hashed))
	return err
}

// adminPassword validates the operator-supplied admin password. There is
// no fallback value: seeding a fresh database without SEED_ADMIN_PASSWORD
// fails instead of creating an account with a guessable password.
func adminPassword(env string) (string, error) {
	if env == "" {
		return "", ErrAdminPasswordUnset
	}
	return env, nil
}
