package user

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, p domain.ProfileUpdate) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
