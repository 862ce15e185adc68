package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubRepo struct {
	products []domain.Product
	listErr  error

	product *domain.Product
	getErr  error

	created    *domain.Product
	createErr  error
	lastCreate domain.Product

	updateErr error
	lastID    int64
	lastPatch domain.ProductPatch

	deleteErr  error
	lastDelete int64

	categories []string
	catErr     error
}

func (s *stubRepo) List(_ context.Context, _ domain.ProductFilter) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Product, error) {
	return s.product, s.getErr
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastCreate = p
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := p
	out.ID = 1
	return &out, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, patch domain.ProductPatch) error {
	s.lastID = id
	s.lastPatch = patch
	return s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.lastDelete = id
	return s.deleteErr
}

func (s *stubRepo) Categories(_ context.Context) ([]string, error) {
	return s.categories, s.catErr
}

func moneyPtr(v string) *decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return &d
}

func TestCreateRequiresNameAndPrice(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateInput{Name: "   ", Price: moneyPtr("10")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Tee"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)
	_, err := svc.Create(context.Background(), CreateInput{Name: "Tee", Price: moneyPtr("-1")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTrimsName(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil, nil)

	got, err := svc.Create(context.Background(), CreateInput{Name: "  Tee ", Price: moneyPtr("19.90")})
	require.NoError(t, err)
	assert.Equal(t, "Tee", repo.lastCreate.Name)
	assert.Equal(t, "19.90", repo.lastCreate.Price.StringFixed(2))
	assert.Equal(t, int64(1), got.ID)
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil, nil)

	err := svc.Update(context.Background(), 1, domain.ProductPatch{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.lastID)
}

func TestUpdateRejectsNegativePrice(t *testing.T) {
	svc := New(&stubRepo{}, nil, nil)
	err := svc.Update(context.Background(), 1, domain.ProductPatch{Price: moneyPtr("-5")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdatePassesPatchThrough(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil, nil)

	name := "New name"
	require.NoError(t, svc.Update(context.Background(), 4, domain.ProductPatch{Name: &name}))
	assert.Equal(t, int64(4), repo.lastID)
	require.NotNil(t, repo.lastPatch.Name)
	assert.Equal(t, "New name", *repo.lastPatch.Name)
}

func TestUpdateMissingProduct(t *testing.T) {
	repo := &stubRepo{updateErr: domain.ErrNotFound}
	svc := New(repo, nil, nil)

	name := "x"
	err := svc.Update(context.Background(), 99, domain.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Equal(t, int64(3), repo.lastDelete)
}
