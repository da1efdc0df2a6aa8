package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techzone-py/techzone/internal/models"
	"github.com/techzone-py/techzone/internal/repo"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t)}
}

func seedCatalog(t *testing.T, svc *CatalogService) {
	t.Helper()
	ctx := context.Background()

	perif := models.Category{Name: "Periféricos", Slug: "perifericos"}
	require.NoError(t, svc.Repo.CreateCategory(ctx, &perif))
	compo := models.Category{Name: "Componentes", Slug: "componentes"}
	require.NoError(t, svc.Repo.CreateCategory(ctx, &compo))

	seedProduct(t, svc.Repo, models.Product{
		Name: "Mouse Inalámbrico", Slug: "mouse-inalambrico", Brand: "Logitech",
		Price: 180000, Rating: 4.5, CategoryID: perif.ID,
	})
	seedProduct(t, svc.Repo, models.Product{
		Name: "Teclado Mecánico", Slug: "teclado-mecanico", Brand: "Redragon",
		Price: 350000, Rating: 4.8, Featured: true, CategoryID: perif.ID,
	})
	seedProduct(t, svc.Repo, models.Product{
		Name: "Memoria RAM 16GB", Slug: "ram-16gb", Brand: "Kingston",
		Price: 420000, Rating: 4.2, CategoryID: compo.ID,
	})
}

func TestListProductsSortAndFilter(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)
	seedCatalog(t, svc)

	total, items, err := svc.ListProducts(ctx, ListProductsParams{
		Filter: repo.ProductFilter{Sort: "price_asc"},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	assert.Equal(t, "mouse-inalambrico", items[0].Slug)
	assert.Equal(t, "ram-16gb", items[2].Slug)

	total, items, err = svc.ListProducts(ctx, ListProductsParams{
		Filter: repo.ProductFilter{Category: "perifericos", Sort: "price_desc"},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "teclado-mecanico", items[0].Slug)

	min, max := int64(200000), int64(400000)
	total, items, err = svc.ListProducts(ctx, ListProductsParams{
		Filter: repo.ProductFilter{MinPrice: &min, MaxPrice: &max},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "teclado-mecanico", items[0].Slug)
}

func TestListProductsDefaultSortIsFeaturedFirst(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)
	seedCatalog(t, svc)

	_, items, err := svc.ListProducts(ctx, ListProductsParams{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.True(t, items[0].Featured)
}

func TestListProductsValidation(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	_, _, err := svc.ListProducts(ctx, ListProductsParams{
		Filter: repo.ProductFilter{Sort: "cheapest"},
		Limit:  10,
	})
	assert.ErrorIs(t, err, ErrValidation)

	min, max := int64(500), int64(100)
	_, _, err = svc.ListProducts(ctx, ListProductsParams{
		Filter: repo.ProductFilter{MinPrice: &min, MaxPrice: &max},
		Limit:  10,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchProductsFallbackWithoutIndex(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)
	seedCatalog(t, svc)

	total, items, err := svc.SearchProducts(ctx, "teclado", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "teclado-mecanico", items[0].Slug)

	_, _, err = svc.SearchProducts(ctx, "", 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	err := svc.CreateProduct(ctx, &models.Product{Slug: "no-name", WeightKg: 1})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.CreateProduct(ctx, &models.Product{Name: "Neg", Slug: "neg", Price: -1, WeightKg: 1})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.CreateProduct(ctx, &models.Product{Name: "Zero KG", Slug: "zero-kg", Price: 1000})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogService(t)

	p := models.Product{Name: "SSD 1TB", Slug: "ssd-1tb", Price: 600000, WeightKg: 0.1}
	require.NoError(t, svc.CreateProduct(ctx, &p))

	p.Price = 550000
	require.NoError(t, svc.UpdateProduct(ctx, &p))

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(550000), got.Price)

	missing := models.Product{Name: "X", Slug: "x", Price: 1, WeightKg: 1}
	missing.ID = 9999
	assert.ErrorIs(t, svc.UpdateProduct(ctx, &missing), ErrNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	_, err = svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), ErrNotFound)
}
