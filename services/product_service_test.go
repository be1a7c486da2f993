package services

import (
	"context"
	"testing"

	"github.com/Arihaan/ZKShop/database/dbtest"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) *ProductService {
	return NewProductService(testLogger(), dbtest.New(t), 0)
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	ps := newProductService(t)

	id, err := ps.CreateProduct(ctx, &structs.CreateProductRequest{Title: "Widget", PricePence: ptr[int64](500)})
	require.NoError(t, err)
	require.NotZero(t, id)

	products, err := ps.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Title)
	assert.Equal(t, int64(500), products[0].PricePence)
	assert.Equal(t, "central", products[0].Seller)

	updated, err := ps.UpdateProduct(ctx, id, &structs.UpdateProductRequest{PricePence: ptr[int64](750)})
	require.NoError(t, err)
	assert.Equal(t, int64(750), updated.PricePence)

	got, err := ps.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(750), got.PricePence)

	deleted, err := ps.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = ps.GetProduct(ctx, id)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	deleted, err = ps.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	ps := newProductService(t)

	_, err := ps.CreateProduct(ctx, &structs.CreateProductRequest{Title: "Bad", PricePence: ptr[int64](-1)})
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = ps.CreateProduct(ctx, &structs.CreateProductRequest{PricePence: ptr[int64](100)})
	assert.ErrorIs(t, err, lib.ErrValidation)

	_, err = ps.CreateProduct(ctx, &structs.CreateProductRequest{Title: "No price"})
	assert.ErrorIs(t, err, lib.ErrValidation)

	products, err := ps.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUpdateProductKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	ps := newProductService(t)

	id, err := ps.CreateProduct(ctx, &structs.CreateProductRequest{
		Title:        "Wine",
		Description:  ptr("Red"),
		PricePence:   ptr[int64](1200),
		RequireAge18: ptr(true),
		RequireUK:    ptr(true),
	})
	require.NoError(t, err)

	// The snake_case alias is folded in by the request decoder.
	patch := &structs.UpdateProductRequest{PricePenceAlias: ptr[int64](500)}
	patch.Normalize()

	updated, err := ps.UpdateProduct(ctx, id, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(500), updated.PricePence)
	assert.Equal(t, "Wine", updated.Title)
	assert.Equal(t, "Red", updated.Description)
	assert.True(t, updated.RequireAge18)
	assert.True(t, updated.RequireUK)

	_, err = ps.UpdateProduct(ctx, id+100, &structs.UpdateProductRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = ps.UpdateProduct(ctx, id, &structs.UpdateProductRequest{PricePence: ptr[int64](-5)})
	assert.ErrorIs(t, err, lib.ErrValidation)
}

func TestListProductsNewestFirst(t *testing.T) {
	ctx := context.Background()
	ps := newProductService(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := ps.CreateProduct(ctx, &structs.CreateProductRequest{Title: title, PricePence: ptr[int64](1)})
		require.NoError(t, err)
	}

	products, err := ps.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "c", products[0].Title)
	assert.Equal(t, "a", products[2].Title)
}
