package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Arihaan/ZKShop/database"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
	"github.com/MonkyMars/gecho"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	queryTimeout time.Duration
}

func NewProductService(logger *gecho.Logger, db *database.DB, queryTimeout time.Duration) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		queryTimeout: queryTimeout,
	}
}

// joined selects products together with the owner of their shop.
func (ps *ProductService) joined() *database.QueryBuilder[tables.Product] {
	return database.Query[tables.Product](ps.db).
		Select("p.*", "s.owner AS seller").
		Join("shops", "s").On("s.id", "=", "p.shop_id").End().
		Timeout(ps.queryTimeout)
}

// ListProducts returns every product, newest first
func (ps *ProductService) ListProducts(ctx context.Context) ([]tables.Product, error) {
	startTime := time.Now()

	products, err := ps.joined().Newest("p").All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch products", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch products: %w", lib.MapDBError(err))
	}

	ps.logger.Debug("Products fetched successfully",
		gecho.Field("count", len(products)),
		gecho.Field("duration", time.Since(startTime)),
	)
	return products, nil
}

// GetProduct returns the joined row, or a not-found error
func (ps *ProductService) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := ps.joined().Where("p.id", id).First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product by ID", gecho.Field("id", id), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch product: %w", lib.MapDBError(err))
	}
	if product == nil {
		return nil, lib.NotFound("product", id)
	}
	return product, nil
}

// CreateProduct stores a product in the bootstrap shop and returns its id
func (ps *ProductService) CreateProduct(ctx context.Context, req *structs.CreateProductRequest) (int64, error) {
	if err := lib.ValidateStruct(req); err != nil {
		return 0, err
	}

	product := &tables.Product{
		ShopID:     tables.BootstrapShopID,
		Title:      req.Title,
		PricePence: *req.PricePence,
		CreatedAt:  time.Now().UTC(),
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.RequireAge18 != nil {
		product.RequireAge18 = *req.RequireAge18
	}
	if req.RequireUK != nil {
		product.RequireUK = *req.RequireUK
	}

	if _, err := database.Query[tables.Product](ps.db).Timeout(ps.queryTimeout).Insert(ctx, product); err != nil {
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("title", req.Title))
		return 0, fmt.Errorf("failed to create product: %w", lib.MapDBError(err))
	}

	ps.logger.Info("Product created successfully", gecho.Field("id", product.ID))
	return product.ID, nil
}

// UpdateProduct applies a partial patch and returns the updated row.
// Fields left nil keep their stored value.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, req *structs.UpdateProductRequest) (*tables.Product, error) {
	if err := lib.ValidateStruct(req); err != nil {
		return nil, err
	}

	updateData := make(map[string]any)
	if req.Title != nil {
		updateData["title"] = *req.Title
	}
	if req.Description != nil {
		updateData["description"] = *req.Description
	}
	if req.PricePence != nil {
		updateData["price_pence"] = *req.PricePence
	}
	if req.RequireAge18 != nil {
		updateData["require_age18"] = *req.RequireAge18
	}
	if req.RequireUK != nil {
		updateData["require_uk"] = *req.RequireUK
	}

	if len(updateData) == 0 {
		return ps.GetProduct(ctx, id)
	}

	n, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Timeout(ps.queryTimeout).
		Update(ctx, updateData)
	if err != nil {
		ps.logger.Error("Failed to update product", gecho.Field("id", id), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to update product: %w", lib.MapDBError(err))
	}
	if n == 0 {
		return nil, lib.NotFound("product", id)
	}

	ps.logger.Info("Product updated", gecho.Field("id", id), gecho.Field("fields", len(updateData)))
	return ps.GetProduct(ctx, id)
}

// DeleteProduct removes the product and reports whether a row existed.
// Orders pointing at it are left alone.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	deleted, err := database.DeleteByID[tables.Product](ps.db, ctx, id)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("id", id), gecho.Field("error", err))
		return false, fmt.Errorf("failed to delete product: %w", lib.MapDBError(err))
	}

	if deleted {
		ps.logger.Info("Product deleted", gecho.Field("id", id))
	}
	return deleted, nil
}
