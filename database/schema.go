package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
)

// Migrate creates the shops, products and orders tables when they are absent
// and seeds the bootstrap shop. It is safe to run on every start.
func Migrate(ctx context.Context, db *DB, shop *structs.ShopConfig) error {
	if _, err := db.NewCreateTable().
		Model((*tables.Shop)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create shops table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*tables.Product)(nil)).
		IfNotExists().
		ForeignKey(`("shop_id") REFERENCES "shops" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*tables.Order)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create orders table: %w", err)
	}

	return seedShop(ctx, db, shop)
}

func seedShop(ctx context.Context, db *DB, cfg *structs.ShopConfig) error {
	shop := &tables.Shop{
		ID:        tables.BootstrapShopID,
		Owner:     cfg.Owner,
		Name:      cfg.Name,
		CreatedAt: time.Now().UTC(),
	}

	err := WithRetry(ctx, func() error {
		_, err := db.NewInsert().
			Model(shop).
			On("CONFLICT (id) DO NOTHING").
			Returning("NULL").
			Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to seed bootstrap shop: %w", err)
	}
	return nil
}
