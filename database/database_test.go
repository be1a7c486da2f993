package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Arihaan/ZKShop/database"
	"github.com/Arihaan/ZKShop/database/dbtest"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSeedsBootstrapShopOnce(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	// A second run must neither fail nor duplicate or overwrite the shop.
	require.NoError(t, database.Migrate(ctx, db, &structs.ShopConfig{Owner: "other", Name: "Other"}))

	shops, err := database.Query[tables.Shop](db).All(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, tables.BootstrapShopID, shops[0].ID)
	assert.Equal(t, "central", shops[0].Owner)
	assert.Equal(t, "ZKShop", shops[0].Name)
}

func TestInsertFindUpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	order := &tables.Order{
		ProductID:   42,
		Buyer:       "buyer",
		AmountPence: 500,
		Status:      tables.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := database.Create(db, ctx, order)
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	found, err := database.FindByID[tables.Order](db, ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(42), found.ProductID)
	assert.Equal(t, tables.OrderStatusPending, found.Status)

	updated, err := database.UpdateByID[tables.Order](db, ctx, order.ID, map[string]any{"status": tables.OrderStatusPaid})
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = database.UpdateByID[tables.Order](db, ctx, order.ID+100, map[string]any{"status": tables.OrderStatusPaid})
	require.NoError(t, err)
	assert.False(t, updated)

	found, err = database.FindByID[tables.Order](db, ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, tables.OrderStatusPaid, found.Status)

	deleted, err := database.DeleteByID[tables.Order](db, ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = database.DeleteByID[tables.Order](db, ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err = database.FindByID[tables.Order](db, ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestJoinAndNewestOrdering(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	base := time.Now().UTC()
	for i, title := range []string{"first", "second", "third"} {
		_, err := database.Create(db, ctx, &tables.Product{
			ShopID:     tables.BootstrapShopID,
			Title:      title,
			PricePence: int64(100 * (i + 1)),
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	products, err := database.Query[tables.Product](db).
		Select("p.*", "s.owner AS seller").
		Join("shops", "s").On("s.id", "=", "p.shop_id").End().
		Newest("p").
		All(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "third", products[0].Title)
	assert.Equal(t, "first", products[2].Title)
	for _, p := range products {
		assert.Equal(t, "central", p.Seller)
	}

	count, err := database.Query[tables.Product](db).WhereOp("price_pence", ">=", 200).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestForeignKeyRejectsUnknownShop(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	_, err := database.Create(db, ctx, &tables.Product{
		ShopID:    99,
		Title:     "orphan",
		CreatedAt: time.Now().UTC(),
	})
	require.Error(t, err)
}

func TestUpdateAndDeleteRequireConditions(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	_, err := database.Query[tables.Order](db).Update(ctx, map[string]any{"status": "paid"})
	assert.Error(t, err)

	_, err = database.Query[tables.Order](db).Delete(ctx)
	assert.Error(t, err)
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	cfg := database.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
		EnableRetry:  true,
	}

	t.Run("transient errors are retried", func(t *testing.T) {
		calls := 0
		err := database.RetryWithBackoff(ctx, cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("driver: bad connection")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		calls := 0
		sentinel := fmt.Errorf("syntax error")
		err := database.RetryWithBackoff(ctx, cfg, func() error {
			calls++
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls)
	})

	t.Run("attempts are bounded", func(t *testing.T) {
		calls := 0
		err := database.RetryWithBackoff(ctx, cfg, func() error {
			calls++
			return errors.New("connection reset by peer")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})
}
