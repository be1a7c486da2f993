// Package dbtest opens throwaway SQLite stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Arihaan/ZKShop/database"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
)

// New returns a migrated SQLite database in a temporary directory, closed
// when the test ends. The bootstrap shop is owned by "central".
func New(t testing.TB) *database.DB {
	return NewShop(t, "central")
}

// NewShop is New with the bootstrap shop owned by owner, usually an account
// address so payments to the shop can be confirmed.
func NewShop(t testing.TB, owner string) *database.DB {
	t.Helper()

	cfg := &structs.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "zkshop_test.db"),
	}
	db, err := database.Open(context.Background(), cfg, gecho.NewDefaultLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, &structs.ShopConfig{Owner: owner, Name: "ZKShop"}))
	return db
}
