package tables

import (
	"time"

	"github.com/uptrace/bun"
)

// BootstrapShopID is the fixed id of the single shop every product belongs to.
const BootstrapShopID int64 = 1

type Shop struct {
	bun.BaseModel `bun:"table:shops,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Owner     string    `bun:"owner,notnull" json:"owner"` // opaque seller identifier
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}
