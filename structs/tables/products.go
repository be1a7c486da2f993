package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	ShopID       int64     `bun:"shop_id,notnull" json:"shop_id"`
	Title        string    `bun:"title,notnull" json:"title"`
	Description  string    `bun:"description" json:"description"`
	PricePence   int64     `bun:"price_pence,notnull" json:"price_pence"` // stored in pence
	RequireAge18 bool      `bun:"require_age18,notnull,default:false" json:"require_age18"`
	RequireUK    bool      `bun:"require_uk,notnull,default:false" json:"require_uk"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`

	// Seller is the owning shop's owner, filled by joined reads only.
	Seller string `bun:"seller,scanonly" json:"seller"`
}
