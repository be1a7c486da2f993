package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID int64 `bun:"id,pk,autoincrement" json:"id"`

	// No foreign key: orders outlive the products they point at.
	ProductID   int64       `bun:"product_id,notnull" json:"product_id"`
	Buyer       string      `bun:"buyer,notnull" json:"buyer"` // ledger account of the buyer
	AmountPence int64       `bun:"amount_pence,notnull" json:"amount_pence"`
	Status      OrderStatus `bun:"status,notnull,default:'pending'" json:"status"`
	TxHash      string      `bun:"tx_hash,notnull,default:''" json:"tx_hash"`
	CreatedAt   time.Time   `bun:"created_at,notnull" json:"created_at"`
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// CanTransitionTo reports whether the order may move to next. Pending orders
// may only become paid and paid orders stay paid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPending || next == OrderStatusPaid
	case OrderStatusPaid:
		return next == OrderStatusPaid
	default:
		return false
	}
}
