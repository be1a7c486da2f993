package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Arihaan/ZKShop/database"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

// finalityWaiter blocks until the ledger has finalized a transaction.
type finalityWaiter interface {
	WaitForFinalization(ctx context.Context, hash string) (*plt.TransactionStatus, error)
}

type OrderService struct {
	logger       *gecho.Logger
	db           *database.DB
	ledger       finalityWaiter
	tokenID      string // token orders are paid in
	queryTimeout time.Duration
}

func NewOrderService(logger *gecho.Logger, db *database.DB, ledger finalityWaiter, tokenID string, queryTimeout time.Duration) *OrderService {
	return &OrderService{
		logger:       logger,
		db:           db,
		ledger:       ledger,
		tokenID:      tokenID,
		queryTimeout: queryTimeout,
	}
}

// CreateOrder records a pending order. Neither the product nor the amount is
// checked against the catalogue.
func (os *OrderService) CreateOrder(ctx context.Context, req *structs.CreateOrderRequest) (*tables.Order, error) {
	if err := lib.ValidateStruct(req); err != nil {
		return nil, err
	}

	order := &tables.Order{
		ProductID:   *req.ProductID,
		Buyer:       req.Buyer,
		AmountPence: *req.AmountPence,
		Status:      tables.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := database.Create(os.db, ctx, order); err != nil {
		os.logger.Error("Failed to create order", gecho.Field("error", err), gecho.Field("product_id", order.ProductID))
		return nil, fmt.Errorf("failed to create order: %w", lib.MapDBError(err))
	}

	os.logger.Info("Order created",
		gecho.Field("id", order.ID),
		gecho.Field("product_id", order.ProductID),
		gecho.Field("amount_pence", order.AmountPence),
	)
	return order, nil
}

// ListOrders returns every order, newest first
func (os *OrderService) ListOrders(ctx context.Context) ([]tables.Order, error) {
	orders, err := database.Query[tables.Order](os.db).
		Newest("o").
		Timeout(os.queryTimeout).
		All(ctx)
	if err != nil {
		os.logger.Error("Failed to fetch orders", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch orders: %w", lib.MapDBError(err))
	}
	return orders, nil
}

func (os *OrderService) GetOrder(ctx context.Context, id int64) (*tables.Order, error) {
	order, err := database.FindByID[tables.Order](os.db, ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", lib.MapDBError(err))
	}
	if order == nil {
		return nil, lib.NotFound("order", id)
	}
	return order, nil
}

// MarkOrderPaid flips the order to paid without consulting the ledger.
// Marking a paid order again succeeds.
func (os *OrderService) MarkOrderPaid(ctx context.Context, id int64) error {
	found, err := database.UpdateByID[tables.Order](os.db, ctx, id, map[string]any{"status": string(tables.OrderStatusPaid)})
	if err != nil {
		os.logger.Error("Failed to mark order paid", gecho.Field("id", id), gecho.Field("error", err))
		return fmt.Errorf("failed to mark order paid: %w", lib.MapDBError(err))
	}
	if !found {
		return lib.NotFound("order", id)
	}

	os.logger.Info("Order marked paid", gecho.Field("id", id))
	return nil
}

// ConfirmOrderPayment waits for txHash to finalize and marks the order paid
// when the transaction succeeded and paid the shop for it. A rejected or
// insufficient transaction leaves the order pending.
func (os *OrderService) ConfirmOrderPayment(ctx context.Context, id int64, txHash string) (*tables.Order, error) {
	order, err := os.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == tables.OrderStatusPaid {
		if order.TxHash == "" || order.TxHash == txHash {
			return order, nil
		}
		return nil, fmt.Errorf("%w: order %d already paid by %s", lib.ErrConflict, id, order.TxHash)
	}

	os.logger.Info("Waiting for payment finalization", gecho.Field("order_id", id), gecho.Field("tx_hash", txHash))

	status, err := os.ledger.WaitForFinalization(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if status.Outcome == nil || !status.Outcome.Success {
		reason := "no outcome"
		if status.Outcome != nil && status.Outcome.RejectReason != "" {
			reason = status.Outcome.RejectReason
		}
		os.logger.Warn("Payment transaction rejected",
			gecho.Field("order_id", id),
			gecho.Field("tx_hash", txHash),
			gecho.Field("reason", reason),
		)
		return nil, fmt.Errorf("%w: transaction %s was rejected: %s", lib.ErrConflict, txHash, reason)
	}

	if err := os.checkPayment(ctx, order, txHash, status.Outcome); err != nil {
		os.logger.Warn("Payment does not cover order",
			gecho.Field("order_id", id),
			gecho.Field("tx_hash", txHash),
			gecho.Field("error", err),
		)
		return nil, err
	}

	if !order.Status.CanTransitionTo(tables.OrderStatusPaid) {
		return nil, fmt.Errorf("%w: order %d cannot move from %s to paid", lib.ErrConflict, id, order.Status)
	}

	n, err := database.Query[tables.Order](os.db).
		Where("id", id).
		Timeout(os.queryTimeout).
		Update(ctx, map[string]any{
			"status":  string(tables.OrderStatusPaid),
			"tx_hash": txHash,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", lib.MapDBError(err))
	}
	if n == 0 {
		return nil, lib.NotFound("order", id)
	}

	os.logger.Info("Order payment confirmed", gecho.Field("order_id", id), gecho.Field("tx_hash", txHash))

	order.Status = tables.OrderStatusPaid
	order.TxHash = txHash
	return order, nil
}

// checkPayment requires the outcome to move at least the order amount of the
// shop's token from the buyer to the shop owner. Orders already confirmed
// with the same transaction count against it, so one cart payment covers
// its lines once.
func (os *OrderService) checkPayment(ctx context.Context, order *tables.Order, txHash string, outcome *plt.TransactionOutcome) error {
	buyer, err := plt.ParseAccountAddress(order.Buyer)
	if err != nil {
		return fmt.Errorf("%w: buyer of order %d is not an account address", lib.ErrConflict, order.ID)
	}

	shop, err := database.FindByID[tables.Shop](os.db, ctx, tables.BootstrapShopID)
	if err != nil {
		return fmt.Errorf("failed to fetch shop: %w", lib.MapDBError(err))
	}
	if shop == nil {
		return lib.NotFound("shop", tables.BootstrapShopID)
	}
	payee, err := plt.ParseAccountAddress(shop.Owner)
	if err != nil {
		return fmt.Errorf("%w: shop owner %q is not an account address", lib.ErrConflict, shop.Owner)
	}

	received, err := outcome.Received(os.tokenID, buyer, payee)
	if err != nil {
		return err
	}

	claimed, err := database.Query[tables.Order](os.db).
		Where("tx_hash", txHash).
		WhereOp("id", "<>", order.ID).
		Timeout(os.queryTimeout).
		All(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch orders paid by %s: %w", txHash, lib.MapDBError(err))
	}
	owed := order.AmountPence
	for _, o := range claimed {
		owed += o.AmountPence
	}

	if need := decimal.New(owed, -2); received.LessThan(need) {
		return fmt.Errorf("%w: transaction %s pays the shop %s %s, orders need %s",
			lib.ErrConflict, txHash, received, os.tokenID, need)
	}
	return nil
}
