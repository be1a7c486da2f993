package orders

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
)

// MarkPaid handles POST /orders/{id}/mark-paid, the manual status flip.
func (orm *OrderRoutesManager) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w, r)
		return
	}

	if err := orm.orderService.MarkOrderPaid(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to mark order paid", orm.logger, w, r)
		return
	}

	handling.Respond(w, r, http.StatusOK, structs.OrderStatusResponse{
		ID:     id,
		Status: string(tables.OrderStatusPaid),
	})
}

// ConfirmOrder handles POST /orders/{id}/confirm: the order becomes paid once
// the ledger finalizes the given transaction successfully.
func (orm *OrderRoutesManager) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid order id", orm.logger, w, r)
		return
	}

	req, err := lib.ExtractAndValidateBody[structs.ConfirmOrderRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid confirmation", orm.logger, w, r)
		return
	}

	order, err := orm.orderService.ConfirmOrderPayment(r.Context(), id, req.TxHash)
	if err != nil {
		handling.HandleError(err, "failed to confirm order payment", orm.logger, w, r)
		return
	}

	handling.Respond(w, r, http.StatusOK, structs.OrderStatusResponse{
		ID:     order.ID,
		Status: string(order.Status),
		TxHash: order.TxHash,
	})
}
