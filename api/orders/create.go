package orders

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
)

// CreateOrder handles POST /orders. The order starts pending.
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.CreateOrderRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid order", orm.logger, w, r)
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		handling.HandleError(err, "failed to create order", orm.logger, w, r)
		return
	}

	handling.Respond(w, r, http.StatusCreated, structs.OrderStatusResponse{
		ID:     order.ID,
		Status: string(order.Status),
	})
}

func (orm *OrderRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := orm.orderService.ListOrders(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch orders", orm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, orders)
}
