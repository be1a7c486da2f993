package orders

import (
	"net/http"

	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	admin        func(http.Handler) http.Handler
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService *services.OrderService, admin func(http.Handler) http.Handler) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		admin:        admin,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orm.CreateOrder)
		r.Get("/", orm.ListOrders)
		r.Post("/{id}/confirm", orm.ConfirmOrder)
		r.With(orm.admin).Post("/{id}/mark-paid", orm.MarkPaid)
	})
}
