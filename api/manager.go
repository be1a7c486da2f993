package api

import (
	"net/http"

	"github.com/Arihaan/ZKShop/api/cart"
	"github.com/Arihaan/ZKShop/api/health"
	"github.com/Arihaan/ZKShop/api/orders"
	"github.com/Arihaan/ZKShop/api/plt"
	"github.com/Arihaan/ZKShop/api/products"
	"github.com/Arihaan/ZKShop/api/proof"
	"github.com/Arihaan/ZKShop/api/purchase"
	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes  *products.ProductRoutesManager
	healthRoutes   *health.HealthRoutesManager
	orderRoutes    *orders.OrderRoutesManager
	pltRoutes      *plt.PltRoutesManager
	purchaseRoutes *purchase.PurchaseRoutesManager
	proofRoutes    *proof.ProofRoutesManager
	cartRoutes     *cart.CartRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, admin func(http.Handler) http.Handler) *routerManager {
	return &routerManager{
		productRoutes:  products.NewProductRoutesManager(logger, sm.ProductService, admin),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		orderRoutes:    orders.NewOrderRoutesManager(logger, sm.OrderService, admin),
		pltRoutes:      plt.NewPltRoutesManager(logger, sm.PltService, admin),
		purchaseRoutes: purchase.NewPurchaseRoutesManager(logger, sm.PltService),
		proofRoutes:    proof.NewProofRoutesManager(logger, sm.ProofService),
		cartRoutes:     cart.NewCartRoutesManager(logger, sm.CartService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.healthRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.pltRoutes.RegisterRoutes(r)
	rm.purchaseRoutes.RegisterRoutes(r)
	rm.proofRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
}
