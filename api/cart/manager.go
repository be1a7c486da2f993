package cart

import (
	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
}

func NewCartRoutesManager(logger *gecho.Logger, cartService *services.CartService) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Post("/", crm.NewSession)
		r.Get("/{session}", crm.GetCart)
		r.Delete("/{session}", crm.ClearCart)
		r.Post("/{session}/items", crm.AddItem)
		r.Delete("/{session}/items/{productId}", crm.RemoveItem)
	})
}
