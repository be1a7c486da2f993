package purchase

import (
	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type PurchaseRoutesManager struct {
	logger     *gecho.Logger
	pltService *services.PltService
}

func NewPurchaseRoutesManager(logger *gecho.Logger, pltService *services.PltService) *PurchaseRoutesManager {
	return &PurchaseRoutesManager{
		logger:     logger,
		pltService: pltService,
	}
}

func (prm *PurchaseRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/purchase", prm.Purchase)
}
