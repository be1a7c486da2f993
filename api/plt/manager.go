package plt

import (
	"net/http"

	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type PltRoutesManager struct {
	logger     *gecho.Logger
	pltService *services.PltService
	admin      func(http.Handler) http.Handler
}

func NewPltRoutesManager(logger *gecho.Logger, pltService *services.PltService, admin func(http.Handler) http.Handler) *PltRoutesManager {
	return &PltRoutesManager{
		logger:     logger,
		pltService: pltService,
		admin:      admin,
	}
}

func (prm *PltRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/plt", func(r chi.Router) {
		r.Get("/balance/{tokenId}/{account}", prm.GetBalance)
		r.Get("/transactions/{hash}", prm.GetTransaction)
		r.With(prm.admin).Post("/transfer", prm.Transfer)
	})
}
