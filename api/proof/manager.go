package proof

import (
	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProofRoutesManager struct {
	logger       *gecho.Logger
	proofService *services.ProofService
}

func NewProofRoutesManager(logger *gecho.Logger, proofService *services.ProofService) *ProofRoutesManager {
	return &ProofRoutesManager{
		logger:       logger,
		proofService: proofService,
	}
}

func (prm *ProofRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/proof", func(r chi.Router) {
		r.Get("/statement/age18", prm.GetAge18Statement)
		r.Get("/statement/uk", prm.GetUKStatement)
		r.Get("/challenge", prm.GetChallenge)
		r.Post("/verify", prm.Verify)
	})
}
