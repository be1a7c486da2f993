package services

import (
	"github.com/Arihaan/ZKShop/database"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService   *CacheService
	HealthService  *HealthService
	ProductService *ProductService
	OrderService   *OrderService
	PltService     *PltService
	ProofService   *ProofService
	CartService    *CartService
}

// NewServiceManager wires the services around one store handle and one
// ledger client.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, node plt.Node) *ServiceManager {
	cacheService := NewCacheService(logger, cfg.Cache)
	healthService := NewHealthService(logger, db, cacheService, node, cfg.Ledger.DefaultTokenID)
	productService := NewProductService(logger, db, cfg.Database.QueryTimeout)
	pltService := NewPltService(logger, node, cfg.Ledger, cfg.Wallet)
	orderService := NewOrderService(logger, db, pltService, cfg.Ledger.DefaultTokenID, cfg.Database.QueryTimeout)
	proofService := NewProofService(logger, NewAcceptAllVerifier(logger))
	cartService := NewCartService(logger, cacheService, productService, cfg.Cache.CartTTL)

	return &ServiceManager{
		CacheService:   cacheService,
		HealthService:  healthService,
		ProductService: productService,
		OrderService:   orderService,
		PltService:     pltService,
		ProofService:   proofService,
		CartService:    cartService,
	}
}

// Close releases the cache connection pool.
func (sm *ServiceManager) Close() error {
	return sm.CacheService.Close()
}
