package products

import (
	"net/http"

	"github.com/Arihaan/ZKShop/services"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	admin          func(http.Handler) http.Handler
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	admin func(http.Handler) http.Handler,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		admin:          admin,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/{id}", prm.FetchProductByID)

	r.Group(func(r chi.Router) {
		r.Use(prm.admin)
		r.Post("/products", prm.CreateProduct)
		r.Put("/products/{id}", prm.UpdateProduct)
		r.Delete("/products/{id}", prm.DeleteProduct)
	})
}
