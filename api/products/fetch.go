package products

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
)

// FetchAllProducts handles GET /products, newest first with the seller joined in
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := prm.productService.ListProducts(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch products", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, products)
}

// FetchProductByID handles GET /products/{id}
func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w, r)
		return
	}

	product, err := prm.productService.GetProduct(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch product", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, product)
}
