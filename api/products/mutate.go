package products

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
)

func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.CreateProductRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid product", prm.logger, w, r)
		return
	}

	id, err := prm.productService.CreateProduct(r.Context(), req)
	if err != nil {
		handling.HandleError(err, "failed to create product", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusCreated, map[string]int64{"id": id})
}

func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w, r)
		return
	}

	req, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid product patch", prm.logger, w, r)
		return
	}

	product, err := prm.productService.UpdateProduct(r.Context(), id, req)
	if err != nil {
		handling.HandleError(err, "failed to update product", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, product)
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.HandleError(err, "invalid product id", prm.logger, w, r)
		return
	}

	deleted, err := prm.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to delete product", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, map[string]bool{"deleted": deleted})
}
