package cart

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/go-chi/chi/v5"
)

func (crm *CartRoutesManager) NewSession(w http.ResponseWriter, r *http.Request) {
	session, err := crm.cartService.NewSession(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to create cart", crm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusCreated, structs.CartSessionResponse{Session: session})
}

func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	cart, err := crm.cartService.Load(r.Context(), session)
	if err != nil {
		handling.HandleError(err, "failed to load cart", crm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, cart.View(session))
}

func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	req, err := lib.ExtractAndValidateBody[structs.AddCartItemRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid cart item", crm.logger, w, r)
		return
	}

	cart, err := crm.cartService.AddItem(r.Context(), session, *req.ProductID)
	if err != nil {
		handling.HandleError(err, "failed to add cart item", crm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, cart.View(session))
}

// RemoveItem drops one unit, or every unit with ?all=true.
func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	productID, err := handling.PathID(r, "productId")
	if err != nil {
		handling.HandleError(err, "invalid product id", crm.logger, w, r)
		return
	}

	cart, err := crm.cartService.RemoveItem(r.Context(), session, productID, handling.QueryBool(r, "all"))
	if err != nil {
		handling.HandleError(err, "failed to remove cart item", crm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, cart.View(session))
}

func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := crm.cartService.Clear(r.Context(), chi.URLParam(r, "session")); err != nil {
		handling.HandleError(err, "failed to clear cart", crm.logger, w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
