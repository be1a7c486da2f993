package purchase

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
)

// Purchase handles POST /purchase. It returns the unsigned transfer payload
// for the buyer's wallet and stores nothing; the order is created by a
// separate call.
func (prm *PurchaseRoutesManager) Purchase(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.PurchaseRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid purchase", prm.logger, w, r)
		return
	}
	amount, ok := req.AmountLiteral()
	if !ok {
		handling.HandleError(lib.Invalid("amountDecimal", "must be a number"), "invalid purchase", prm.logger, w, r)
		return
	}

	prm.logger.Debug("Preparing purchase",
		gecho.Field("product_id", *req.ProductID),
		gecho.Field("buyer", req.Buyer),
		gecho.Field("token", req.TokenID),
	)

	prepared, err := prm.pltService.PrepareBuyerTransfer(r.Context(), structs.PrepareTransferInput{
		TokenID:       req.TokenID,
		Sender:        req.Buyer,
		Recipient:     req.Recipient,
		AmountDecimal: amount,
	})
	if err != nil {
		// Every preparation failure is reported as a server error.
		handling.HandleErrorStatus(err, http.StatusInternalServerError, "failed to prepare transfer", prm.logger, w, r)
		return
	}

	handling.Respond(w, r, http.StatusOK, structs.PurchaseResponse{Payload: *prepared})
}
