package plt

import (
	"net/http"

	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/services"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/go-chi/chi/v5"
)

// GetBalance handles GET /plt/balance/{tokenId}/{account}
func (prm *PltRoutesManager) GetBalance(w http.ResponseWriter, r *http.Request) {
	tokenID := chi.URLParam(r, "tokenId")
	account := chi.URLParam(r, "account")

	balance, err := prm.pltService.GetBalance(r.Context(), tokenID, account)
	if err != nil {
		handling.HandleError(err, "failed to fetch balance", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, structs.BalanceResponse{Balance: balance})
}

// GetTransaction handles GET /plt/transactions/{hash}
func (prm *PltRoutesManager) GetTransaction(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if err := lib.ValidateVar(hash, "hash", "required,hexadecimal,len=64"); err != nil {
		handling.HandleError(err, "invalid transaction hash", prm.logger, w, r)
		return
	}

	status, err := prm.pltService.GetTransactionStatus(r.Context(), hash)
	if err != nil {
		handling.HandleError(err, "failed to fetch transaction status", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, services.OutcomeView(status))
}

// Transfer handles POST /plt/transfer, paid from the shop's own wallet.
func (prm *PltRoutesManager) Transfer(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[structs.TransferRequest](r)
	if err != nil {
		handling.HandleError(err, "invalid transfer", prm.logger, w, r)
		return
	}
	amount, ok := req.AmountLiteral()
	if !ok {
		handling.HandleError(lib.Invalid("amountDecimal", "must be a number"), "invalid transfer", prm.logger, w, r)
		return
	}

	result, err := prm.pltService.TransferFromServiceWallet(r.Context(), req.TokenID, req.Recipient, amount)
	if err != nil {
		handling.HandleError(err, "transfer failed", prm.logger, w, r)
		return
	}
	handling.Respond(w, r, http.StatusOK, result)
}
