package structs

import (
	"bytes"
	"encoding/json"
)

// PurchaseRequest is the body of POST /purchase.
type PurchaseRequest struct {
	ProductID     *int64          `json:"productId" validate:"required,gt=0"`
	Buyer         string          `json:"buyer" validate:"required"`
	Recipient     string          `json:"recipient" validate:"required"`
	TokenID       string          `json:"tokenId" validate:"required"`
	AmountDecimal json.RawMessage `json:"amountDecimal" validate:"required"`
}

// AmountLiteral returns the amount exactly as written when it is a JSON
// number, and false for strings, booleans, null and anything else.
func (r *PurchaseRequest) AmountLiteral() (string, bool) {
	return numberLiteral(r.AmountDecimal)
}

// TransferRequest is the body of the server-signed POST /plt/transfer.
type TransferRequest struct {
	TokenID       string          `json:"tokenId" validate:"required"`
	Recipient     string          `json:"recipient" validate:"required"`
	AmountDecimal json.RawMessage `json:"amountDecimal" validate:"required"`
}

func (r *TransferRequest) AmountLiteral() (string, bool) {
	return numberLiteral(r.AmountDecimal)
}

// PrepareTransferInput carries the already validated inputs of a buyer
// signed transfer.
type PrepareTransferInput struct {
	TokenID       string
	Sender        string
	Recipient     string
	AmountDecimal string
}

// PreparedTransfer is an unsigned TokenUpdate payload; Operations is the hex
// encoded CBOR operation list.
type PreparedTransfer struct {
	TokenID    string `json:"tokenId"`
	Operations string `json:"operations"`
}

type PurchaseResponse struct {
	Payload PreparedTransfer `json:"payload"`
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}

type TransferResult struct {
	TxHash  string         `json:"txHash"`
	Outcome *TxOutcomeView `json:"outcome"`
}

type TxOutcomeView struct {
	Status       string `json:"status"`
	Success      bool   `json:"success"`
	RejectReason string `json:"rejectReason,omitempty"`
	BlockHash    string `json:"blockHash,omitempty"`
}

func numberLiteral(raw json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", false
	}
	return n.String(), true
}
