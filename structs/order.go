package structs

type CreateOrderRequest struct {
	ProductID   *int64 `json:"productId" validate:"required,gt=0"`
	Buyer       string `json:"buyer" validate:"required"`
	AmountPence *int64 `json:"amountPence" validate:"required,gte=0"`
}

type ConfirmOrderRequest struct {
	TxHash string `json:"txHash" validate:"required,hexadecimal,len=64"`
}

type OrderStatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	TxHash string `json:"tx_hash,omitempty"`
}
