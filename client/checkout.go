package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Arihaan/ZKShop/plt"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNotEligible = errors.New("eligibility statement not verified")
)

// Presenter answers an eligibility statement with a presentation for the
// shop's verifier.
type Presenter func(ctx context.Context, statement json.RawMessage, challenge string) (json.RawMessage, error)

// ChallengeEcho is a Presenter for the stub verifier: it presents nothing
// but the challenge and the holder's account.
func ChallengeEcho(account plt.AccountAddress) Presenter {
	return func(ctx context.Context, statement json.RawMessage, challenge string) (json.RawMessage, error) {
		return json.Marshal(map[string]string{"challenge": challenge, "account": account.String()})
	}
}

// VerifyAndAdd puts productID in the cart after every statement the product
// requires has been verified.
func (c *Client) VerifyAndAdd(ctx context.Context, session string, productID int64, present Presenter) (*structs.CartView, error) {
	product, err := c.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var kinds []string
	if product.RequireAge18 {
		kinds = append(kinds, "age18")
	}
	if product.RequireUK {
		kinds = append(kinds, "uk")
	}

	if len(kinds) > 0 {
		challenge, err := c.Challenge(ctx)
		if err != nil {
			return nil, err
		}
		for _, kind := range kinds {
			statement, err := c.Statement(ctx, kind)
			if err != nil {
				return nil, err
			}
			presentation, err := present(ctx, statement, challenge)
			if err != nil {
				return nil, fmt.Errorf("present %s statement: %w", kind, err)
			}
			ok, err := c.Verify(ctx, statement, presentation)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("%w: %s for product %d", ErrNotEligible, kind, productID)
			}
		}
	}

	return c.AddToCart(ctx, session, productID)
}

type CheckoutOptions struct {
	Session   string
	TokenID   string
	Recipient string // seller of the first cart line when empty
}

type CheckoutResult struct {
	TxHash        string
	AmountDecimal string
	Recipient     string
	Orders        []structs.OrderStatusResponse
}

// Checkout pays for the whole cart with a single token transfer: the shop
// prepares the operations, signer signs them, node receives the
// transaction, and one order per cart line is recorded and confirmed
// against the transaction hash. The cart is cleared afterwards.
func (c *Client) Checkout(ctx context.Context, node plt.Node, signer plt.Signer, opts CheckoutOptions) (*CheckoutResult, error) {
	view, err := c.Cart(ctx, opts.Session)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	first := view.Lines[0].Item
	recipient := opts.Recipient
	if recipient == "" {
		recipient = first.Seller
	}
	if _, err := plt.ParseAccountAddress(recipient); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", recipient, err)
	}

	buyer := signer.Address().String()
	amount := decimal.New(view.TotalPence, -2).String()

	prepared, err := c.Purchase(ctx, structs.PurchaseRequest{
		ProductID:     &first.ID,
		Buyer:         buyer,
		Recipient:     recipient,
		TokenID:       opts.TokenID,
		AmountDecimal: json.RawMessage(amount),
	})
	if err != nil {
		return nil, fmt.Errorf("prepare payment: %w", err)
	}

	operations, err := hex.DecodeString(prepared.Operations)
	if err != nil {
		return nil, fmt.Errorf("prepared operations are not hex: %w", err)
	}

	// the shop prepares exactly one transfer
	hash, err := plt.SubmitTokenUpdate(ctx, node, signer, prepared.TokenID, operations, 1)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{TxHash: hash, AmountDecimal: amount, Recipient: recipient}
	for _, line := range view.Lines {
		productID, total := line.Item.ID, line.TotalPence
		order, err := c.CreateOrder(ctx, structs.CreateOrderRequest{
			ProductID:   &productID,
			Buyer:       buyer,
			AmountPence: &total,
		})
		if err != nil {
			return result, fmt.Errorf("record order for product %d: %w", productID, err)
		}

		confirmed, err := c.ConfirmOrder(ctx, order.ID, hash)
		if err != nil {
			return result, fmt.Errorf("confirm order %d: %w", order.ID, err)
		}
		result.Orders = append(result.Orders, *confirmed)
	}

	if err := c.ClearCart(ctx, opts.Session); err != nil {
		return result, fmt.Errorf("clear cart: %w", err)
	}
	return result, nil
}
