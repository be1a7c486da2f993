// Package client talks to a running ZKShop API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Arihaan/ZKShop/structs"
	"github.com/Arihaan/ZKShop/structs/tables"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the shop.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	http       *http.Client
	adminToken string
}

// New returns a client for the API at baseURL, e.g. http://localhost:4000.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithAdminToken makes operator calls carry token as a bearer credential.
func (c *Client) WithAdminToken(token string) *Client {
	c.adminToken = token
	return c
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListProducts(ctx context.Context) ([]tables.Product, error) {
	var products []tables.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*tables.Product, error) {
	var product tables.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Balance(ctx context.Context, tokenID, account string) (string, error) {
	var resp structs.BalanceResponse
	path := "/plt/balance/" + url.PathEscape(tokenID) + "/" + url.PathEscape(account)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Balance, nil
}

func (c *Client) NewCart(ctx context.Context) (string, error) {
	var resp structs.CartSessionResponse
	if err := c.do(ctx, http.MethodPost, "/cart", nil, &resp); err != nil {
		return "", err
	}
	return resp.Session, nil
}

func (c *Client) Cart(ctx context.Context, session string) (*structs.CartView, error) {
	var view structs.CartView
	if err := c.do(ctx, http.MethodGet, "/cart/"+url.PathEscape(session), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) AddToCart(ctx context.Context, session string, productID int64) (*structs.CartView, error) {
	var view structs.CartView
	body := structs.AddCartItemRequest{ProductID: &productID}
	if err := c.do(ctx, http.MethodPost, "/cart/"+url.PathEscape(session)+"/items", body, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, session string, productID int64, all bool) (*structs.CartView, error) {
	var view structs.CartView
	path := fmt.Sprintf("/cart/%s/items/%d", url.PathEscape(session), productID)
	if all {
		path += "?all=true"
	}
	if err := c.do(ctx, http.MethodDelete, path, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) ClearCart(ctx context.Context, session string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(session), nil, nil)
}

// Purchase asks the shop for the unsigned transfer payload.
func (c *Client) Purchase(ctx context.Context, req structs.PurchaseRequest) (*structs.PreparedTransfer, error) {
	var resp structs.PurchaseResponse
	if err := c.do(ctx, http.MethodPost, "/purchase", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Payload, nil
}

func (c *Client) CreateOrder(ctx context.Context, req structs.CreateOrderRequest) (*structs.OrderStatusResponse, error) {
	var resp structs.OrderStatusResponse
	if err := c.do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmOrder blocks until the shop has seen txHash finalize.
func (c *Client) ConfirmOrder(ctx context.Context, id int64, txHash string) (*structs.OrderStatusResponse, error) {
	var resp structs.OrderStatusResponse
	body := structs.ConfirmOrderRequest{TxHash: txHash}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Statement fetches a canned eligibility statement, "age18" or "uk".
func (c *Client) Statement(ctx context.Context, kind string) (json.RawMessage, error) {
	var resp struct {
		Statement json.RawMessage `json:"statement"`
	}
	if err := c.do(ctx, http.MethodGet, "/proof/statement/"+url.PathEscape(kind), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Statement, nil
}

func (c *Client) Challenge(ctx context.Context) (string, error) {
	var resp structs.ChallengeResponse
	if err := c.do(ctx, http.MethodGet, "/proof/challenge", nil, &resp); err != nil {
		return "", err
	}
	return resp.Challenge, nil
}

func (c *Client) Verify(ctx context.Context, statement, presentation json.RawMessage) (bool, error) {
	var resp structs.VerifyResponse
	body := structs.VerifyRequest{Statement: statement, Presentation: presentation}
	if err := c.do(ctx, http.MethodPost, "/proof/verify", body, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}
