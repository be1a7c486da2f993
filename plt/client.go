package plt

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/shopspring/decimal"
)

// Transaction statuses reported by the node.
const (
	StatusReceived  = "received"
	StatusCommitted = "committed"
	StatusFinalized = "finalized"
)

// rpcCodeNotFound is returned by the gateway when a token, account or
// transaction is unknown to the node.
const rpcCodeNotFound = -32004

const maxResponseBytes = 1 << 20

// Node is the subset of the ledger node the shop talks to.
type Node interface {
	GetAccountInfo(ctx context.Context, addr AccountAddress) (*AccountInfo, error)
	GetTokenInfo(ctx context.Context, tokenID string) (*TokenInfo, error)
	GetNextSequenceNumber(ctx context.Context, addr AccountAddress) (uint64, error)
	SendBlockItem(ctx context.Context, tx *SignedTransaction) (string, error)
	GetTransactionStatus(ctx context.Context, hash string) (*TransactionStatus, error)
}

type AccountInfo struct {
	Address AccountAddress `json:"address"`
	Tokens  []AccountToken `json:"tokens"`
}

type AccountToken struct {
	TokenID string `json:"tokenId"`
	State   struct {
		Balance TokenUnits `json:"balance"`
	} `json:"state"`
}

// Balance returns the holding of tokenID formatted as a decimal string, or
// false when the account holds none of it.
func (a *AccountInfo) Balance(tokenID string) (string, bool, error) {
	for _, t := range a.Tokens {
		if t.TokenID != tokenID {
			continue
		}
		s, err := FormatUnits(t.State.Balance.Value, t.State.Balance.Decimals)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	return "", false, nil
}

type TokenInfo struct {
	TokenID string `json:"tokenId"`
	State   struct {
		Decimals uint8 `json:"decimals"`
	} `json:"state"`
}

type TransactionStatus struct {
	Status  string              `json:"status"`
	Outcome *TransactionOutcome `json:"outcome,omitempty"`
}

type TransactionOutcome struct {
	Success      bool            `json:"success"`
	RejectReason string          `json:"rejectReason,omitempty"`
	BlockHash    string          `json:"blockHash,omitempty"`
	Transfers    []TokenTransfer `json:"transfers,omitempty"`
}

// TokenTransfer is a transfer event emitted by a successful token update.
type TokenTransfer struct {
	TokenID string         `json:"tokenId"`
	From    AccountAddress `json:"from"`
	To      AccountAddress `json:"to"`
	Amount  TokenUnits     `json:"amount"`
}

// Received sums what the outcome moved of tokenID from one account to
// another.
func (o *TransactionOutcome) Received(tokenID string, from, to AccountAddress) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range o.Transfers {
		if t.TokenID != tokenID || t.From != from || t.To != to {
			continue
		}
		amount, err := t.Amount.Decimal()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, nil
}

func (s *TransactionStatus) Final() bool {
	return s.Status == StatusFinalized
}

// RPCError is an error object returned by the gateway.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCClient reaches the node through its JSON-RPC gateway.
type RPCClient struct {
	url    string
	client *http.Client
}

// NewRPCClient returns a client for url. A zero timeout leaves calls bounded
// only by their context.
func NewRPCClient(url string, timeout time.Duration) *RPCClient {
	return &RPCClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *RPCClient) GetAccountInfo(ctx context.Context, addr AccountAddress) (*AccountInfo, error) {
	var info AccountInfo
	if err := c.call(ctx, "getAccountInfo", map[string]string{"address": addr.String()}, &info); err != nil {
		return nil, fmt.Errorf("account info %s: %w", addr, err)
	}
	return &info, nil
}

func (c *RPCClient) GetTokenInfo(ctx context.Context, tokenID string) (*TokenInfo, error) {
	var info TokenInfo
	err := c.call(ctx, "getTokenInfo", map[string]string{"tokenId": tokenID}, &info)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == rpcCodeNotFound {
			return nil, fmt.Errorf("%w %q", lib.ErrUnknownToken, tokenID)
		}
		return nil, fmt.Errorf("token info %s: %w", tokenID, err)
	}
	return &info, nil
}

func (c *RPCClient) GetNextSequenceNumber(ctx context.Context, addr AccountAddress) (uint64, error) {
	var res struct {
		Nonce    uint64 `json:"nonce"`
		AllFinal bool   `json:"allFinal"`
	}
	if err := c.call(ctx, "getNextAccountSequenceNumber", map[string]string{"address": addr.String()}, &res); err != nil {
		return 0, fmt.Errorf("next sequence number %s: %w", addr, err)
	}
	return res.Nonce, nil
}

func (c *RPCClient) SendBlockItem(ctx context.Context, tx *SignedTransaction) (string, error) {
	var res struct {
		Hash string `json:"hash"`
	}
	params := map[string]string{"blockItem": hex.EncodeToString(tx.BlockItem())}
	if err := c.call(ctx, "sendBlockItem", params, &res); err != nil {
		return "", fmt.Errorf("send block item: %w", err)
	}
	if res.Hash == "" {
		return tx.Hash(), nil
	}
	return res.Hash, nil
}

func (c *RPCClient) GetTransactionStatus(ctx context.Context, hash string) (*TransactionStatus, error) {
	var status TransactionStatus
	err := c.call(ctx, "getBlockItemStatus", map[string]string{"hash": hash}, &status)
	if err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == rpcCodeNotFound {
			return nil, lib.NotFound("transaction", hash)
		}
		return nil, fmt.Errorf("transaction status %s: %w", hash, err)
	}
	return &status, nil
}

func (c *RPCClient) call(ctx context.Context, method string, params, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read rpc response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal rpc response (http %d): %w", resp.StatusCode, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
