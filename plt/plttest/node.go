// Package plttest provides an in-memory ledger node for tests.
package plttest

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/plt"
)

// Node is an in-memory ledger. Transaction statuses are served from a queue
// per hash so tests can script the progression to finality; a submitted
// transaction without a script finalizes successfully on the first poll,
// reporting a transfer event for each of its token operations.
type Node struct {
	mu         sync.Mutex
	Decimals   map[string]uint8
	Balances   map[plt.AccountAddress]map[string]string
	Nonces     map[plt.AccountAddress]uint64
	AccountErr error
	statuses   map[string][]*plt.TransactionStatus
	sent       []*plt.SignedTransaction
	calls      int
}

// NewNode knows a single token, EUDemo, with two decimals.
func NewNode() *Node {
	return &Node{
		Decimals: map[string]uint8{"EUDemo": 2},
		Balances: make(map[plt.AccountAddress]map[string]string),
		Nonces:   make(map[plt.AccountAddress]uint64),
		statuses: make(map[string][]*plt.TransactionStatus),
	}
}

func (n *Node) GetAccountInfo(ctx context.Context, addr plt.AccountAddress) (*plt.AccountInfo, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.AccountErr != nil {
		return nil, n.AccountErr
	}

	info := &plt.AccountInfo{Address: addr}
	for tokenID, units := range n.Balances[addr] {
		var t plt.AccountToken
		t.TokenID = tokenID
		t.State.Balance.Value = units
		t.State.Balance.Decimals = n.Decimals[tokenID]
		info.Tokens = append(info.Tokens, t)
	}
	return info, nil
}

func (n *Node) GetTokenInfo(ctx context.Context, tokenID string) (*plt.TokenInfo, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++

	decimals, ok := n.Decimals[tokenID]
	if !ok {
		return nil, fmt.Errorf("%w %q", lib.ErrUnknownToken, tokenID)
	}
	info := &plt.TokenInfo{TokenID: tokenID}
	info.State.Decimals = decimals
	return info, nil
}

func (n *Node) GetNextSequenceNumber(ctx context.Context, addr plt.AccountAddress) (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.Nonces[addr] + 1, nil
}

func (n *Node) SendBlockItem(ctx context.Context, tx *plt.SignedTransaction) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.sent = append(n.sent, tx)
	n.Nonces[tx.Header.Sender] = tx.Header.Nonce
	hash := tx.Hash()
	if _, ok := n.statuses[hash]; !ok {
		status := Finalized(true, "")
		if tokenID, ops, err := plt.ParseTokenUpdatePayload(tx.Payload); err == nil {
			for _, op := range ops {
				status.Outcome.Transfers = append(status.Outcome.Transfers,
					transfer(tokenID, tx.Header.Sender, op.Recipient, op.Amount))
			}
		}
		n.statuses[hash] = []*plt.TransactionStatus{status}
	}
	return hash, nil
}

func (n *Node) GetTransactionStatus(ctx context.Context, hash string) (*plt.TransactionStatus, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++

	queue, ok := n.statuses[hash]
	if !ok || len(queue) == 0 {
		return nil, lib.NotFound("transaction", hash)
	}
	status := queue[0]
	if len(queue) > 1 {
		n.statuses[hash] = queue[1:]
	}
	return status, nil
}

// Script sets the statuses hash reports, in order. The last one repeats.
func (n *Node) Script(hash string, statuses ...*plt.TransactionStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses[hash] = statuses
}

// Calls counts every request the node has served.
func (n *Node) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// Sent returns the submitted transactions in order.
func (n *Node) Sent() []*plt.SignedTransaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*plt.SignedTransaction(nil), n.sent...)
}

func Pending(status string) *plt.TransactionStatus {
	return &plt.TransactionStatus{Status: status}
}

func Finalized(success bool, reason string) *plt.TransactionStatus {
	return &plt.TransactionStatus{
		Status:  plt.StatusFinalized,
		Outcome: &plt.TransactionOutcome{Success: success, RejectReason: reason, BlockHash: "b10c"},
	}
}

// Paid is a successful finalization moving amount of tokenID between two
// accounts.
func Paid(tokenID string, from, to plt.AccountAddress, amount plt.TokenAmount) *plt.TransactionStatus {
	status := Finalized(true, "")
	status.Outcome.Transfers = []plt.TokenTransfer{transfer(tokenID, from, to, amount)}
	return status
}

func transfer(tokenID string, from, to plt.AccountAddress, amount plt.TokenAmount) plt.TokenTransfer {
	return plt.TokenTransfer{
		TokenID: tokenID,
		From:    from,
		To:      to,
		Amount:  plt.TokenUnits{Value: strconv.FormatUint(amount.Value, 10), Decimals: amount.Decimals},
	}
}

// Address derives a deterministic account address from b.
func Address(b byte) plt.AccountAddress {
	var a plt.AccountAddress
	for i := range a {
		a[i] = b ^ byte(i*7)
	}
	return a
}
