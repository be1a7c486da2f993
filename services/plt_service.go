package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
	"github.com/cenkalti/backoff/v4"
)

var errNotFinal = errors.New("transaction not finalized")

// PltService wraps the ledger node for balances, transfer payloads and
// server-signed transfers.
type PltService struct {
	logger *gecho.Logger
	node   plt.Node
	cfg    *structs.LedgerConfig
	wallet *structs.WalletConfig
}

func NewPltService(logger *gecho.Logger, node plt.Node, cfg *structs.LedgerConfig, wallet *structs.WalletConfig) *PltService {
	return &PltService{
		logger: logger,
		node:   node,
		cfg:    cfg,
		wallet: wallet,
	}
}

// GetBalance returns the account's holding of tokenID as a decimal string,
// "0" when the account holds none.
func (ps *PltService) GetBalance(ctx context.Context, tokenID, account string) (string, error) {
	addr, err := plt.ParseAccountAddress(account)
	if err != nil {
		return "", lib.Invalid("account", err.Error())
	}

	info, err := ps.node.GetAccountInfo(ctx, addr)
	if err != nil {
		ps.logger.Error("Failed to fetch account info", gecho.Field("account", account), gecho.Field("error", err))
		return "", err
	}

	balance, ok, err := info.Balance(tokenID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "0", nil
	}
	return balance, nil
}

// tokenAmount resolves the token's decimals and converts amount into it.
func (ps *PltService) tokenAmount(ctx context.Context, tokenID, amount string) (plt.TokenAmount, error) {
	info, err := ps.node.GetTokenInfo(ctx, tokenID)
	if err != nil {
		return plt.TokenAmount{}, err
	}
	return plt.ParseTokenAmount(amount, info.State.Decimals)
}

// PrepareBuyerTransfer builds the unsigned single transfer operation the
// buyer's wallet signs and submits. Nothing reaches the ledger besides the
// token metadata lookup.
func (ps *PltService) PrepareBuyerTransfer(ctx context.Context, in structs.PrepareTransferInput) (*structs.PreparedTransfer, error) {
	amount, err := ps.tokenAmount(ctx, in.TokenID, in.AmountDecimal)
	if err != nil {
		return nil, err
	}

	if _, err := plt.ParseAccountAddress(in.Sender); err != nil {
		return nil, err
	}
	recipient, err := plt.ParseAccountAddress(in.Recipient)
	if err != nil {
		return nil, err
	}

	ops := plt.Operations{{Recipient: recipient, Amount: amount}}
	encoded, err := ops.Hex()
	if err != nil {
		return nil, err
	}

	ps.logger.Debug("Prepared buyer transfer",
		gecho.Field("token", in.TokenID),
		gecho.Field("sender", in.Sender),
		gecho.Field("recipient", in.Recipient),
		gecho.Field("amount", amount.String()),
	)
	return &structs.PreparedTransfer{TokenID: in.TokenID, Operations: encoded}, nil
}

// TransferFromServiceWallet sends tokens from the shop's own account, read
// from the wallet export file, and waits for finalization.
func (ps *PltService) TransferFromServiceWallet(ctx context.Context, tokenID, recipient, amountDecimal string) (*structs.TransferResult, error) {
	signer, err := plt.LoadWallet(ps.wallet.ExportPath)
	if err != nil {
		ps.logger.Error("Failed to load service wallet", gecho.Field("path", ps.wallet.ExportPath), gecho.Field("error", err))
		return nil, err
	}

	to, err := plt.ParseAccountAddress(recipient)
	if err != nil {
		return nil, err
	}
	amount, err := ps.tokenAmount(ctx, tokenID, amountDecimal)
	if err != nil {
		return nil, err
	}

	ops := plt.Operations{{Recipient: to, Amount: amount, Memo: ps.cfg.Memo}}
	encoded, err := ops.Encode()
	if err != nil {
		return nil, err
	}

	hash, err := plt.SubmitTokenUpdate(ctx, ps.node, signer, tokenID, encoded, len(ops))
	if err != nil {
		ps.logger.Error("Failed to submit transfer", gecho.Field("token", tokenID), gecho.Field("error", err))
		return nil, err
	}
	ps.logger.Info("Transfer submitted",
		gecho.Field("tx_hash", hash),
		gecho.Field("token", tokenID),
		gecho.Field("recipient", recipient),
		gecho.Field("amount", amount.String()),
	)

	status, err := ps.WaitForFinalization(ctx, hash)
	if err != nil {
		return nil, err
	}
	return &structs.TransferResult{TxHash: hash, Outcome: OutcomeView(status)}, nil
}

// GetTransactionStatus reports the node's current view of a transaction.
func (ps *PltService) GetTransactionStatus(ctx context.Context, hash string) (*plt.TransactionStatus, error) {
	return ps.node.GetTransactionStatus(ctx, hash)
}

// WaitForFinalization polls the node until hash is finalized, the
// finalization timeout passes or ctx ends. Unknown hashes are polled too, a
// freshly submitted transaction may not be visible yet.
func (ps *PltService) WaitForFinalization(ctx context.Context, hash string) (*plt.TransactionStatus, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = ps.cfg.PollInterval
	b.MaxInterval = ps.cfg.PollInterval
	b.Multiplier = 1
	b.RandomizationFactor = 0
	b.MaxElapsedTime = ps.cfg.FinalizationTimeout

	var status *plt.TransactionStatus
	start := time.Now()

	err := backoff.RetryNotify(func() error {
		s, err := ps.node.GetTransactionStatus(ctx, hash)
		if err != nil {
			if errors.Is(err, lib.ErrNotFound) {
				return err
			}
			return backoff.Permanent(err)
		}
		if !s.Final() {
			return fmt.Errorf("%w: %s is %s", errNotFinal, hash, s.Status)
		}
		status = s
		return nil
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		ps.logger.Debug("Transaction not final yet", gecho.Field("tx_hash", hash), gecho.Field("reason", err.Error()))
	})
	if err != nil {
		ps.logger.Warn("Finalization wait ended without result",
			gecho.Field("tx_hash", hash),
			gecho.Field("waited", time.Since(start)),
			gecho.Field("error", err),
		)
		return nil, err
	}

	ps.logger.Info("Transaction finalized",
		gecho.Field("tx_hash", hash),
		gecho.Field("success", status.Outcome != nil && status.Outcome.Success),
		gecho.Field("waited", time.Since(start)),
	)
	return status, nil
}

// OutcomeView flattens a ledger status for responses.
func OutcomeView(s *plt.TransactionStatus) *structs.TxOutcomeView {
	view := &structs.TxOutcomeView{Status: s.Status}
	if s.Outcome != nil {
		view.Success = s.Outcome.Success
		view.RejectReason = s.Outcome.RejectReason
		view.BlockHash = s.Outcome.BlockHash
	}
	return view
}
