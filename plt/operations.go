package plt

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBOR tags of the ledger's token operation encoding.
const (
	tagDecimalFraction    = 4
	tagEncodedCBOR        = 24
	tagTokenHolder        = 40307
	tagCoinInfo           = 40305
	coinInfoConcordium    = 919
	holderKeyCoinInfo     = 1
	holderKeyAddress      = 3
	coinInfoKeyCoinType   = 1
	operationTypeTransfer = "transfer"
)

var encMode cbor.EncMode

func init() {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("plt: cbor encoding mode: %v", err))
	}
	encMode = mode
}

// Transfer is a single token transfer operation.
type Transfer struct {
	Recipient AccountAddress
	Amount    TokenAmount
	Memo      string // optional, encoded as a CBOR text string
}

// Operations is an ordered list of token operations for one TokenUpdate.
type Operations []Transfer

// Encode returns the deterministic CBOR encoding of the operation list.
func (ops Operations) Encode() ([]byte, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("token update needs at least one operation")
	}

	list := make([]any, 0, len(ops))
	for _, op := range ops {
		body := map[string]any{
			"amount":    encodeAmount(op.Amount),
			"recipient": encodeHolder(op.Recipient),
		}
		if op.Memo != "" {
			memo, err := encMode.Marshal(op.Memo)
			if err != nil {
				return nil, fmt.Errorf("encode memo: %w", err)
			}
			body["memo"] = cbor.Tag{Number: tagEncodedCBOR, Content: memo}
		}
		list = append(list, map[string]any{operationTypeTransfer: body})
	}

	out, err := encMode.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode token operations: %w", err)
	}
	return out, nil
}

// Hex returns the hex form of Encode, the representation wallets accept.
func (ops Operations) Hex() (string, error) {
	raw, err := ops.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// encodeAmount renders a decimal fraction [-decimals, units].
func encodeAmount(a TokenAmount) cbor.Tag {
	return cbor.Tag{
		Number:  tagDecimalFraction,
		Content: []any{-int64(a.Decimals), a.Value},
	}
}

func encodeHolder(addr AccountAddress) cbor.Tag {
	return cbor.Tag{
		Number: tagTokenHolder,
		Content: map[uint64]any{
			holderKeyCoinInfo: cbor.Tag{
				Number:  tagCoinInfo,
				Content: map[uint64]any{coinInfoKeyCoinType: uint64(coinInfoConcordium)},
			},
			holderKeyAddress: addr[:],
		},
	}
}
