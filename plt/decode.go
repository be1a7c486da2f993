package plt

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

type wireTransfer struct {
	Amount    cbor.RawTag  `cbor:"amount"`
	Recipient cbor.RawTag  `cbor:"recipient"`
	Memo      *cbor.RawTag `cbor:"memo,omitempty"`
}

type wireDecimal struct {
	_        struct{} `cbor:",toarray"`
	Exponent int64
	Mantissa uint64
}

// DecodeOperations reverses Operations.Encode. Operations other than
// transfers are rejected.
func DecodeOperations(raw []byte) (Operations, error) {
	var list []map[string]wireTransfer
	if err := cbor.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode token operations: %w", err)
	}

	ops := make(Operations, 0, len(list))
	for i, entry := range list {
		body, ok := entry[operationTypeTransfer]
		if !ok || len(entry) != 1 {
			return nil, fmt.Errorf("decode token operations: operation %d is not a transfer", i)
		}
		op, err := body.decode()
		if err != nil {
			return nil, fmt.Errorf("decode token operations: operation %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (w wireTransfer) decode() (Transfer, error) {
	var op Transfer

	if w.Amount.Number != tagDecimalFraction {
		return op, fmt.Errorf("amount tag %d", w.Amount.Number)
	}
	var amount wireDecimal
	if err := cbor.Unmarshal(w.Amount.Content, &amount); err != nil {
		return op, fmt.Errorf("amount: %w", err)
	}
	if amount.Exponent > 0 || amount.Exponent < -255 {
		return op, fmt.Errorf("amount exponent %d", amount.Exponent)
	}
	op.Amount = TokenAmount{Value: amount.Mantissa, Decimals: uint8(-amount.Exponent)}

	if w.Recipient.Number != tagTokenHolder {
		return op, fmt.Errorf("recipient tag %d", w.Recipient.Number)
	}
	var holder map[uint64]cbor.RawMessage
	if err := cbor.Unmarshal(w.Recipient.Content, &holder); err != nil {
		return op, fmt.Errorf("recipient: %w", err)
	}
	var addr []byte
	if err := cbor.Unmarshal(holder[holderKeyAddress], &addr); err != nil || len(addr) != addressLength {
		return op, fmt.Errorf("recipient address missing or malformed")
	}
	copy(op.Recipient[:], addr)

	if w.Memo != nil {
		var wrapped []byte
		if err := cbor.Unmarshal(w.Memo.Content, &wrapped); err != nil {
			return op, fmt.Errorf("memo: %w", err)
		}
		if err := cbor.Unmarshal(wrapped, &op.Memo); err != nil {
			return op, fmt.Errorf("memo: %w", err)
		}
	}
	return op, nil
}

// ParseTokenUpdatePayload splits a serialized TokenUpdate payload into its
// token id and decoded operations.
func ParseTokenUpdatePayload(payload []byte) (string, Operations, error) {
	if len(payload) < 2 || payload[0] != payloadTypeTokenUpdate {
		return "", nil, fmt.Errorf("not a token update payload")
	}
	idLen := int(payload[1])
	rest := payload[2:]
	if len(rest) < idLen+4 {
		return "", nil, fmt.Errorf("token update payload truncated")
	}
	tokenID := string(rest[:idLen])
	rest = rest[idLen:]

	opsLen := binary.BigEndian.Uint32(rest)
	rest = rest[4:]
	if uint64(len(rest)) != uint64(opsLen) {
		return "", nil, fmt.Errorf("token update payload: operations length %d, have %d bytes", opsLen, len(rest))
	}

	ops, err := DecodeOperations(rest)
	if err != nil {
		return "", nil, err
	}
	return tokenID, ops, nil
}
