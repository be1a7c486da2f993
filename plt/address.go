// Package plt builds protocol-level token operations and account
// transactions for the ledger and talks to the ledger node.
package plt

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/mr-tron/base58"
)

const (
	addressVersion  = 0x01
	addressLength   = 32
	checksumLength  = 4
	encodedAddrSize = 1 + addressLength + checksumLength
)

// AccountAddress is the 32 byte account identifier behind the base58check
// string form used by wallets.
type AccountAddress [addressLength]byte

// ParseAccountAddress decodes a base58check account address.
func ParseAccountAddress(s string) (AccountAddress, error) {
	var addr AccountAddress

	raw, err := base58.Decode(s)
	if err != nil {
		return addr, fmt.Errorf("%w %q: %v", lib.ErrInvalidAddress, s, err)
	}
	if len(raw) != encodedAddrSize {
		return addr, fmt.Errorf("%w %q: decoded length %d", lib.ErrInvalidAddress, s, len(raw))
	}
	if raw[0] != addressVersion {
		return addr, fmt.Errorf("%w %q: unsupported version %d", lib.ErrInvalidAddress, s, raw[0])
	}

	payload, sum := raw[:1+addressLength], raw[1+addressLength:]
	if !bytes.Equal(checksum(payload), sum) {
		return addr, fmt.Errorf("%w %q: checksum mismatch", lib.ErrInvalidAddress, s)
	}

	copy(addr[:], payload[1:])
	return addr, nil
}

// String returns the base58check form.
func (a AccountAddress) String() string {
	payload := make([]byte, 0, encodedAddrSize)
	payload = append(payload, addressVersion)
	payload = append(payload, a[:]...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload)
}

func (a AccountAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountAddress) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
