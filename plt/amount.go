package plt

import (
	"fmt"
	"math/big"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/shopspring/decimal"
)

// TokenAmount is an integer count of the token's smallest unit together with
// the token's number of decimals.
type TokenAmount struct {
	Value    uint64
	Decimals uint8
}

// ParseTokenAmount converts a decimal string into the token's integer
// representation. Negative amounts, amounts with more fractional digits than
// the token supports and amounts beyond 2^64-1 units are rejected.
func ParseTokenAmount(s string, decimals uint8) (TokenAmount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return TokenAmount{}, fmt.Errorf("%w %q: not a number", lib.ErrInvalidAmount, s)
	}
	return TokenAmountFromDecimal(d, decimals)
}

func TokenAmountFromDecimal(d decimal.Decimal, decimals uint8) (TokenAmount, error) {
	if d.IsNegative() {
		return TokenAmount{}, fmt.Errorf("%w %s: must not be negative", lib.ErrInvalidAmount, d)
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return TokenAmount{}, fmt.Errorf("%w %s: token supports %d decimals", lib.ErrInvalidAmount, d, decimals)
	}

	units := scaled.BigInt()
	if !units.IsUint64() {
		return TokenAmount{}, fmt.Errorf("%w %s: exceeds the token amount range", lib.ErrInvalidAmount, d)
	}

	return TokenAmount{Value: units.Uint64(), Decimals: decimals}, nil
}

// Decimal returns the amount in whole tokens.
func (a TokenAmount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(a.Value), -int32(a.Decimals))
}

// String renders the amount without trailing zeros, "0" for nothing.
func (a TokenAmount) String() string {
	return a.Decimal().String()
}

// TokenUnits is a raw unit count as the node reports it, e.g. "12345" with
// 2 decimals for 123.45.
type TokenUnits struct {
	Value    string `json:"value"`
	Decimals uint8  `json:"decimals"`
}

// Decimal returns the amount in whole tokens.
func (u TokenUnits) Decimal() (decimal.Decimal, error) {
	v, ok := new(big.Int).SetString(u.Value, 10)
	if !ok || v.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: node reported %q", lib.ErrInvalidAmount, u.Value)
	}
	return decimal.NewFromBigInt(v, -int32(u.Decimals)), nil
}

// FormatUnits renders a raw unit count reported by the node, e.g. "12345"
// with 2 decimals becomes "123.45".
func FormatUnits(units string, decimals uint8) (string, error) {
	d, err := TokenUnits{Value: units, Decimals: decimals}.Decimal()
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
