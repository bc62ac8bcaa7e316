package asset

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrNilAsset       = errors.New("asset: nil asset")
	ErrNegativeAmount = errors.New("asset: negative amount")
)

// Amount is an immutable quantity of an asset in base units (wei, micro-USDT).
type Amount struct {
	raw   *big.Int
	asset *Asset
}

// NewAmount wraps a raw base unit value. It panics on nil or negative input.
func NewAmount(a *Asset, raw *big.Int) Amount {
	if a == nil {
		panic(ErrNilAsset)
	}
	if raw == nil || raw.Sign() < 0 {
		panic(ErrNegativeAmount)
	}
	return Amount{raw: new(big.Int).Set(raw), asset: a}
}

// Raw returns a copy of the base unit value.
func (a Amount) Raw() *big.Int {
	if a.raw == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.raw)
}

// Covers reports whether a is at least need. Amounts of different assets
// never cover each other.
func (a Amount) Covers(need Amount) bool {
	if !a.asset.Equals(need.asset) {
		return false
	}
	return a.Raw().Cmp(need.Raw()) >= 0
}

// ToDecimal converts to a human decimal. Display only.
func (a Amount) ToDecimal() decimal.Decimal {
	if a.asset == nil {
		return decimal.Zero
	}
	return FromBaseUnits(a.raw, a.asset.Decimals())
}

// String renders e.g. "1.5 ETH".
func (a Amount) String() string {
	if a.asset == nil {
		return "0 ???"
	}
	return a.ToDecimal().String() + " " + a.asset.Symbol()
}
