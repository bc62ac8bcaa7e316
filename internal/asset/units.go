package asset

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit conversion errors
var (
	ErrNotNumeric        = errors.New("asset: amount is not a finite number")
	ErrNonPositiveAmount = errors.New("asset: amount must be greater than zero")
)

// ParseDecimal parses user supplied decimal text with no range check.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrNotNumeric
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return d, nil
}

// ParseAmount parses user supplied decimal text into a strictly positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}

// ToBaseUnits scales a human decimal amount by 10^decimals. Digits beyond the
// token precision are truncated toward zero, so the result is never larger
// than the requested amount. Zero, negative and sub-unit amounts are rejected.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	scaled := amount.Shift(int32(decimals)).Truncate(0)
	if !scaled.IsPositive() {
		return nil, fmt.Errorf("%w: %s is below one base unit at %d decimals",
			ErrNonPositiveAmount, amount.String(), decimals)
	}

	return scaled.BigInt(), nil
}

// FromBaseUnits converts an integer base unit amount back to a decimal.
func FromBaseUnits(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}

// FormatUnits renders value/10^decimals with trailing zeros removed.
func FormatUnits(value *big.Int, decimals uint8) string {
	return FromBaseUnits(value, decimals).String()
}
