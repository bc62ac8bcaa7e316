package app

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
)

// ParseAddress accepts a 0x-prefixed 20-byte hex address other than zero.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, apperror.Validation(apperror.CodeInvalidAddress, "address must be 0x-prefixed")
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, apperror.Validation(apperror.CodeInvalidAddress, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, apperror.Validation(apperror.CodeInvalidAddress, "zero address")
	}
	return addr, nil
}

func validateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return apperror.Validation(apperror.CodeInvalidAmount, "amount must be greater than zero")
	}
	return nil
}

// toBaseUnits maps conversion errors, including truncation to zero, to
// InvalidAmount.
func toBaseUnits(d decimal.Decimal, decimals uint8) (*big.Int, error) {
	v, err := asset.ToBaseUnits(d, decimals)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, err.Error())
	}
	return v, nil
}

func isHash(s string) bool {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*common.HashLength {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
