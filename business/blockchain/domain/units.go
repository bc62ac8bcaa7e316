package domain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/fd1az/usdt-bridge/internal/asset"
)

const (
	gweiDecimals  = 9
	etherDecimals = 18
)

// Gwei converts wei to gwei.
func Gwei(wei *big.Int) decimal.Decimal {
	return asset.FromBaseUnits(wei, gweiDecimals)
}

// Ether converts wei to ether.
func Ether(wei *big.Int) decimal.Decimal {
	return asset.FromBaseUnits(wei, etherDecimals)
}

// GweiToWei converts a whole gwei amount to wei.
func GweiToWei(gwei int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(gwei), big.NewInt(1e9))
}

// TxCost returns gas * price in wei.
func TxCost(gas uint64, price *big.Int) *big.Int {
	if price == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), price)
}
