// Package domain contains the core domain types for the bridge context.
package domain

import (
	"math/big"
	"time"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
)

// Gas price multipliers applied to the network estimate.
const (
	MultiplierIssue int64 = 5
	MultiplierSwap  int64 = 2
	MultiplierDemo  int64 = 2
)

// Gas limits per transaction kind.
const (
	GasLimitIssue    uint64 = 250_000
	GasLimitApprove  uint64 = 100_000
	GasLimitSwap     uint64 = 300_000
	GasLimitNative   uint64 = 21_000
	fallbackGasPrice int64  = 20
)

// MinGasBalance is the native balance (0.001 ETH) below which no
// transaction is attempted.
var MinGasBalance = big.NewInt(1_000_000_000_000_000)

// FallbackGasPrice returns the base price used when the node cannot
// estimate one (20 gwei).
func FallbackGasPrice() *big.Int {
	return blockchainDomain.GweiToWei(fallbackGasPrice)
}

// GasPlan is the price and limit a transaction is submitted with.
type GasPlan struct {
	BasePrice      *big.Int
	Multiplier     int64
	EffectivePrice *big.Int
	GasLimit       uint64
	Fallback       bool
}

// NewGasPlan multiplies base by multiplier. A nil or non-positive base is
// replaced by the fallback price, and a multiplier below 1 is treated as 1,
// so EffectivePrice is always positive.
func NewGasPlan(base *big.Int, multiplier int64, gasLimit uint64) GasPlan {
	fallback := false
	if base == nil || base.Sign() <= 0 {
		base = FallbackGasPrice()
		fallback = true
	}
	if multiplier < 1 {
		multiplier = 1
	}
	return GasPlan{
		BasePrice:      new(big.Int).Set(base),
		Multiplier:     multiplier,
		EffectivePrice: new(big.Int).Mul(base, big.NewInt(multiplier)),
		GasLimit:       gasLimit,
		Fallback:       fallback,
	}
}

// WithGasLimit returns a copy of the plan with a different limit.
func (p GasPlan) WithGasLimit(limit uint64) GasPlan {
	p.GasLimit = limit
	return p
}

// MaxCost is the worst-case fee: GasLimit * EffectivePrice.
func (p GasPlan) MaxCost() *big.Int {
	return blockchainDomain.TxCost(p.GasLimit, p.EffectivePrice)
}

// SwapDeadline is how long the router accepts a swap after submission. The
// client stops waiting for the swap at the same horizon.
const SwapDeadline = 5 * time.Minute
