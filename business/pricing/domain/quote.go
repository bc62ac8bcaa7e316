// Package domain contains the core domain types for the pricing context.
package domain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Fiat conversion terms: the customer receives 99% of the USD amount in USDT
// and the remaining 1% is the bridge commission.
var (
	ConversionRate = decimal.RequireFromString("0.99")
	CommissionRate = decimal.RequireFromString("0.01")
)

// RateLabel is the human-readable conversion rate.
const RateLabel = "1 USD = 0.99 USDT"

// DefaultSlippageBps is the tolerated output shortfall for router swaps (5%).
const DefaultSlippageBps uint32 = 500

const bpsDenominator = 10_000

var (
	ErrNegativeAmount = errors.New("pricing: amount must not be negative")
	ErrInvalidPath    = errors.New("pricing: swap path must be two distinct non-zero token addresses")
	ErrSlippageBps    = errors.New("pricing: slippage must be below 10000 bps")
)

// FiatQuote is the USD to USDT conversion offered to a customer.
type FiatQuote struct {
	AmountUSD  decimal.Decimal
	AmountUSDT decimal.Decimal
	Commission decimal.Decimal
	Rate       string
}

// NewFiatQuote prices amountUSD. Zero is a valid (empty) quote.
func NewFiatQuote(amountUSD decimal.Decimal) (FiatQuote, error) {
	if amountUSD.IsNegative() {
		return FiatQuote{}, ErrNegativeAmount
	}
	return FiatQuote{
		AmountUSD:  amountUSD,
		AmountUSDT: amountUSD.Mul(ConversionRate),
		Commission: amountUSD.Mul(CommissionRate),
		Rate:       RateLabel,
	}, nil
}

// SwapQuote is a router price for an exact-input swap.
type SwapQuote struct {
	AmountIn           *big.Int
	AmountOutEstimated *big.Int
	MinAmountOut       *big.Int
	Path               []common.Address
	SlippageBps        uint32
}

// NewSwapQuote derives the minimum acceptable output with integer
// arithmetic: est * (10000 - bps) / 10000, rounded down.
func NewSwapQuote(amountIn, estimated *big.Int, path []common.Address, slippageBps uint32) (*SwapQuote, error) {
	if slippageBps >= bpsDenominator {
		return nil, ErrSlippageBps
	}
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	minOut := new(big.Int).Mul(estimated, big.NewInt(int64(bpsDenominator-slippageBps)))
	minOut.Quo(minOut, big.NewInt(bpsDenominator))

	return &SwapQuote{
		AmountIn:           new(big.Int).Set(amountIn),
		AmountOutEstimated: new(big.Int).Set(estimated),
		MinAmountOut:       minOut,
		Path:               append([]common.Address(nil), path...),
		SlippageBps:        slippageBps,
	}, nil
}

// ValidatePath accepts exactly one hop between two distinct tokens.
func ValidatePath(path []common.Address) error {
	if len(path) != 2 {
		return ErrInvalidPath
	}
	zero := common.Address{}
	if path[0] == zero || path[1] == zero || path[0] == path[1] {
		return ErrInvalidPath
	}
	return nil
}
