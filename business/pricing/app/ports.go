// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -source=ports.go -destination=mock/ports.go -package=mock_app

// RouterQuoter prices exact-input swaps on a Uniswap V2 style router.
type RouterQuoter interface {
	// AmountsOut returns one amount per path entry; the last is the output.
	AmountsOut(ctx context.Context, router common.Address, amountIn *big.Int, path []common.Address) ([]*big.Int, error)
}
