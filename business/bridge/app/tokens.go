package app

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/cache"
	"github.com/fd1az/usdt-bridge/internal/contracts"
)

// TokenReader performs ERC-20 view calls. decimals() of a deployed token
// never changes, so it is cached per address when a cache is supplied.
type TokenReader struct {
	chain    Chain
	decimals *cache.Cache[common.Address, uint8]
	ttl      time.Duration
}

// NewTokenReader creates a new TokenReader. A nil cache reads decimals on
// every call.
func NewTokenReader(chain Chain, decimals *cache.Cache[common.Address, uint8], ttl time.Duration) *TokenReader {
	return &TokenReader{chain: chain, decimals: decimals, ttl: ttl}
}

// Decimals returns token.decimals().
func (r *TokenReader) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	if r.decimals != nil {
		if d, ok := r.decimals.Get(ctx, token); ok {
			return d, nil
		}
	}

	data, err := contracts.PackDecimals()
	if err != nil {
		return 0, apperror.Internal(apperror.CodeContractCallFailed, "encode decimals", err)
	}
	out, err := r.chain.CallContract(ctx, token, data)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.CodeContractCallFailed, "decimals of "+token.Hex())
	}
	d, err := contracts.UnpackDecimals(out)
	if err != nil {
		return 0, apperror.Internal(apperror.CodeContractCallFailed, "decode decimals of "+token.Hex(), err)
	}

	if r.decimals != nil {
		r.decimals.Set(ctx, token, d, r.ttl)
	}
	return d, nil
}

// BalanceOf returns token.balanceOf(account) in base units.
func (r *TokenReader) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	data, err := contracts.PackBalanceOf(account)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeContractCallFailed, "encode balanceOf", err)
	}
	out, err := r.chain.CallContract(ctx, token, data)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeContractCallFailed, "balanceOf on "+token.Hex())
	}
	bal, err := contracts.UnpackBalanceOf(out)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeContractCallFailed, "decode balanceOf", err)
	}
	return bal, nil
}
