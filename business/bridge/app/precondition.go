package app

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
)

// BalancePrecondition rejects operations the signer cannot pay for before
// anything is submitted.
type BalancePrecondition struct {
	chain  Chain
	tokens *TokenReader
}

// NewBalancePrecondition creates a new BalancePrecondition.
func NewBalancePrecondition(chain Chain, tokens *TokenReader) *BalancePrecondition {
	return &BalancePrecondition{chain: chain, tokens: tokens}
}

// EnsureSufficientGas reads the native balance of account and fails with
// InsufficientFunds below minimum. The balance is returned for later cost
// checks.
func (p *BalancePrecondition) EnsureSufficientGas(ctx context.Context, account common.Address, minimum *big.Int) (*big.Int, error) {
	balance, err := p.chain.BalanceAt(ctx, account)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeEthereumRPCError, "read native balance")
	}
	if balance.Cmp(minimum) < 0 {
		return balance, apperror.New(apperror.CodeInsufficientFunds,
			apperror.WithContext(fmt.Sprintf("balance %s < %s",
				asset.NewAmount(asset.ETH, balance), asset.NewAmount(asset.ETH, minimum))))
	}
	return balance, nil
}

// EnsureCovers checks an already-read balance against a worst-case cost.
func (p *BalancePrecondition) EnsureCovers(balance, cost *big.Int) error {
	if balance.Cmp(cost) < 0 {
		return apperror.New(apperror.CodeInsufficientFunds,
			apperror.WithContext(fmt.Sprintf("balance %s < worst-case cost %s",
				asset.NewAmount(asset.ETH, balance), asset.NewAmount(asset.ETH, cost))))
	}
	return nil
}

// EnsureTokenBalance fails with InsufficientTokenFunds when account holds
// less than need of token.
func (p *BalancePrecondition) EnsureTokenBalance(ctx context.Context, token *asset.Asset, account common.Address, need *big.Int) error {
	balance, err := p.tokens.BalanceOf(ctx, token.Address(), account)
	if err != nil {
		return err
	}
	have, want := asset.NewAmount(token, balance), asset.NewAmount(token, need)
	if !have.Covers(want) {
		return apperror.New(apperror.CodeInsufficientTokenFunds,
			apperror.WithContext(fmt.Sprintf("balance %s < %s", have, want)))
	}
	return nil
}
