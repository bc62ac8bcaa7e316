// Package app contains application services and port definitions for the blockchain context.
package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/fd1az/usdt-bridge/business/blockchain/domain"
)

// Node is the JSON-RPC surface the bridge needs.
type Node interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	// TransactionReceipt returns domain.ErrNotFound while the transaction is
	// pending.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*domain.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Submitter signs and broadcasts transactions from a single account.
type Submitter interface {
	Address() common.Address
	Submit(ctx context.Context, req domain.TxRequest) (*domain.SubmittedTx, error)
}
