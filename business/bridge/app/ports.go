// Package app contains the bridge pipeline: gas pricing, balance
// preconditions, submission, confirmation and outcome reporting.
package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingDomain "github.com/fd1az/usdt-bridge/business/pricing/domain"
)

//go:generate mockgen -source=ports.go -destination=mock/ports.go -package=mock_app

// Chain is the read side of the node used by the pipeline.
type Chain interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)

	// TransactionReceipt returns blockchain domain.ErrNotFound while pending.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*blockchainDomain.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Submitter signs and broadcasts from the bridge account.
type Submitter interface {
	Address() common.Address
	Submit(ctx context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error)
}

// Quoter prices fiat conversions and router swaps.
type Quoter interface {
	Quote(amountUSD decimal.Decimal) (pricingDomain.FiatQuote, error)
	EstimateSwap(ctx context.Context, router common.Address, path []common.Address, amountIn *big.Int) (*pricingDomain.SwapQuote, error)
}

// RecordStore is the append-only transaction record log.
type RecordStore interface {
	// Append returns domain.ErrDuplicateKey when the hash already has a
	// record in the same lifecycle phase.
	Append(ctx context.Context, rec *domain.TransactionRecord) error

	// Latest returns domain.ErrRecordNotFound for unknown hashes.
	Latest(ctx context.Context, hash common.Hash) (*domain.TransactionRecord, error)

	// History returns every record for hash in append order, empty for
	// unknown hashes.
	History(ctx context.Context, hash common.Hash) ([]*domain.TransactionRecord, error)
}

// RecordObserver is notified after a record is stored.
type RecordObserver interface {
	Publish(rec *domain.TransactionRecord)
}
