package domain

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
)

// Store errors for the append-only record store.
var (
	ErrRecordNotFound = errors.New("bridge: transaction record not found")
	ErrDuplicateKey   = errors.New("bridge: duplicate key: append-only store does not allow updates")
	ErrInvalidRecord  = errors.New("bridge: invalid record")
	ErrNotPending     = errors.New("bridge: record is not pending")
)

// Status is the lifecycle state of a submitted transaction.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusFailed    Status = "Failed"
)

// IsTerminal reports whether the status can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// Kind is what a transaction does on-chain.
type Kind string

const (
	KindTokenTransfer  Kind = "token_transfer"
	KindNativeTransfer Kind = "native_transfer"
	KindApprove        Kind = "approve"
	KindSwap           Kind = "swap"
)

// Method is the contract method (or "transfer" for native sends) a kind
// invokes.
func (k Kind) Method() string {
	switch k {
	case KindApprove:
		return "approve"
	case KindSwap:
		return "swapExactTokensForTokens"
	default:
		return "transfer"
	}
}

// TransactionRecord is one immutable observation of a transaction. A
// transaction produces a Pending record at submission and exactly one
// terminal record afterwards.
type TransactionRecord struct {
	ID                uuid.UUID
	OperationID       uuid.UUID
	Hash              common.Hash
	Kind              Kind
	Status            Status
	BlockNumber       *uint64
	GasUsed           *uint64
	GasLimit          uint64
	EffectiveGasPrice *big.Int
	Confirmations     uint64
	From              common.Address
	To                common.Address
	CreatedAt         time.Time
}

// NewPendingRecord records a transaction the node has accepted.
func NewPendingRecord(operationID uuid.UUID, kind Kind, tx *blockchainDomain.SubmittedTx, now time.Time) *TransactionRecord {
	return &TransactionRecord{
		ID:                uuid.New(),
		OperationID:       operationID,
		Hash:              tx.Hash,
		Kind:              kind,
		Status:            StatusPending,
		GasLimit:          tx.GasLimit,
		EffectiveGasPrice: copyInt(tx.GasPrice),
		From:              tx.From,
		To:                tx.To,
		CreatedAt:         now,
	}
}

// Resolve returns the terminal record for a mined receipt. The receiver is
// left untouched.
func (r *TransactionRecord) Resolve(receipt *blockchainDomain.Receipt, confirmations uint64, now time.Time) (*TransactionRecord, error) {
	if r.Status != StatusPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPending, r.Hash.Hex(), r.Status)
	}
	if receipt.TxHash != (common.Hash{}) && receipt.TxHash != r.Hash {
		return nil, fmt.Errorf("%w: receipt %s for %s", ErrInvalidRecord, receipt.TxHash.Hex(), r.Hash.Hex())
	}

	status := StatusConfirmed
	if !receipt.Succeeded() {
		status = StatusFailed
	}

	block, gasUsed := receipt.BlockNumber, receipt.GasUsed
	price := r.EffectiveGasPrice
	if receipt.EffectiveGasPrice != nil && receipt.EffectiveGasPrice.Sign() > 0 {
		price = receipt.EffectiveGasPrice
	}

	return &TransactionRecord{
		ID:                uuid.New(),
		OperationID:       r.OperationID,
		Hash:              r.Hash,
		Kind:              r.Kind,
		Status:            status,
		BlockNumber:       &block,
		GasUsed:           &gasUsed,
		GasLimit:          r.GasLimit,
		EffectiveGasPrice: copyInt(price),
		Confirmations:     confirmations,
		From:              r.From,
		To:                r.To,
		CreatedAt:         now,
	}, nil
}

// Fee is gasUsed * effective price, zero while pending.
func (r *TransactionRecord) Fee() *big.Int {
	if r.GasUsed == nil {
		return new(big.Int)
	}
	return blockchainDomain.TxCost(*r.GasUsed, r.EffectiveGasPrice)
}

// Validate checks the fields every stored record needs.
func (r *TransactionRecord) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil", ErrInvalidRecord)
	case r.ID == uuid.Nil:
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	case r.Hash == (common.Hash{}):
		return fmt.Errorf("%w: missing hash", ErrInvalidRecord)
	case r.Status != StatusPending && !r.Status.IsTerminal():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, r.Status)
	case r.Status.IsTerminal() && r.BlockNumber == nil:
		return fmt.Errorf("%w: terminal record without block", ErrInvalidRecord)
	}
	return nil
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
