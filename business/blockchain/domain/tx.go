// Package domain contains the core domain types for the blockchain context.
package domain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotFound is returned while a transaction receipt is not yet available.
var ErrNotFound = errors.New("blockchain: not found")

// Receipt status values
const (
	ReceiptStatusFailed     uint64 = 0
	ReceiptStatusSuccessful uint64 = 1
)

// TxRequest describes a legacy (EIP-155) transaction before the nonce is
// assigned. Data is nil for native transfers.
type TxRequest struct {
	To       common.Address
	Value    *big.Int
	Data     []byte
	GasLimit uint64
	GasPrice *big.Int
}

// Validate checks the request is submittable.
func (r TxRequest) Validate() error {
	switch {
	case r.To == (common.Address{}):
		return errors.New("transaction recipient is the zero address")
	case r.GasLimit == 0:
		return errors.New("gas limit must be positive")
	case r.GasPrice == nil || r.GasPrice.Sign() <= 0:
		return errors.New("gas price must be positive")
	case r.Value != nil && r.Value.Sign() < 0:
		return errors.New("value must not be negative")
	}
	return nil
}

// SubmittedTx is a signed transaction accepted by the node.
type SubmittedTx struct {
	Hash     common.Hash
	Nonce    uint64
	From     common.Address
	To       common.Address
	Value    *big.Int
	GasLimit uint64
	GasPrice *big.Int
}

// Receipt is the mined outcome of a transaction.
type Receipt struct {
	TxHash            common.Hash
	BlockNumber       uint64
	Status            uint64
	GasUsed           uint64
	EffectiveGasPrice *big.Int
}

// Succeeded reports whether execution did not revert.
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}
