package app

import (
	"context"
	"errors"
	"time"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// DefaultPollInterval is how often receipts are polled.
const DefaultPollInterval = 4 * time.Second

// ConfirmationWaiter polls a pending transaction until it is buried under
// enough blocks.
type ConfirmationWaiter struct {
	chain        Chain
	pollInterval time.Duration
	journal      *journal
	now          func() time.Time
	logger       logger.LoggerInterface
}

// NewConfirmationWaiter creates a new ConfirmationWaiter. A non-positive
// interval uses DefaultPollInterval.
func NewConfirmationWaiter(chain Chain, pollInterval time.Duration, store RecordStore, observer RecordObserver, log logger.LoggerInterface) *ConfirmationWaiter {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &ConfirmationWaiter{
		chain:        chain,
		pollInterval: pollInterval,
		journal:      &journal{store: store, observer: observer, logger: log},
		now:          time.Now,
		logger:       log,
	}
}

// Await blocks until pending has minConfirmations, then returns its
// terminal record. Only ctx bounds the wait; expiry abandons the wait but
// the transaction may still be mined.
func (w *ConfirmationWaiter) Await(ctx context.Context, pending *domain.TransactionRecord, minConfirmations uint64) (*domain.TransactionRecord, error) {
	if pending == nil || pending.Status != domain.StatusPending {
		return nil, apperror.New(apperror.CodeInvalidState, apperror.WithContext("await requires a pending record"))
	}
	if minConfirmations == 0 {
		minConfirmations = 1
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		final, err := w.poll(ctx, pending, minConfirmations)
		if err != nil {
			return nil, err
		}
		if final != nil {
			w.journal.record(ctx, final)
			w.logger.Info(ctx, "transaction resolved",
				"operation_id", final.OperationID.String(),
				"hash", final.Hash.Hex(),
				"status", string(final.Status),
				"block", *final.BlockNumber,
				"gas_used", *final.GasUsed,
			)
			return final, nil
		}

		select {
		case <-ctx.Done():
			return nil, apperror.New(apperror.CodeConfirmationTimeout,
				apperror.WithCause(ctx.Err()),
				apperror.WithContext(pending.Hash.Hex()))
		case <-ticker.C:
		}
	}
}

// poll returns nil, nil while the transaction is not yet deep enough.
func (w *ConfirmationWaiter) poll(ctx context.Context, pending *domain.TransactionRecord, minConfirmations uint64) (*domain.TransactionRecord, error) {
	receipt, err := w.chain.TransactionReceipt(ctx, pending.Hash)
	if errors.Is(err, blockchainDomain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		w.logger.Warn(ctx, "receipt poll failed", "hash", pending.Hash.Hex(), "error", err)
		return nil, nil
	}

	head, err := w.chain.BlockNumber(ctx)
	if err != nil {
		w.logger.Warn(ctx, "block number poll failed", "hash", pending.Hash.Hex(), "error", err)
		return nil, nil
	}
	if head < receipt.BlockNumber {
		return nil, nil
	}

	confirmations := head - receipt.BlockNumber + 1
	if confirmations < minConfirmations {
		return nil, nil
	}

	final, err := pending.Resolve(receipt, confirmations, w.now())
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInvalidState, "resolve receipt", err)
	}
	return final, nil
}
