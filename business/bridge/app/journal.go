package app

import (
	"context"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// journal stores records and fans them out to the observer. A submitted
// transaction cannot be retracted, so storage failures are logged and never
// abort the operation.
type journal struct {
	store    RecordStore
	observer RecordObserver
	logger   logger.LoggerInterface
}

func (j *journal) record(ctx context.Context, rec *domain.TransactionRecord) {
	if j.store != nil {
		if err := j.store.Append(ctx, rec); err != nil {
			j.logger.Error(ctx, "failed to store transaction record",
				"hash", rec.Hash.Hex(),
				"status", string(rec.Status),
				"error", err,
			)
			return
		}
	}
	if j.observer != nil {
		j.observer.Publish(rec)
	}
}
