package ui

import (
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

// Message types for progress updates

// RecordMsg is sent when a transaction record of the running operation is
// stored.
type RecordMsg struct {
	Record *domain.TransactionRecord
}

// DoneMsg is sent when the operation returns. Result may be set alongside
// Err for mined but reverted transactions.
type DoneMsg struct {
	Result *domain.BridgeResult
	Err    error
}
