// Package memory provides an in-memory transaction record store.
package memory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/usdt-bridge/business/bridge/app"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

// Compile-time interface check.
var _ app.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of app.RecordStore.
type RecordStore struct {
	mu   sync.RWMutex
	data map[common.Hash][]*domain.TransactionRecord // keyed by tx hash, in append order
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		data: make(map[common.Hash][]*domain.TransactionRecord),
	}
}

// Append adds a record. Returns ErrDuplicateKey when the hash already has a
// record of the same phase (pending or terminal).
func (s *RecordStore) Append(_ context.Context, rec *domain.TransactionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data[rec.Hash] {
		if existing.ID == rec.ID || existing.Status.IsTerminal() == rec.Status.IsTerminal() {
			return domain.ErrDuplicateKey
		}
	}

	cp := *rec
	s.data[rec.Hash] = append(s.data[rec.Hash], &cp)
	return nil
}

// Latest returns the most recent record for hash.
func (s *RecordStore) Latest(_ context.Context, hash common.Hash) (*domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[hash]
	if len(records) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	cp := *records[len(records)-1]
	return &cp, nil
}

// History returns every record for hash in append order.
func (s *RecordStore) History(_ context.Context, hash common.Hash) ([]*domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.data[hash]
	out := make([]*domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}
