package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"

	"github.com/fd1az/usdt-bridge/business/bridge/app"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

// RecordStore implements app.RecordStore using PostgreSQL.
type RecordStore struct {
	pool *Pool
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(pool *Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// Compile-time interface check.
var _ app.RecordStore = (*RecordStore)(nil)

const recordColumns = `
	id, operation_id, hash, kind, status,
	block_number, gas_used, gas_limit, effective_gas_price, confirmations,
	from_address, to_address, created_at
`

// Append inserts a record. Returns ErrDuplicateKey when the hash already has
// a row of the same phase.
func (s *RecordStore) Append(ctx context.Context, rec *domain.TransactionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO transaction_records (` + recordColumns + `) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13
		)
	`

	var price *string
	if rec.EffectiveGasPrice != nil {
		p := rec.EffectiveGasPrice.String()
		price = &p
	}

	_, err := s.pool.Exec(ctx, query,
		rec.ID, rec.OperationID, rec.Hash.Hex(), string(rec.Kind), string(rec.Status),
		toInt64(rec.BlockNumber), toInt64(rec.GasUsed), int64(rec.GasLimit), price, int64(rec.Confirmations),
		rec.From.Hex(), rec.To.Hex(), rec.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert transaction record: %w", err)
	}
	return nil
}

// Latest returns the most recently appended record for hash.
func (s *RecordStore) Latest(ctx context.Context, hash common.Hash) (*domain.TransactionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM transaction_records WHERE hash = $1 ORDER BY seq DESC LIMIT 1`

	rec, err := scanRecord(s.pool.QueryRow(ctx, query, hash.Hex()))
	if err != nil {
		if isNotFoundError(err) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get transaction record: %w", err)
	}
	return rec, nil
}

// History returns every record for hash in append order.
func (s *RecordStore) History(ctx context.Context, hash common.Hash) ([]*domain.TransactionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM transaction_records WHERE hash = $1 ORDER BY seq`

	rows, err := s.pool.Query(ctx, query, hash.Hex())
	if err != nil {
		return nil, fmt.Errorf("query transaction records: %w", err)
	}
	defer rows.Close()

	var out []*domain.TransactionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (*domain.TransactionRecord, error) {
	var (
		rec                     domain.TransactionRecord
		hash, kind, status      string
		from, to                string
		block, gasUsed          *int64
		gasLimit, confirmations int64
		price                   *string
	)

	err := row.Scan(
		&rec.ID, &rec.OperationID, &hash, &kind, &status,
		&block, &gasUsed, &gasLimit, &price, &confirmations,
		&from, &to, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Hash = common.HexToHash(hash)
	rec.Kind = domain.Kind(kind)
	rec.Status = domain.Status(status)
	rec.BlockNumber = toUint64(block)
	rec.GasUsed = toUint64(gasUsed)
	rec.GasLimit = uint64(gasLimit)
	rec.Confirmations = uint64(confirmations)
	rec.From = common.HexToAddress(from)
	rec.To = common.HexToAddress(to)
	if price != nil {
		v, ok := new(big.Int).SetString(*price, 10)
		if !ok {
			return nil, fmt.Errorf("invalid effective_gas_price %q", *price)
		}
		rec.EffectiveGasPrice = v
	}
	return &rec, nil
}

func toInt64(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}

func toUint64(v *int64) *uint64 {
	if v == nil {
		return nil
	}
	u := uint64(*v)
	return &u
}
