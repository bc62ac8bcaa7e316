package postgres

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
)

// setupTestDB starts a PostgreSQL container and applies the embedded migrations.
func setupTestDB(t *testing.T) *Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(ctx, pool))
	// second run must be a no-op
	require.NoError(t, RunMigrations(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return pool
}

func pendingRecord(hash string) *domain.TransactionRecord {
	return domain.NewPendingRecord(uuid.New(), domain.KindTokenTransfer, &blockchainDomain.SubmittedTx{
		Hash:     common.HexToHash(hash),
		From:     common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		To:       common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"),
		GasLimit: domain.GasLimitIssue,
		GasPrice: big.NewInt(100_000_000_000),
	}, time.Now().UTC().Truncate(time.Microsecond))
}

func TestRecordStore(t *testing.T) {
	pool := setupTestDB(t)
	store := NewRecordStore(pool)
	ctx := context.Background()

	t.Run("append and resolve", func(t *testing.T) {
		pending := pendingRecord("0xaa01")
		require.NoError(t, store.Append(ctx, pending))

		got, err := store.Latest(ctx, pending.Hash)
		require.NoError(t, err)
		assert.Equal(t, pending.ID, got.ID)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Equal(t, pending.From, got.From)
		assert.Equal(t, uint64(domain.GasLimitIssue), got.GasLimit)
		assert.Nil(t, got.BlockNumber)

		final, err := pending.Resolve(&blockchainDomain.Receipt{
			TxHash:            pending.Hash,
			BlockNumber:       19_000_000,
			Status:            1,
			GasUsed:           52_000,
			EffectiveGasPrice: big.NewInt(90_000_000_000),
		}, 3, time.Now().UTC().Truncate(time.Microsecond))
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, final))

		got, err = store.Latest(ctx, pending.Hash)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, got.Status)
		require.NotNil(t, got.BlockNumber)
		assert.Equal(t, uint64(19_000_000), *got.BlockNumber)
		require.NotNil(t, got.GasUsed)
		assert.Equal(t, uint64(52_000), *got.GasUsed)
		assert.Equal(t, uint64(3), got.Confirmations)
		assert.Equal(t, 0, got.EffectiveGasPrice.Cmp(big.NewInt(90_000_000_000)))

		history, err := store.History(ctx, pending.Hash)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, domain.StatusPending, history[0].Status)
		assert.Equal(t, domain.StatusConfirmed, history[1].Status)

		again, err := pending.Resolve(&blockchainDomain.Receipt{BlockNumber: 19_000_001, Status: 0}, 1, time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, store.Append(ctx, again), domain.ErrDuplicateKey)
	})

	t.Run("duplicate pending", func(t *testing.T) {
		pending := pendingRecord("0xaa02")
		require.NoError(t, store.Append(ctx, pending))
		assert.ErrorIs(t, store.Append(ctx, pendingRecord("0xaa02")), domain.ErrDuplicateKey)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.Latest(ctx, common.HexToHash("0xdead"))
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("invalid record rejected", func(t *testing.T) {
		assert.Error(t, store.Append(ctx, &domain.TransactionRecord{}))
	})
}
