// Package bridge implements the bridge bounded context: USD to USDT issuance
// and USDC to USDT swaps with confirmation tracking.
package bridge

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	blockchainDI "github.com/fd1az/usdt-bridge/business/blockchain/di"
	"github.com/fd1az/usdt-bridge/business/bridge/app"
	bridgeDI "github.com/fd1az/usdt-bridge/business/bridge/di"
	"github.com/fd1az/usdt-bridge/business/bridge/infra/broadcast"
	"github.com/fd1az/usdt-bridge/business/bridge/infra/memory"
	"github.com/fd1az/usdt-bridge/business/bridge/infra/postgres"
	pricingDI "github.com/fd1az/usdt-bridge/business/pricing/di"
	"github.com/fd1az/usdt-bridge/internal/cache"
	"github.com/fd1az/usdt-bridge/internal/config"
	"github.com/fd1az/usdt-bridge/internal/di"
	"github.com/fd1az/usdt-bridge/internal/logger"
	"github.com/fd1az/usdt-bridge/internal/monolith"
)

// Module implements the bridge bounded context.
type Module struct {
	// pool is opened in Startup when the postgres driver is selected.
	pool *postgres.Pool
}

// RegisterServices registers all bridge services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, bridgeDI.Hub, func(di.ServiceRegistry) *broadcast.Hub {
		return broadcast.NewHub()
	})

	di.RegisterToken(c, bridgeDI.RecordStore, func(di.ServiceRegistry) app.RecordStore {
		if m.pool != nil {
			return postgres.NewRecordStore(m.pool)
		}
		return memory.NewRecordStore()
	})

	di.RegisterToken(c, bridgeDI.BridgeService, func(sr di.ServiceRegistry) *app.BridgeService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		var decimals *cache.Cache[common.Address, uint8]
		if cfg.Bridge.DecimalsCacheTTL > 0 {
			decimals = cache.New[common.Address, uint8](cfg.Bridge.DecimalsCacheTTL)
		}

		return app.NewBridgeService(app.Config{
			USDT:             cfg.Tokens.USDT(),
			USDC:             cfg.Tokens.USDC(),
			Router:           cfg.Uniswap.Router(),
			MinConfirmations: cfg.Bridge.MinConfirmations,
			PollInterval:     cfg.Bridge.PollInterval,
			SwapWaitTimeout:  cfg.Bridge.SwapWaitTimeout,
			DemoAmount:       cfg.Bridge.DemoAmount(),
			DecimalsTTL:      cfg.Bridge.DecimalsCacheTTL,
			ExplorerURL:      cfg.Bridge.ExplorerURL,
		}, app.Deps{
			Chain:         blockchainDI.GetNode(sr),
			Submitter:     blockchainDI.GetSigner(sr),
			Quoter:        pricingDI.GetPricingService(sr),
			Store:         bridgeDI.GetRecordStore(sr),
			Observer:      bridgeDI.GetHub(sr),
			DecimalsCache: decimals,
			Logger:        log,
		})
	})

	return nil
}

// Startup opens the record store and builds the bridge service.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()

	if cfg.Storage.Driver == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("open record store: %w", err)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("migrate record store: %w", err)
		}
		m.pool = pool
		mono.OnClose(pool.Close)
	}

	// resolve now so wiring panics surface at startup
	bridgeDI.GetBridgeService(mono.Services())

	mono.Logger().Info(ctx, "bridge module started",
		"storage", cfg.Storage.Driver,
		"signer", blockchainDI.GetSigner(mono.Services()).Address().Hex(),
		"min_confirmations", cfg.Bridge.MinConfirmations,
	)
	return nil
}

// StoreCheck probes the record store for the health server.
func (m *Module) StoreCheck(ctx context.Context) error {
	if m.pool == nil {
		return nil
	}
	return m.pool.Ping(ctx)
}
