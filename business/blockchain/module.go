// Package blockchain implements the blockchain bounded context for Ethereum integration.
package blockchain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/usdt-bridge/business/blockchain/app"
	blockchainDI "github.com/fd1az/usdt-bridge/business/blockchain/di"
	"github.com/fd1az/usdt-bridge/business/blockchain/infra/ethereum"
	"github.com/fd1az/usdt-bridge/internal/circuitbreaker"
	"github.com/fd1az/usdt-bridge/internal/config"
	"github.com/fd1az/usdt-bridge/internal/di"
	"github.com/fd1az/usdt-bridge/internal/logger"
	"github.com/fd1az/usdt-bridge/internal/monolith"
)

const chainIDLookupTimeout = 10 * time.Second

// Module implements the blockchain bounded context.
type Module struct{}

// RegisterServices registers all blockchain services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, blockchainDI.Node, func(sr di.ServiceRegistry) app.Node {
		client := sr.Get("ethClient").(*ethclient.Client)
		log := sr.Get("logger").(logger.LoggerInterface)

		cbCfg := circuitbreaker.DefaultConfig("ethereum-rpc")
		cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		}

		gw, err := ethereum.NewGateway(client, cbCfg, log)
		if err != nil {
			panic("failed to create ethereum gateway: " + err.Error())
		}
		return gw
	})

	di.RegisterToken(c, blockchainDI.Signer, func(sr di.ServiceRegistry) app.Submitter {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		node := blockchainDI.GetNode(sr)

		key, err := cfg.Ethereum.SigningKey()
		if err != nil {
			panic(err.Error())
		}

		chainID := new(big.Int).SetUint64(cfg.Ethereum.ChainID)
		if cfg.Ethereum.ChainID == 0 {
			ctx, cancel := context.WithTimeout(context.Background(), chainIDLookupTimeout)
			defer cancel()
			if chainID, err = node.ChainID(ctx); err != nil {
				panic("failed to resolve chain id: " + err.Error())
			}
		}

		return ethereum.NewSigner(key, chainID, node, log)
	})

	di.RegisterToken(c, blockchainDI.BlockchainService, func(sr di.ServiceRegistry) *app.BlockchainService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewBlockchainService(
			blockchainDI.GetNode(sr),
			blockchainDI.GetSigner(sr),
			cfg.Ethereum.ChainID,
			log,
		)
	})

	return nil
}

// Startup verifies the node serves the configured chain.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	svc := blockchainDI.GetBlockchainService(mono.Services())

	chainID, err := svc.VerifyChain(ctx)
	if err != nil {
		return err
	}

	mono.Logger().Info(ctx, "blockchain module started", "chain_id", chainID)
	return nil
}
