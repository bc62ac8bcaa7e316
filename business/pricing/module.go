// Package pricing implements the pricing bounded context: fiat conversion
// quotes and router swap quotes.
package pricing

import (
	"context"

	blockchainDI "github.com/fd1az/usdt-bridge/business/blockchain/di"
	"github.com/fd1az/usdt-bridge/business/pricing/app"
	pricingDI "github.com/fd1az/usdt-bridge/business/pricing/di"
	"github.com/fd1az/usdt-bridge/business/pricing/infra/uniswap"
	"github.com/fd1az/usdt-bridge/internal/di"
	"github.com/fd1az/usdt-bridge/internal/logger"
	"github.com/fd1az/usdt-bridge/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, pricingDI.RouterQuoter, func(sr di.ServiceRegistry) app.RouterQuoter {
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := uniswap.NewProvider(blockchainDI.GetNode(sr), log)
		if err != nil {
			panic("failed to create uniswap provider: " + err.Error())
		}
		return provider
	})

	di.RegisterToken(c, pricingDI.PricingService, func(sr di.ServiceRegistry) *app.PricingService {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewPricingService(pricingDI.GetRouterQuoter(sr), log)
	})

	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "pricing module started")
	return nil
}
