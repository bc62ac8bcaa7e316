// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/fd1az/usdt-bridge/business/pricing/app"
	"github.com/fd1az/usdt-bridge/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PricingService = di.NewToken[*app.PricingService]("pricing.PricingService")
)

// Private dependency tokens - internal to pricing module
var (
	RouterQuoter = di.NewToken[app.RouterQuoter]("pricing:routerQuoter")
)

// Helper functions for type-safe access
func GetPricingService(c di.ServiceRegistry) *app.PricingService {
	return di.GetToken(c, PricingService)
}

func GetRouterQuoter(c di.ServiceRegistry) app.RouterQuoter {
	return di.GetToken(c, RouterQuoter)
}
