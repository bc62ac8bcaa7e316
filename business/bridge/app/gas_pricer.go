package app

import (
	"context"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// GasPricer turns the node's one-shot fee estimate into a GasPlan.
type GasPricer struct {
	chain  Chain
	logger logger.LoggerInterface
}

// NewGasPricer creates a new GasPricer.
func NewGasPricer(chain Chain, log logger.LoggerInterface) *GasPricer {
	return &GasPricer{chain: chain, logger: log}
}

// Plan never fails: an unavailable estimate falls back to 20 gwei.
func (g *GasPricer) Plan(ctx context.Context, multiplier int64, gasLimit uint64) domain.GasPlan {
	base, err := g.chain.SuggestGasPrice(ctx)
	if err != nil {
		g.logger.Warn(ctx, "gas price estimate unavailable", "error", err)
		base = nil
	}

	plan := domain.NewGasPlan(base, multiplier, gasLimit)
	if plan.Fallback {
		g.logger.Warn(ctx, "using fallback gas price", "base_wei", plan.BasePrice.String())
	}

	g.logger.Debug(ctx, "gas plan",
		"base_wei", plan.BasePrice.String(),
		"multiplier", plan.Multiplier,
		"effective_wei", plan.EffectivePrice.String(),
		"gas_limit", plan.GasLimit,
	)
	return plan
}
