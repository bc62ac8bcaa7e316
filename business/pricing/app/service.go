package app

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/usdt-bridge/business/pricing/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// PricingService produces fiat conversion quotes and router swap quotes.
type PricingService struct {
	router      RouterQuoter
	slippageBps uint32
	logger      logger.LoggerInterface
}

// NewPricingService creates a new PricingService.
func NewPricingService(router RouterQuoter, log logger.LoggerInterface) *PricingService {
	return &PricingService{
		router:      router,
		slippageBps: domain.DefaultSlippageBps,
		logger:      log,
	}
}

// Quote converts a USD amount at the fixed bridge rate. It never touches the
// chain.
func (s *PricingService) Quote(amountUSD decimal.Decimal) (domain.FiatQuote, error) {
	q, err := domain.NewFiatQuote(amountUSD)
	if err != nil {
		return domain.FiatQuote{}, apperror.Validation(apperror.CodeInvalidAmount, err.Error())
	}
	return q, nil
}

// EstimateSwap asks router for the output of amountIn along path and derives
// the slippage-protected minimum output.
func (s *PricingService) EstimateSwap(ctx context.Context, router common.Address, path []common.Address, amountIn *big.Int) (*domain.SwapQuote, error) {
	if err := domain.ValidatePath(path); err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidPath, err.Error())
	}
	if router == (common.Address{}) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, "router address is zero")
	}
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "swap input must be positive")
	}

	amounts, err := s.router.AmountsOut(ctx, router, amountIn, path)
	if err != nil {
		return nil, apperror.New(apperror.CodeUniswapQuoteFailed,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("getAmountsOut %s -> %s", path[0].Hex(), path[1].Hex())))
	}
	if len(amounts) != len(path) || amounts[len(amounts)-1] == nil || amounts[len(amounts)-1].Sign() <= 0 {
		return nil, apperror.New(apperror.CodeInvalidQuote,
			apperror.WithContext(fmt.Sprintf("router returned %d amounts for a %d token path", len(amounts), len(path))))
	}

	quote, err := domain.NewSwapQuote(amountIn, amounts[len(amounts)-1], path, s.slippageBps)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPath) {
			return nil, apperror.Validation(apperror.CodeInvalidPath, err.Error())
		}
		return nil, apperror.Wrap(err, apperror.CodeInvalidQuote, "swap quote")
	}

	s.logger.Debug(ctx, "swap quote",
		"amount_in", quote.AmountIn.String(),
		"amount_out_estimated", quote.AmountOutEstimated.String(),
		"min_amount_out", quote.MinAmountOut.String(),
	)

	return quote, nil
}
