// Package uniswap prices swaps against a Uniswap V2 style router.
package uniswap

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/usdt-bridge/business/pricing/app"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/contracts"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

const (
	tracerName = "uniswap"
	meterName  = "uniswap"
)

// Ensure Provider implements RouterQuoter.
var _ app.RouterQuoter = (*Provider)(nil)

// ContractCaller executes read-only contract calls against the latest block.
type ContractCaller interface {
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// providerMetrics holds OTEL metric instruments.
type providerMetrics struct {
	quotesTotal  metric.Int64Counter
	quoteLatency metric.Float64Histogram
	quoteErrors  metric.Int64Counter
}

// Provider quotes getAmountsOut on a V2 router.
type Provider struct {
	caller ContractCaller
	logger logger.LoggerInterface

	tracer  trace.Tracer
	metrics *providerMetrics
}

// NewProvider creates a new router quoter.
func NewProvider(caller ContractCaller, log logger.LoggerInterface) (*Provider, error) {
	p := &Provider{
		caller: caller,
		logger: log,
		tracer: otel.Tracer(tracerName),
	}

	if err := p.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	return p, nil
}

func (p *Provider) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	p.metrics = &providerMetrics{}

	p.metrics.quotesTotal, err = meter.Int64Counter(
		"uniswap_quotes_total",
		metric.WithDescription("Total quote requests"),
	)
	if err != nil {
		return err
	}

	p.metrics.quoteLatency, err = meter.Float64Histogram(
		"uniswap_quote_latency_ms",
		metric.WithDescription("Quote request latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.metrics.quoteErrors, err = meter.Int64Counter(
		"uniswap_quote_errors_total",
		metric.WithDescription("Total quote errors"),
	)
	if err != nil {
		return err
	}

	return nil
}

// AmountsOut calls router.getAmountsOut(amountIn, path).
func (p *Provider) AmountsOut(ctx context.Context, router common.Address, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	ctx, span := p.tracer.Start(ctx, "uniswap.get_amounts_out",
		trace.WithAttributes(
			attribute.String("router", router.Hex()),
			attribute.String("amount_in", amountIn.String()),
			attribute.Int("hops", len(path)),
		),
	)
	defer span.End()

	start := time.Now()
	p.metrics.quotesTotal.Add(ctx, 1)
	defer func() {
		p.metrics.quoteLatency.Record(ctx, float64(time.Since(start).Milliseconds()))
	}()

	fail := func(err error) ([]*big.Int, error) {
		p.metrics.quoteErrors.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	data, err := contracts.PackGetAmountsOut(amountIn, path)
	if err != nil {
		return fail(apperror.New(apperror.CodeUniswapQuoteFailed,
			apperror.WithCause(err),
			apperror.WithContext("encode getAmountsOut")))
	}

	out, err := p.caller.CallContract(ctx, router, data)
	if err != nil {
		return fail(apperror.Wrap(err, apperror.CodeContractCallFailed, "router getAmountsOut"))
	}

	amounts, err := contracts.UnpackGetAmountsOut(out)
	if err == nil && len(amounts) == 0 {
		err = fmt.Errorf("empty amounts")
	}
	if err != nil {
		return fail(apperror.New(apperror.CodeInvalidQuote,
			apperror.WithCause(err),
			apperror.WithContext("router response")))
	}

	last := amounts[len(amounts)-1]
	span.SetAttributes(attribute.String("amount_out", last.String()))
	span.SetStatus(codes.Ok, "quote received")

	p.logger.Debug(ctx, "uniswap quote",
		"router", router.Hex(),
		"amount_in", amountIn.String(),
		"amount_out", last.String(),
	)

	return amounts, nil
}
