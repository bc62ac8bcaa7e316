// Package ethereum adapts a go-ethereum JSON-RPC client to the blockchain ports.
package ethereum

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/usdt-bridge/business/blockchain/app"
	"github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/circuitbreaker"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

const (
	tracerName = "blockchain.ethereum"
	meterName  = "blockchain.ethereum"
)

var _ app.Node = (*Gateway)(nil)

// RPCClient is the subset of *ethclient.Client the gateway calls.
type RPCClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// gatewayMetrics holds OTEL metric instruments.
type gatewayMetrics struct {
	calls        metric.Int64Counter
	errors       metric.Int64Counter
	latency      metric.Float64Histogram
	gasPriceGwei metric.Float64Gauge
}

// Gateway wraps the node client with tracing, metrics and a circuit breaker
// over read calls. Submissions and receipt polling bypass the breaker so a
// flaky read path never blocks a transaction that is already in flight.
type Gateway struct {
	client RPCClient
	logger logger.LoggerInterface
	cb     *circuitbreaker.CircuitBreaker[any]

	tracer  trace.Tracer
	metrics *gatewayMetrics
}

// NewGateway creates a gateway over client.
func NewGateway(client RPCClient, cbCfg circuitbreaker.Config, log logger.LoggerInterface) (*Gateway, error) {
	g := &Gateway{
		client: client,
		logger: log,
		cb:     circuitbreaker.New[any](cbCfg),
		tracer: otel.Tracer(tracerName),
	}

	if err := g.initMetrics(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Gateway) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	g.metrics = &gatewayMetrics{}

	g.metrics.calls, err = meter.Int64Counter(
		"eth_rpc_calls_total",
		metric.WithDescription("Total JSON-RPC calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	g.metrics.errors, err = meter.Int64Counter(
		"eth_rpc_errors_total",
		metric.WithDescription("Failed JSON-RPC calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return err
	}

	g.metrics.latency, err = meter.Float64Histogram(
		"eth_rpc_latency_ms",
		metric.WithDescription("JSON-RPC call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	g.metrics.gasPriceGwei, err = meter.Float64Gauge(
		"gas_price_gwei",
		metric.WithDescription("Last suggested gas price in gwei"),
		metric.WithUnit("gwei"),
	)
	return err
}

// observe wraps one RPC call in a span and records its metrics.
func observe[T any](ctx context.Context, g *Gateway, method string, fn func(ctx context.Context) (T, error), attrs ...attribute.KeyValue) (T, error) {
	ctx, span := g.tracer.Start(ctx, "eth."+method, trace.WithAttributes(attrs...))
	defer span.End()

	methodAttr := metric.WithAttributes(attribute.String("method", method))
	g.metrics.calls.Add(ctx, 1, methodAttr)

	start := time.Now()
	result, err := fn(ctx)
	g.metrics.latency.Record(ctx, float64(time.Since(start).Milliseconds()), methodAttr)

	if err != nil && !errors.Is(err, ethereum.NotFound) {
		g.metrics.errors.Add(ctx, 1, methodAttr)
		span.RecordError(err)
		span.SetStatus(codes.Error, method+" failed")
	}

	return result, err
}

// guarded runs a read through the circuit breaker.
func guarded[T any](ctx context.Context, g *Gateway, method string, code apperror.Code, fn func(ctx context.Context) (T, error), attrs ...attribute.KeyValue) (T, error) {
	res, err := observe(ctx, g, method, func(ctx context.Context) (any, error) {
		return g.cb.Execute(func() (any, error) {
			return fn(ctx)
		})
	}, attrs...)

	var zero T
	if err != nil {
		return zero, apperror.Wrap(err, code, method)
	}
	return res.(T), nil
}

// ChainID returns the node's chain id.
func (g *Gateway) ChainID(ctx context.Context) (*big.Int, error) {
	return guarded(ctx, g, "chain_id", apperror.CodeEthereumRPCError, g.client.ChainID)
}

// SuggestGasPrice returns the node's legacy gas price estimate.
func (g *Gateway) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := guarded(ctx, g, "suggest_gas_price", apperror.CodeEthereumRPCError, g.client.SuggestGasPrice)
	if err != nil {
		return nil, err
	}
	if price != nil {
		gwei, _ := domain.Gwei(price).Float64()
		g.metrics.gasPriceGwei.Record(ctx, gwei)
	}
	return price, nil
}

// BalanceAt returns the latest native balance of account.
func (g *Gateway) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return guarded(ctx, g, "balance_at", apperror.CodeEthereumRPCError, func(ctx context.Context) (*big.Int, error) {
		return g.client.BalanceAt(ctx, account, nil)
	}, attribute.String("account", account.Hex()))
}

// CallContract executes a read-only call against the latest block.
func (g *Gateway) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return guarded(ctx, g, "call_contract", apperror.CodeContractCallFailed, func(ctx context.Context) ([]byte, error) {
		return g.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	}, attribute.String("to", to.Hex()))
}

// PendingNonceAt returns the next nonce including pending transactions.
func (g *Gateway) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return guarded(ctx, g, "pending_nonce_at", apperror.CodeEthereumRPCError, func(ctx context.Context) (uint64, error) {
		return g.client.PendingNonceAt(ctx, account)
	}, attribute.String("account", account.Hex()))
}

// SendTransaction broadcasts a signed transaction.
func (g *Gateway) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	_, err := observe(ctx, g, "send_transaction", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.client.SendTransaction(ctx, tx)
	}, attribute.String("tx_hash", tx.Hash().Hex()), attribute.Int64("nonce", int64(tx.Nonce())))
	if err != nil {
		return apperror.New(apperror.CodeSubmissionError,
			apperror.WithCause(err),
			apperror.WithContext(tx.Hash().Hex()))
	}
	return nil
}

// TransactionReceipt returns the mined receipt or domain.ErrNotFound.
func (g *Gateway) TransactionReceipt(ctx context.Context, hash common.Hash) (*domain.Receipt, error) {
	r, err := observe(ctx, g, "transaction_receipt", func(ctx context.Context) (*types.Receipt, error) {
		return g.client.TransactionReceipt(ctx, hash)
	}, attribute.String("tx_hash", hash.Hex()))
	if errors.Is(err, ethereum.NotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, apperror.New(apperror.CodeEthereumRPCError,
			apperror.WithCause(err),
			apperror.WithContext("receipt "+hash.Hex()))
	}

	receipt := &domain.Receipt{
		TxHash:            r.TxHash,
		Status:            r.Status,
		GasUsed:           r.GasUsed,
		EffectiveGasPrice: r.EffectiveGasPrice,
	}
	if r.BlockNumber != nil {
		receipt.BlockNumber = r.BlockNumber.Uint64()
	}
	return receipt, nil
}

// BlockNumber returns the chain head.
func (g *Gateway) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := observe(ctx, g, "block_number", g.client.BlockNumber)
	if err != nil {
		return 0, apperror.New(apperror.CodeEthereumRPCError,
			apperror.WithCause(err),
			apperror.WithContext("block number"))
	}
	return n, nil
}
