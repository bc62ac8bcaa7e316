package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/usdt-bridge/api/handlers"
	"github.com/fd1az/usdt-bridge/business/blockchain"
	"github.com/fd1az/usdt-bridge/business/bridge"
	"github.com/fd1az/usdt-bridge/business/bridge/app"
	bridgeDI "github.com/fd1az/usdt-bridge/business/bridge/di"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/infra/broadcast"
	"github.com/fd1az/usdt-bridge/business/pricing"
	pricingApp "github.com/fd1az/usdt-bridge/business/pricing/app"
	"github.com/fd1az/usdt-bridge/internal/config"
	"github.com/fd1az/usdt-bridge/internal/httpclient"
	"github.com/fd1az/usdt-bridge/internal/logger"
	"github.com/fd1az/usdt-bridge/internal/monolith"
)

// backend runs bridge operations either in-process or against a server.
type backend interface {
	Issue(ctx context.Context, amount decimal.Decimal, recipient string) (*domain.BridgeResult, error)
	Swap(ctx context.Context, cmd app.SwapCommand) (*domain.BridgeResult, error)
	// Records streams record updates of in-process operations; nil when
	// the backend cannot observe them.
	Records() (<-chan *domain.TransactionRecord, func())
	Close()
}

// remoteFailure carries a failure envelope returned by the server.
type remoteFailure struct {
	report domain.FailureReport
}

func (e *remoteFailure) Error() string {
	return e.report.Error
}

// failureReport renders err for output, preferring the server's envelope.
func failureReport(err error) domain.FailureReport {
	var rf *remoteFailure
	if errors.As(err, &rf) {
		return rf.report
	}
	return app.NewOutcomeReporter("").BuildFailure(err)
}

// localBackend runs the bridge service in-process with the configured key.
type localBackend struct {
	mono interface{ Close() error }
	svc  *app.BridgeService
	hub  *broadcast.Hub
}

func newLocalBackend(ctx context.Context, opts *options, log logger.LoggerInterface) (*localBackend, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	mono, err := monolith.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create monolith: %w", err)
	}

	modules := []monolith.Module{
		&blockchain.Module{},
		&pricing.Module{},
		&bridge.Module{},
	}
	if err := mono.RegisterModules(modules...); err != nil {
		mono.Close()
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		mono.Close()
		return nil, fmt.Errorf("failed to start modules: %w", err)
	}

	return &localBackend{
		mono: mono,
		svc:  bridgeDI.GetBridgeService(mono.Services()),
		hub:  bridgeDI.GetHub(mono.Services()),
	}, nil
}

func (b *localBackend) Issue(ctx context.Context, amount decimal.Decimal, recipient string) (*domain.BridgeResult, error) {
	return b.svc.IssueAsOwner(ctx, app.IssueRequest{Amount: amount, Recipient: recipient})
}

func (b *localBackend) Swap(ctx context.Context, cmd app.SwapCommand) (*domain.BridgeResult, error) {
	return b.svc.Swap(ctx, cmd)
}

func (b *localBackend) Records() (<-chan *domain.TransactionRecord, func()) {
	return b.hub.Subscribe(0)
}

func (b *localBackend) Close() {
	_ = b.mono.Close()
}

// remoteBackend calls a running bridge server.
type remoteBackend struct {
	client *httpclient.Client
}

func newRemoteBackend(server string, opts *options) (*remoteBackend, error) {
	client, err := httpclient.New(server,
		httpclient.WithProviderName("bridge-server"),
		httpclient.WithRequestTimeout(opts.timeout),
	)
	if err != nil {
		return nil, err
	}
	return &remoteBackend{client: client}, nil
}

func (b *remoteBackend) Issue(ctx context.Context, amount decimal.Decimal, recipient string) (*domain.BridgeResult, error) {
	body := handlers.IssueBody{Amount: &amount, RecipientAddress: recipient}

	var res domain.BridgeResult
	err := b.client.PostJSON(ctx, "/api/uniswap/issue-as-owner", body, &res)
	if err == nil {
		return &res, nil
	}
	return decodeRemoteError(err)
}

func (b *remoteBackend) Swap(context.Context, app.SwapCommand) (*domain.BridgeResult, error) {
	return nil, errors.New("swap runs in local mode only; drop --server")
}

func (b *remoteBackend) Quote(ctx context.Context, amount decimal.Decimal) (handlers.QuoteResponse, error) {
	var q handlers.QuoteResponse
	err := b.client.GetJSON(ctx, "/api/uniswap/quote", url.Values{"amount": {amount.String()}}, &q)
	if err != nil {
		_, err = decodeRemoteError(err)
	}
	return q, err
}

func (b *remoteBackend) Records() (<-chan *domain.TransactionRecord, func()) {
	return nil, func() {}
}

func (b *remoteBackend) Close() {}

// decodeRemoteError turns a non-2xx response into the server's result (for
// reverted transactions) or its failure envelope.
func decodeRemoteError(err error) (*domain.BridgeResult, error) {
	var se *httpclient.StatusError
	if !errors.As(err, &se) {
		return nil, err
	}

	var res domain.BridgeResult
	if json.Unmarshal(se.Body, &res) == nil && res.Transaction.Hash != "" {
		return &res, &remoteFailure{report: domain.FailureReport{
			Error:           res.Error,
			SuggestedAction: res.SuggestedAction,
		}}
	}

	var report domain.FailureReport
	if json.Unmarshal(se.Body, &report) == nil && report.Error != "" {
		return nil, &remoteFailure{report: report}
	}
	return nil, &remoteFailure{report: domain.FailureReport{
		Error: fmt.Sprintf("server returned %d: %s", se.StatusCode, strings.TrimSpace(string(se.Body))),
	}}
}

// localQuote prices an amount without any chain access.
func localQuote(amount decimal.Decimal, log logger.LoggerInterface) (handlers.QuoteResponse, error) {
	q, err := pricingApp.NewPricingService(nil, log).Quote(amount)
	if err != nil {
		return handlers.QuoteResponse{}, err
	}
	return handlers.NewQuoteResponse(q), nil
}
