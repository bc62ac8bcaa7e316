package app

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingDomain "github.com/fd1az/usdt-bridge/business/pricing/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
	"github.com/fd1az/usdt-bridge/internal/cache"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// Config holds the addresses and tunables of the bridge pipeline.
type Config struct {
	USDT             common.Address
	USDC             common.Address
	Router           common.Address
	MinConfirmations uint64
	PollInterval     time.Duration
	SwapWaitTimeout  time.Duration
	DemoAmount       decimal.Decimal
	DecimalsTTL      time.Duration
	ExplorerURL      string
}

// Deps are the ports the service is built from. Store, Observer and
// DecimalsCache are optional.
type Deps struct {
	Chain         Chain
	Submitter     Submitter
	Quoter        Quoter
	Store         RecordStore
	Observer      RecordObserver
	DecimalsCache *cache.Cache[common.Address, uint8]
	Logger        logger.LoggerInterface
}

// IssueRequest asks for amount USDT to be sent to Recipient.
type IssueRequest struct {
	Amount    decimal.Decimal
	Recipient string
}

// SwapCommand asks for a USDC to USDT swap delivered to Destination, or a
// native demo transfer when Demo is set.
type SwapCommand struct {
	Amount      decimal.Decimal
	Destination string
	Demo        bool
}

// BridgeService runs one bridge operation end to end. It is shared by the
// HTTP API and the CLI harness.
type BridgeService struct {
	cfg       Config
	chain     Chain
	signer    Submitter
	quoter    Quoter
	store     RecordStore
	tokens    *TokenReader
	gas       *GasPricer
	checks    *BalancePrecondition
	transfers *TransferExecutor
	swaps     *SwapExecutor
	waiter    *ConfirmationWaiter
	reporter  *OutcomeReporter
	logger    logger.LoggerInterface
}

// NewBridgeService wires the pipeline components.
func NewBridgeService(cfg Config, deps Deps) *BridgeService {
	if cfg.MinConfirmations == 0 {
		cfg.MinConfirmations = 1
	}
	if cfg.SwapWaitTimeout <= 0 {
		cfg.SwapWaitTimeout = domain.SwapDeadline
	}

	log := deps.Logger
	tokens := NewTokenReader(deps.Chain, deps.DecimalsCache, cfg.DecimalsTTL)
	waiter := NewConfirmationWaiter(deps.Chain, cfg.PollInterval, deps.Store, deps.Observer, log)

	return &BridgeService{
		cfg:       cfg,
		chain:     deps.Chain,
		signer:    deps.Submitter,
		quoter:    deps.Quoter,
		store:     deps.Store,
		tokens:    tokens,
		gas:       NewGasPricer(deps.Chain, log),
		checks:    NewBalancePrecondition(deps.Chain, tokens),
		transfers: NewTransferExecutor(deps.Submitter, deps.Store, deps.Observer, log),
		swaps:     NewSwapExecutor(deps.Quoter, deps.Submitter, waiter, cfg.MinConfirmations, deps.Store, deps.Observer, log),
		waiter:    waiter,
		reporter:  NewOutcomeReporter(cfg.ExplorerURL),
		logger:    log,
	}
}

// Reporter returns the formatter used for results and failures.
func (s *BridgeService) Reporter() *OutcomeReporter {
	return s.reporter
}

// Quote prices a USD amount. It makes no remote call.
func (s *BridgeService) Quote(amountUSD decimal.Decimal) (pricingDomain.FiatQuote, error) {
	return s.quoter.Quote(amountUSD)
}

// IssueAsOwner transfers amount USDT from the signer's own balance to the
// recipient and waits for confirmation. A mined but reverted transfer
// returns both the result and a TransactionReverted error.
func (s *BridgeService) IssueAsOwner(ctx context.Context, req IssueRequest) (*domain.BridgeResult, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	recipient, err := ParseAddress(req.Recipient)
	if err != nil {
		return nil, err
	}

	opID := uuid.New()
	ctx = WithOperationID(ctx, opID)
	signer := s.signer.Address()

	s.logger.Info(ctx, "issue as owner",
		"operation_id", opID.String(),
		"amount", req.Amount.String(),
		"recipient", recipient.Hex(),
	)

	balance, err := s.checks.EnsureSufficientGas(ctx, signer, domain.MinGasBalance)
	if err != nil {
		return nil, err
	}
	plan := s.gas.Plan(ctx, domain.MultiplierIssue, domain.GasLimitIssue)
	if err := s.checks.EnsureCovers(balance, plan.MaxCost()); err != nil {
		return nil, err
	}

	usdt, err := s.token(ctx, asset.USDT, s.cfg.USDT)
	if err != nil {
		return nil, err
	}
	amount, err := toBaseUnits(req.Amount, usdt.Decimals())
	if err != nil {
		return nil, err
	}
	if err := s.checks.EnsureTokenBalance(ctx, usdt, signer, amount); err != nil {
		return nil, err
	}

	pending, err := s.transfers.Transfer(ctx, usdt.Address(), recipient, amount, plan)
	if err != nil {
		return nil, err
	}
	final, err := s.waiter.Await(ctx, pending, s.cfg.MinConfirmations)
	if err != nil {
		return nil, err
	}

	res := s.reporter.Build(final, ResultInput{
		Type:           domain.ResultIssue,
		Message:        fmt.Sprintf("%s USD issued as %s USDT", req.Amount.String(), req.Amount.String()),
		InputCurrency:  "USD (Fiat)",
		AmountIn:       req.Amount,
		OutputCurrency: "USDT",
		AmountOut:      req.Amount,
		Rate:           "1:1",
		Token:          usdt,
		Signer:         signer,
		Recipient:      recipient,
		Balances:       s.snapshot(ctx, balance, usdt, signer, recipient),
	})
	return s.settle(res, final)
}

// Swap runs the harness operation: a USDC to USDT router swap, or with
// Demo a native transfer of the configured demo amount.
func (s *BridgeService) Swap(ctx context.Context, cmd SwapCommand) (*domain.BridgeResult, error) {
	if err := validateAmount(cmd.Amount); err != nil {
		return nil, err
	}
	destination, err := ParseAddress(cmd.Destination)
	if err != nil {
		return nil, err
	}

	opID := uuid.New()
	ctx = WithOperationID(ctx, opID)

	s.logger.Info(ctx, "swap",
		"operation_id", opID.String(),
		"amount", cmd.Amount.String(),
		"destination", destination.Hex(),
		"demo", cmd.Demo,
	)

	balance, err := s.checks.EnsureSufficientGas(ctx, s.signer.Address(), domain.MinGasBalance)
	if err != nil {
		return nil, err
	}

	if cmd.Demo {
		return s.demo(ctx, cmd, destination, balance)
	}
	return s.swap(ctx, cmd, destination, balance)
}

func (s *BridgeService) demo(ctx context.Context, cmd SwapCommand, destination common.Address, balance *big.Int) (*domain.BridgeResult, error) {
	signer := s.signer.Address()

	value, err := toBaseUnits(s.cfg.DemoAmount, asset.ETH.Decimals())
	if err != nil {
		return nil, err
	}
	plan := s.gas.Plan(ctx, domain.MultiplierDemo, domain.GasLimitNative)
	if err := s.checks.EnsureCovers(balance, new(big.Int).Add(plan.MaxCost(), value)); err != nil {
		return nil, err
	}

	pending, err := s.transfers.TransferNative(ctx, destination, value, plan)
	if err != nil {
		return nil, err
	}
	final, err := s.waiter.Await(ctx, pending, s.cfg.MinConfirmations)
	if err != nil {
		return nil, err
	}

	res := s.reporter.Build(final, ResultInput{
		Type:           domain.ResultDemo,
		Message:        fmt.Sprintf("demo: sent %s ETH in place of a %s USD swap", s.cfg.DemoAmount.String(), cmd.Amount.String()),
		InputCurrency:  "USD",
		AmountIn:       cmd.Amount,
		OutputCurrency: "ETH",
		AmountOut:      s.cfg.DemoAmount,
		Rate:           "demo",
		Signer:         signer,
		Recipient:      destination,
		Balances:       s.snapshot(ctx, balance, nil, signer, destination),
	})
	return s.settle(res, final)
}

func (s *BridgeService) swap(ctx context.Context, cmd SwapCommand, destination common.Address, balance *big.Int) (*domain.BridgeResult, error) {
	signer := s.signer.Address()

	usdc, err := s.token(ctx, asset.USDC, s.cfg.USDC)
	if err != nil {
		return nil, err
	}
	usdt, err := s.token(ctx, asset.USDT, s.cfg.USDT)
	if err != nil {
		return nil, err
	}

	amountIn, err := toBaseUnits(cmd.Amount, usdc.Decimals())
	if err != nil {
		return nil, err
	}
	if err := s.checks.EnsureTokenBalance(ctx, usdc, signer, amountIn); err != nil {
		return nil, err
	}

	plan := s.gas.Plan(ctx, domain.MultiplierSwap, domain.GasLimitSwap)
	worstCase := new(big.Int).Add(plan.MaxCost(), plan.WithGasLimit(domain.GasLimitApprove).MaxCost())
	if err := s.checks.EnsureCovers(balance, worstCase); err != nil {
		return nil, err
	}

	outcome, err := s.swaps.Swap(ctx, SwapRequest{
		TokenIn:   usdc.Address(),
		TokenOut:  usdt.Address(),
		AmountIn:  amountIn,
		Router:    s.cfg.Router,
		Recipient: destination,
	}, plan)

	input := ResultInput{
		Type:           domain.ResultSwap,
		InputCurrency:  "USDC",
		AmountIn:       cmd.Amount,
		OutputCurrency: "USDT",
		Token:          usdt,
		TokenIn:        usdc,
		Signer:         signer,
		Recipient:      destination,
		Router:         s.cfg.Router,
	}
	if outcome != nil && outcome.Quote != nil {
		input.Quote = outcome.Quote
		input.AmountOut = asset.FromBaseUnits(outcome.Quote.MinAmountOut, usdt.Decimals())
		input.Rate = fmt.Sprintf("router estimate %s USDT, minimum %s USDT",
			asset.FormatUnits(outcome.Quote.AmountOutEstimated, usdt.Decimals()), input.AmountOut.String())
	}

	if err != nil {
		if outcome == nil || outcome.Approval == nil || !outcome.Approval.Status.IsTerminal() {
			return nil, err
		}
		// A mined approval is reported with its fee whatever stopped the swap.
		input.Message = "approval confirmed; swap submission failed"
		if outcome.Approval.Status == domain.StatusFailed {
			input.Message = "approval reverted; swap not submitted"
		}
		return s.reporter.Fail(s.reporter.Build(outcome.Approval, input), err), err
	}
	input.Approval = outcome.Approval

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.SwapWaitTimeout)
	defer cancel()

	final, err := s.waiter.Await(waitCtx, outcome.Swap, s.cfg.MinConfirmations)
	if err != nil {
		return nil, err
	}

	input.Message = fmt.Sprintf("swapped %s USDC for at least %s USDT", cmd.Amount.String(), input.AmountOut.String())
	input.Balances = s.snapshot(ctx, balance, usdt, signer, destination)
	return s.settle(s.reporter.Build(final, input), final)
}

// Transaction returns the latest stored record for hash.
func (s *BridgeService) Transaction(ctx context.Context, hash string) (*domain.TransactionRecord, error) {
	if !isHash(hash) {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "transaction hash must be 32 hex bytes")
	}
	if s.store == nil {
		return nil, apperror.NotFound(apperror.CodeRecordNotFound, hash)
	}

	rec, err := s.store.Latest(ctx, common.HexToHash(hash))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, apperror.NotFound(apperror.CodeRecordNotFound, hash)
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "load transaction record")
	}
	return rec, nil
}

// History returns every stored record for hash, pending first.
func (s *BridgeService) History(ctx context.Context, hash string) ([]*domain.TransactionRecord, error) {
	if !isHash(hash) {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "transaction hash must be 32 hex bytes")
	}
	if s.store == nil {
		return nil, apperror.NotFound(apperror.CodeRecordNotFound, hash)
	}

	records, err := s.store.History(ctx, common.HexToHash(hash))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "load transaction history")
	}
	if len(records) == 0 {
		return nil, apperror.NotFound(apperror.CodeRecordNotFound, hash)
	}
	return records, nil
}

// settle turns a Failed terminal record into a TransactionReverted error
// while keeping the result, so the spent gas is still reported.
func (s *BridgeService) settle(res *domain.BridgeResult, final *domain.TransactionRecord) (*domain.BridgeResult, error) {
	if final.Status == domain.StatusConfirmed {
		return res, nil
	}
	err := apperror.New(apperror.CodeTransactionReverted, apperror.WithContext(final.Hash.Hex()))
	return s.reporter.Fail(res, err), err
}

// token resolves a well-known token at the configured address with the
// decimals its contract reports.
func (s *BridgeService) token(ctx context.Context, known *asset.Asset, address common.Address) (*asset.Asset, error) {
	d, err := s.tokens.Decimals(ctx, address)
	if err != nil {
		return nil, err
	}
	return known.WithAddress(address).WithDecimals(d), nil
}

// snapshot reads post-confirmation balances concurrently. Failures only
// leave the entry empty.
func (s *BridgeService) snapshot(ctx context.Context, before *big.Int, token *asset.Asset, signer, recipient common.Address) *BalanceReadings {
	readings := &BalanceReadings{SignerETHBefore: before}

	p := pool.New().WithMaxGoroutines(3)
	p.Go(func() {
		if v, err := s.chain.BalanceAt(ctx, signer); err == nil {
			readings.SignerETH = v
		} else {
			s.logger.Warn(ctx, "balance snapshot failed", "account", signer.Hex(), "error", err)
		}
	})
	if token != nil {
		p.Go(func() {
			if v, err := s.tokens.BalanceOf(ctx, token.Address(), signer); err == nil {
				readings.SignerToken = v
			} else {
				s.logger.Warn(ctx, "balance snapshot failed", "account", signer.Hex(), "token", token.Symbol(), "error", err)
			}
		})
		p.Go(func() {
			if v, err := s.tokens.BalanceOf(ctx, token.Address(), recipient); err == nil {
				readings.RecipientToken = v
			} else {
				s.logger.Warn(ctx, "balance snapshot failed", "account", recipient.Hex(), "token", token.Symbol(), "error", err)
			}
		})
	}
	p.Wait()

	return readings
}
