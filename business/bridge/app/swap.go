package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingDomain "github.com/fd1az/usdt-bridge/business/pricing/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/contracts"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// SwapRequest is an exact-input two-hop swap.
type SwapRequest struct {
	TokenIn   common.Address
	TokenOut  common.Address
	AmountIn  *big.Int
	Router    common.Address
	Recipient common.Address
}

// SwapOutcome holds what the executor produced. Approval is terminal; Swap
// is Pending and nil when the swap was never submitted.
type SwapOutcome struct {
	Quote    *pricingDomain.SwapQuote
	Approval *domain.TransactionRecord
	Swap     *domain.TransactionRecord
	Deadline int64
}

// SwapExecutor quotes, approves and swaps through a V2 router.
type SwapExecutor struct {
	quoter           Quoter
	sender           *sender
	waiter           *ConfirmationWaiter
	minConfirmations uint64
	logger           logger.LoggerInterface
}

// NewSwapExecutor creates a new SwapExecutor. The approval is awaited with
// waiter before the swap is submitted.
func NewSwapExecutor(quoter Quoter, submitter Submitter, waiter *ConfirmationWaiter, minConfirmations uint64, store RecordStore, observer RecordObserver, log logger.LoggerInterface) *SwapExecutor {
	return &SwapExecutor{
		quoter:           quoter,
		sender:           newSender(submitter, store, observer, log),
		waiter:           waiter,
		minConfirmations: minConfirmations,
		logger:           log,
	}
}

// Swap submits approve(router, amountIn), waits for it, then submits
// swapExactTokensForTokens with a 5% slippage floor. The router enforces the
// floor and the deadline on-chain.
func (e *SwapExecutor) Swap(ctx context.Context, req SwapRequest, plan domain.GasPlan) (*SwapOutcome, error) {
	path := []common.Address{req.TokenIn, req.TokenOut}
	if err := pricingDomain.ValidatePath(path); err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidPath, err.Error())
	}
	if req.Router == (common.Address{}) {
		return nil, apperror.Validation(apperror.CodeInvalidPath, "router address is zero")
	}
	if req.Recipient == (common.Address{}) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, "recipient address is zero")
	}
	if req.AmountIn == nil || req.AmountIn.Sign() <= 0 {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "swap input must be positive")
	}

	quote, err := e.quoter.EstimateSwap(ctx, req.Router, path, req.AmountIn)
	if err != nil {
		return nil, err
	}
	outcome := &SwapOutcome{Quote: quote}

	approveData, err := contracts.PackApprove(req.Router, req.AmountIn)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInternalError, "encode approve", err)
	}
	approval, err := e.sender.send(ctx, domain.KindApprove, blockchainDomain.TxRequest{
		To:       req.TokenIn,
		Data:     approveData,
		GasLimit: domain.GasLimitApprove,
		GasPrice: plan.EffectivePrice,
	})
	if err != nil {
		return outcome, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, domain.SwapDeadline)
	defer cancel()

	approved, err := e.waiter.Await(waitCtx, approval, e.minConfirmations)
	if err != nil {
		outcome.Approval = approval
		return outcome, err
	}
	outcome.Approval = approved
	if approved.Status == domain.StatusFailed {
		return outcome, apperror.New(apperror.CodeTransactionReverted,
			apperror.WithContext("approval "+approved.Hash.Hex()))
	}

	deadline := e.sender.now().Add(domain.SwapDeadline).Unix()
	swapData, err := contracts.PackSwapExactTokensForTokens(contracts.SwapArgs{
		AmountIn:     req.AmountIn,
		AmountOutMin: quote.MinAmountOut,
		Path:         path,
		To:           req.Recipient,
		Deadline:     big.NewInt(deadline),
	})
	if err != nil {
		return outcome, apperror.Internal(apperror.CodeInternalError, "encode swap", err)
	}

	swap, err := e.sender.send(ctx, domain.KindSwap, blockchainDomain.TxRequest{
		To:       req.Router,
		Data:     swapData,
		GasLimit: plan.GasLimit,
		GasPrice: plan.EffectivePrice,
	})
	if err != nil {
		return outcome, err
	}

	outcome.Swap = swap
	outcome.Deadline = deadline

	e.logger.Info(ctx, "swap submitted",
		"hash", swap.Hash.Hex(),
		"amount_in", req.AmountIn.String(),
		"min_amount_out", quote.MinAmountOut.String(),
		"deadline", deadline,
	)
	return outcome, nil
}
