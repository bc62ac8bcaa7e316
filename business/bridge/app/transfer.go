package app

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/contracts"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// sender submits a request and journals the resulting Pending record.
type sender struct {
	submitter Submitter
	journal   *journal
	now       func() time.Time
	logger    logger.LoggerInterface
}

func newSender(submitter Submitter, store RecordStore, observer RecordObserver, log logger.LoggerInterface) *sender {
	return &sender{
		submitter: submitter,
		journal:   &journal{store: store, observer: observer, logger: log},
		now:       time.Now,
		logger:    log,
	}
}

func (s *sender) send(ctx context.Context, kind domain.Kind, req blockchainDomain.TxRequest) (*domain.TransactionRecord, error) {
	sub, err := s.submitter.Submit(ctx, req)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeSubmissionError, kind.Method())
	}

	rec := domain.NewPendingRecord(OperationID(ctx), kind, sub, s.now())
	s.journal.record(ctx, rec)

	fields := []any{
		"operation_id", rec.OperationID.String(),
		"kind", string(kind),
		"hash", rec.Hash.Hex(),
		"to", rec.To.Hex(),
	}
	s.logger.Info(ctx, "transaction submitted", append(fields, callFields(req.Data)...)...)
	return rec, nil
}

// callFields decodes the beneficiary and amount out of token and router call
// data. rec.To is the contract, so these are the only place they show up.
func callFields(data []byte) []any {
	if contracts.HasSelector(data, "swapExactTokensForTokens") {
		a, err := contracts.DecodeSwapExactTokensForTokens(data)
		if err != nil {
			return nil
		}
		return []any{"recipient", a.To.Hex(), "amount", a.AmountIn.String(), "min_amount_out", a.AmountOutMin.String()}
	}
	if !contracts.HasSelector(data, "transfer") && !contracts.HasSelector(data, "approve") {
		return nil
	}

	a, err := contracts.DecodeTransfer(data)
	if err != nil {
		return nil
	}
	key := "recipient"
	if a.Method == "approve" {
		key = "spender"
	}
	return []any{key, a.To.Hex(), "amount", a.Amount.String()}
}

// TransferExecutor submits token and native transfers. It returns as soon
// as the node accepts the transaction; confirmation is awaited separately.
type TransferExecutor struct {
	sender *sender
}

// NewTransferExecutor creates a new TransferExecutor. store and observer
// may be nil.
func NewTransferExecutor(submitter Submitter, store RecordStore, observer RecordObserver, log logger.LoggerInterface) *TransferExecutor {
	return &TransferExecutor{sender: newSender(submitter, store, observer, log)}
}

// Transfer calls token.transfer(to, amount).
func (e *TransferExecutor) Transfer(ctx context.Context, token, to common.Address, amount *big.Int, plan domain.GasPlan) (*domain.TransactionRecord, error) {
	if err := validateTarget(token, to, amount); err != nil {
		return nil, err
	}

	data, err := contracts.PackTransfer(to, amount)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInternalError, "encode transfer", err)
	}

	return e.sender.send(ctx, domain.KindTokenTransfer, blockchainDomain.TxRequest{
		To:       token,
		Data:     data,
		GasLimit: plan.GasLimit,
		GasPrice: plan.EffectivePrice,
	})
}

// TransferNative sends amount wei to to.
func (e *TransferExecutor) TransferNative(ctx context.Context, to common.Address, amount *big.Int, plan domain.GasPlan) (*domain.TransactionRecord, error) {
	if err := validateTarget(to, to, amount); err != nil {
		return nil, err
	}

	return e.sender.send(ctx, domain.KindNativeTransfer, blockchainDomain.TxRequest{
		To:       to,
		Value:    amount,
		GasLimit: plan.GasLimit,
		GasPrice: plan.EffectivePrice,
	})
}

func validateTarget(contract, to common.Address, amount *big.Int) error {
	if contract == (common.Address{}) {
		return apperror.Validation(apperror.CodeInvalidAddress, "token address is zero")
	}
	if to == (common.Address{}) {
		return apperror.Validation(apperror.CodeInvalidAddress, "recipient address is zero")
	}
	if amount == nil || amount.Sign() <= 0 {
		return apperror.Validation(apperror.CodeInvalidAmount, "amount must be positive")
	}
	return nil
}
