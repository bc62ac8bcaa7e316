package app

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	mock_app "github.com/fd1az/usdt-bridge/business/bridge/app/mock"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingApp "github.com/fd1az/usdt-bridge/business/pricing/app"
	mock_pricing "github.com/fd1az/usdt-bridge/business/pricing/app/mock"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/contracts"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

type SwapExecutorTestSuite struct {
	suite.Suite

	mockChain     *mock_app.MockChain
	mockSubmitter *mock_app.MockSubmitter
	mockRouter    *mock_pricing.MockRouterQuoter
	executor      *SwapExecutor
	plan          domain.GasPlan
	request       SwapRequest
}

func TestRunSwapExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(SwapExecutorTestSuite))
}

func (s *SwapExecutorTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockChain = mock_app.NewMockChain(ctrl)
	s.mockSubmitter = mock_app.NewMockSubmitter(ctrl)
	s.mockRouter = mock_pricing.NewMockRouterQuoter(ctrl)

	log := logger.NewDiscard()
	quoter := pricingApp.NewPricingService(s.mockRouter, log)
	waiter := NewConfirmationWaiter(s.mockChain, testPoll, nil, nil, log)
	s.executor = NewSwapExecutor(quoter, s.mockSubmitter, waiter, 1, nil, nil, log)

	s.plan = domain.NewGasPlan(gwei(10), domain.MultiplierSwap, domain.GasLimitSwap)
	s.request = SwapRequest{
		TokenIn:   usdcAddr,
		TokenOut:  usdtAddr,
		AmountIn:  big.NewInt(1_000_000),
		Router:    routerAddr,
		Recipient: recipientAddr,
	}
}

func (s *SwapExecutorTestSuite) expectQuote(out int64) {
	s.mockRouter.EXPECT().
		AmountsOut(gomock.Any(), routerAddr, s.request.AmountIn, []common.Address{usdcAddr, usdtAddr}).
		Return([]*big.Int{s.request.AmountIn, big.NewInt(out)}, nil)
}

func (s *SwapExecutorTestSuite) expectApproval(status uint64) {
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error) {
			s.Equal(usdcAddr, req.To)
			s.Equal(domain.GasLimitApprove, req.GasLimit)

			args, err := contracts.DecodeTransfer(req.Data)
			s.Require().NoError(err)
			s.Equal("approve", args.Method)
			s.Equal(routerAddr, args.To)
			s.Equal(0, args.Amount.Cmp(s.request.AmountIn))
			return submitted("0xa1", req), nil
		})
	s.mockChain.EXPECT().TransactionReceipt(gomock.Any(), common.HexToHash("0xa1")).
		Return(receipt("0xa1", 50, status, 46_000), nil)
	s.mockChain.EXPECT().BlockNumber(gomock.Any()).Return(uint64(50), nil)
}

func (s *SwapExecutorTestSuite) Test_Swap_PassesMinAmountOutUnchanged() {
	s.expectQuote(1000)
	s.expectApproval(blockchainDomain.ReceiptStatusSuccessful)

	var swapArgs contracts.SwapArgs
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error) {
			s.Equal(routerAddr, req.To)
			s.Equal(domain.GasLimitSwap, req.GasLimit)
			s.Equal(0, req.GasPrice.Cmp(gwei(20)))

			var err error
			swapArgs, err = contracts.DecodeSwapExactTokensForTokens(req.Data)
			s.Require().NoError(err)
			return submitted("0xb2", req), nil
		})

	outcome, err := s.executor.Swap(context.Background(), s.request, s.plan)

	s.Require().NoError(err)
	s.Equal(int64(950), outcome.Quote.MinAmountOut.Int64())
	s.Equal(int64(950), swapArgs.AmountOutMin.Int64())
	s.Equal(0, swapArgs.AmountIn.Cmp(s.request.AmountIn))
	s.Equal([]common.Address{usdcAddr, usdtAddr}, swapArgs.Path)
	s.Equal(recipientAddr, swapArgs.To)
	s.Equal(outcome.Deadline, swapArgs.Deadline.Int64())
	s.Equal(domain.StatusConfirmed, outcome.Approval.Status)
	s.Equal(domain.StatusPending, outcome.Swap.Status)
	s.Equal(domain.KindSwap, outcome.Swap.Kind)
}

func (s *SwapExecutorTestSuite) Test_Swap_FailedApprovalStops() {
	s.expectQuote(1000)
	s.expectApproval(blockchainDomain.ReceiptStatusFailed)

	outcome, err := s.executor.Swap(context.Background(), s.request, s.plan)

	s.Equal(apperror.CodeTransactionReverted, apperror.GetCode(err))
	s.Require().NotNil(outcome)
	s.Equal(domain.StatusFailed, outcome.Approval.Status)
	s.Nil(outcome.Swap)
}

func (s *SwapExecutorTestSuite) Test_Swap_InvalidPathBeforeAnyCall() {
	req := s.request
	req.TokenOut = req.TokenIn

	_, err := s.executor.Swap(context.Background(), req, s.plan)
	s.Equal(apperror.CodeInvalidPath, apperror.GetCode(err))

	req = s.request
	req.TokenIn = common.Address{}
	_, err = s.executor.Swap(context.Background(), req, s.plan)
	s.Equal(apperror.CodeInvalidPath, apperror.GetCode(err))

	req = s.request
	req.Router = common.Address{}
	_, err = s.executor.Swap(context.Background(), req, s.plan)
	s.Equal(apperror.CodeInvalidPath, apperror.GetCode(err))
}

func (s *SwapExecutorTestSuite) Test_Swap_QuoteFailureSubmitsNothing() {
	s.mockRouter.EXPECT().AmountsOut(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.New(apperror.CodeContractCallFailed))

	_, err := s.executor.Swap(context.Background(), s.request, s.plan)

	s.Equal(apperror.CodeUniswapQuoteFailed, apperror.GetCode(err))
}
