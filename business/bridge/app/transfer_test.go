package app

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	mock_app "github.com/fd1az/usdt-bridge/business/bridge/app/mock"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/contracts"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

type TransferExecutorTestSuite struct {
	suite.Suite

	mockSubmitter *mock_app.MockSubmitter
	mockStore     *mock_app.MockRecordStore
	mockObserver  *mock_app.MockRecordObserver
	executor      *TransferExecutor
	plan          domain.GasPlan
}

func TestRunTransferExecutorTestSuite(t *testing.T) {
	suite.Run(t, new(TransferExecutorTestSuite))
}

func (s *TransferExecutorTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockSubmitter = mock_app.NewMockSubmitter(ctrl)
	s.mockStore = mock_app.NewMockRecordStore(ctrl)
	s.mockObserver = mock_app.NewMockRecordObserver(ctrl)
	s.executor = NewTransferExecutor(s.mockSubmitter, s.mockStore, s.mockObserver, logger.NewDiscard())
	s.plan = domain.NewGasPlan(gwei(10), domain.MultiplierIssue, domain.GasLimitIssue)
}

func (s *TransferExecutorTestSuite) Test_Transfer_SubmitsERC20Transfer() {
	opID := uuid.New()
	ctx := WithOperationID(context.Background(), opID)
	amount := big.NewInt(25_000_000)

	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error) {
			s.Equal(usdtAddr, req.To)
			s.Equal(domain.GasLimitIssue, req.GasLimit)
			s.Equal(0, req.GasPrice.Cmp(gwei(50)))
			s.Nil(req.Value)

			args, err := contracts.DecodeTransfer(req.Data)
			s.Require().NoError(err)
			s.Equal("transfer", args.Method)
			s.Equal(recipientAddr, args.To)
			s.Equal(0, args.Amount.Cmp(amount))
			return submitted("0x01", req), nil
		})
	s.mockStore.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.mockObserver.EXPECT().Publish(gomock.Any())

	rec, err := s.executor.Transfer(ctx, usdtAddr, recipientAddr, amount, s.plan)

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, rec.Status)
	s.Equal(common.HexToHash("0x01"), rec.Hash)
	s.Equal(opID, rec.OperationID)
	s.Equal(domain.KindTokenTransfer, rec.Kind)
}

func (s *TransferExecutorTestSuite) Test_TransferNative_SendsValue() {
	value := big.NewInt(100_000_000_000_000)
	plan := domain.NewGasPlan(gwei(10), domain.MultiplierDemo, domain.GasLimitNative)

	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error) {
			s.Equal(recipientAddr, req.To)
			s.Equal(0, req.Value.Cmp(value))
			s.Empty(req.Data)
			s.Equal(domain.GasLimitNative, req.GasLimit)
			return submitted("0x02", req), nil
		})
	s.mockStore.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.mockObserver.EXPECT().Publish(gomock.Any())

	rec, err := s.executor.TransferNative(context.Background(), recipientAddr, value, plan)

	s.Require().NoError(err)
	s.Equal(domain.KindNativeTransfer, rec.Kind)
}

func (s *TransferExecutorTestSuite) Test_Transfer_RejectsBeforeSubmit() {
	_, err := s.executor.Transfer(context.Background(), usdtAddr, common.Address{}, big.NewInt(1), s.plan)
	s.Equal(apperror.CodeInvalidAddress, apperror.GetCode(err))

	_, err = s.executor.Transfer(context.Background(), usdtAddr, recipientAddr, big.NewInt(0), s.plan)
	s.Equal(apperror.CodeInvalidAmount, apperror.GetCode(err))
}

func (s *TransferExecutorTestSuite) Test_Transfer_SubmissionError() {
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		Return(nil, apperror.New(apperror.CodeSubmissionError))

	_, err := s.executor.Transfer(context.Background(), usdtAddr, recipientAddr, big.NewInt(1), s.plan)

	s.Equal(apperror.CodeSubmissionError, apperror.GetCode(err))
}

func (s *TransferExecutorTestSuite) Test_Transfer_StoreFailureDoesNotAbort() {
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error) {
			return submitted("0x03", req), nil
		})
	s.mockStore.EXPECT().Append(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateKey)

	rec, err := s.executor.Transfer(context.Background(), usdtAddr, recipientAddr, big.NewInt(1), s.plan)

	s.Require().NoError(err)
	s.Equal(domain.StatusPending, rec.Status)
}

func (s *TransferExecutorTestSuite) Test_Transfer_LogsDecodedRecipient() {
	var buf bytes.Buffer
	executor := NewTransferExecutor(s.mockSubmitter, nil, nil, logger.New(&buf, logger.LevelInfo, "bridge", nil))
	s.mockSubmitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req blockchainDomain.TxRequest) (*blockchainDomain.SubmittedTx, error) {
			return submitted("0x01", req), nil
		})

	_, err := executor.Transfer(context.Background(), usdtAddr, recipientAddr, big.NewInt(25_000_000), s.plan)

	s.Require().NoError(err)
	s.Contains(buf.String(), `"to":"`+usdtAddr.Hex()+`"`)
	s.Contains(buf.String(), `"recipient":"`+recipientAddr.Hex()+`"`)
	s.Contains(buf.String(), `"amount":"25000000"`)
}

func (s *TransferExecutorTestSuite) Test_callFields() {
	approve, err := contracts.PackApprove(routerAddr, big.NewInt(5))
	s.Require().NoError(err)
	swap, err := contracts.PackSwapExactTokensForTokens(contracts.SwapArgs{
		AmountIn:     big.NewInt(1_000_000),
		AmountOutMin: big.NewInt(950_000),
		Path:         []common.Address{usdcAddr, usdtAddr},
		To:           recipientAddr,
		Deadline:     big.NewInt(1),
	})
	s.Require().NoError(err)

	s.Equal([]any{"spender", routerAddr.Hex(), "amount", "5"}, callFields(approve))
	s.Equal([]any{"recipient", recipientAddr.Hex(), "amount", "1000000", "min_amount_out", "950000"}, callFields(swap))
	s.Nil(callFields(nil))
	s.Nil(callFields([]byte{0xde, 0xad, 0xbe, 0xef, 0x00}))
}
