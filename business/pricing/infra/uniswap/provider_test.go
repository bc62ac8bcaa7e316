package uniswap_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/usdt-bridge/business/pricing/infra/uniswap"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/contracts"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

var (
	router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	usdc   = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	usdt   = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
)

type callerFunc func(ctx context.Context, to common.Address, data []byte) ([]byte, error)

func (f callerFunc) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return f(ctx, to, data)
}

func packAmounts(t *testing.T, amounts ...*big.Int) []byte {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(contracts.RouterV2ABI))
	require.NoError(t, err)
	out, err := parsed.Methods["getAmountsOut"].Outputs.Pack(amounts)
	require.NoError(t, err)
	return out
}

func TestAmountsOut(t *testing.T) {
	var gotTo common.Address
	var gotData []byte
	caller := callerFunc(func(_ context.Context, to common.Address, data []byte) ([]byte, error) {
		gotTo, gotData = to, data
		return packAmounts(t, big.NewInt(1_000_000), big.NewInt(998_500)), nil
	})

	p, err := uniswap.NewProvider(caller, logger.NewDiscard())
	require.NoError(t, err)

	amounts, err := p.AmountsOut(context.Background(), router, big.NewInt(1_000_000), []common.Address{usdc, usdt})
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	assert.Equal(t, int64(998_500), amounts[1].Int64())
	assert.Equal(t, router, gotTo)
	assert.True(t, contracts.HasSelector(gotData, "getAmountsOut"))
}

func TestAmountsOut_CallFailure(t *testing.T) {
	caller := callerFunc(func(context.Context, common.Address, []byte) ([]byte, error) {
		return nil, errors.New("execution reverted")
	})

	p, err := uniswap.NewProvider(caller, logger.NewDiscard())
	require.NoError(t, err)

	_, err = p.AmountsOut(context.Background(), router, big.NewInt(1), []common.Address{usdc, usdt})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeContractCallFailed, apperror.GetCode(err))
}

func TestAmountsOut_GarbageResponse(t *testing.T) {
	caller := callerFunc(func(context.Context, common.Address, []byte) ([]byte, error) {
		return []byte{0x01, 0x02}, nil
	})

	p, err := uniswap.NewProvider(caller, logger.NewDiscard())
	require.NoError(t, err)

	_, err = p.AmountsOut(context.Background(), router, big.NewInt(1), []common.Address{usdc, usdt})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidQuote, apperror.GetCode(err))
}
