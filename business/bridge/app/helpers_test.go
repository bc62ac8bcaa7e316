package app

import (
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/internal/contracts"
)

var (
	signerAddr    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	recipientAddr = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	usdtAddr      = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	usdcAddr      = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	routerAddr    = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")

	testPoll = time.Millisecond
)

func erc20ABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(contracts.ERC20ABI))
	require.NoError(t, err)
	return parsed
}

func packDecimals(t *testing.T, d uint8) []byte {
	t.Helper()
	out, err := erc20ABI(t).Methods["decimals"].Outputs.Pack(d)
	require.NoError(t, err)
	return out
}

func packBalance(t *testing.T, v *big.Int) []byte {
	t.Helper()
	out, err := erc20ABI(t).Methods["balanceOf"].Outputs.Pack(v)
	require.NoError(t, err)
	return out
}

func eth(milli int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(milli), big.NewInt(1_000_000_000_000_000))
}

func gwei(n int64) *big.Int {
	return blockchainDomain.GweiToWei(n)
}

// calls matches contract call data by method selector.
type calls string

func (m calls) Matches(x any) bool {
	data, ok := x.([]byte)
	return ok && contracts.HasSelector(data, string(m))
}

func (m calls) String() string {
	return fmt.Sprintf("call data for %s", string(m))
}

var _ gomock.Matcher = calls("")

// submitted fakes the signer's answer to a Submit call.
func submitted(hash string, req blockchainDomain.TxRequest) *blockchainDomain.SubmittedTx {
	return &blockchainDomain.SubmittedTx{
		Hash:     common.HexToHash(hash),
		From:     signerAddr,
		To:       req.To,
		Value:    req.Value,
		GasLimit: req.GasLimit,
		GasPrice: req.GasPrice,
	}
}

func receipt(hash string, block uint64, status uint64, gasUsed uint64) *blockchainDomain.Receipt {
	return &blockchainDomain.Receipt{
		TxHash:      common.HexToHash(hash),
		BlockNumber: block,
		Status:      status,
		GasUsed:     gasUsed,
	}
}
