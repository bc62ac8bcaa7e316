package app

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingDomain "github.com/fd1az/usdt-bridge/business/pricing/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
)

func resolved(t *testing.T, hash string, status uint64) *domain.TransactionRecord {
	t.Helper()
	return resolvedKind(t, domain.KindTokenTransfer, hash, status)
}

func resolvedKind(t *testing.T, kind domain.Kind, hash string, status uint64) *domain.TransactionRecord {
	t.Helper()
	pending := pendingRecord(hash)
	pending.Kind = kind
	rec := receipt(hash, 19_000_000, status, 50_000)
	rec.EffectiveGasPrice = gwei(25)
	final, err := pending.Resolve(rec, 1, time.Unix(1_760_000_000, 0))
	require.NoError(t, err)
	return final
}

func TestBuild_Confirmed(t *testing.T) {
	r := NewOutcomeReporter("")
	final := resolved(t, "0x1234", 1)

	res := r.Build(final, ResultInput{
		Type:           domain.ResultIssue,
		InputCurrency:  "USD (Fiat)",
		AmountIn:       decimal.NewFromInt(25),
		OutputCurrency: "USDT",
		AmountOut:      decimal.NewFromInt(25),
		Rate:           "1:1",
		Token:          asset.USDT,
		Signer:         signerAddr,
		Recipient:      recipientAddr,
		Balances:       &BalanceReadings{SignerToken: big.NewInt(75_000_000)},
	})

	assert.True(t, res.Success)
	assert.Equal(t, domain.StatusConfirmed, res.Transaction.Status)
	assert.Equal(t, "transfer", res.Transaction.Method)
	assert.Equal(t, uint64(19_000_000), res.Transaction.BlockNumber)
	assert.Equal(t, "50000", res.Transaction.GasUsed)
	assert.Equal(t, "250000", res.Transaction.GasLimit)
	assert.Equal(t, "25 Gwei", res.Transaction.GasPrice)
	// 50000 * 25 gwei
	assert.Equal(t, "0.00125 ETH", res.Transaction.TransactionFee)
	assert.Equal(t, "https://etherscan.io/tx/"+final.Hash.Hex(), res.Etherscan.Transaction)
	assert.Equal(t, "https://etherscan.io/token/"+usdtAddr.Hex(), res.Etherscan.Token)
	assert.Equal(t, "https://etherscan.io/address/"+signerAddr.Hex(), res.Etherscan.Signer)
	assert.Equal(t, "https://etherscan.io/address/"+recipientAddr.Hex(), res.Etherscan.Recipient)
	require.NotNil(t, res.Emission)
	assert.Equal(t, "25", res.Emission.AmountUSDT)
	require.NotNil(t, res.ContractInfo)
	assert.Equal(t, uint8(6), res.ContractInfo.Decimals)
	assert.Equal(t, "75 USDT", res.Balances.SignerToken)
	assert.Equal(t, "25 USDT", res.Balances.RecipientReceived)
}

func TestBuild_FailedReceiptReportsFailed(t *testing.T) {
	r := NewOutcomeReporter("")
	final := resolved(t, "0x5678", 0)

	res := r.Build(final, ResultInput{Type: domain.ResultIssue, Token: asset.USDT})

	assert.False(t, res.Success)
	assert.Equal(t, domain.StatusFailed, res.Transaction.Status)
	assert.NotEqual(t, domain.StatusConfirmed, res.Transaction.Status)
	assert.Equal(t, "0.00125 ETH", res.Transaction.TransactionFee)
	assert.Empty(t, res.Balances.RecipientReceived)
}

func TestBuild_MissingFieldsDefault(t *testing.T) {
	r := NewOutcomeReporter("https://sepolia.etherscan.io/")
	pending := pendingRecord("0x99")

	view := r.View(pending)

	assert.Equal(t, uint64(0), view.BlockNumber)
	assert.Equal(t, "0", view.GasUsed)
	assert.Equal(t, "0 ETH", view.TransactionFee)
	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+pending.Hash.Hex(), r.TxURL(pending.Hash))
}

func TestFail_SwapCarriesSlippageHint(t *testing.T) {
	r := NewOutcomeReporter("")
	final := resolvedKind(t, domain.KindSwap, "0xabcd", 0)
	quote, err := pricingDomain.NewSwapQuote(big.NewInt(1_000_000), big.NewInt(1000), []common.Address{usdcAddr, usdtAddr}, 500)
	require.NoError(t, err)

	res := r.Build(final, ResultInput{Type: domain.ResultSwap, Quote: quote, Token: asset.USDT, TokenIn: asset.USDC})
	res = r.Fail(res, apperror.New(apperror.CodeTransactionReverted))

	assert.False(t, res.Success)
	assert.Contains(t, res.SuggestedAction, apperror.SuggestedActionFor(apperror.CodeSlippageExceeded))
	assert.Equal(t, "0.00095", res.Swap.MinAmountOut)
}

func TestFail_RevertedApprovalHasNoSlippageHint(t *testing.T) {
	r := NewOutcomeReporter("")
	approval := resolvedKind(t, domain.KindApprove, "0xabce", 0)
	quote, err := pricingDomain.NewSwapQuote(big.NewInt(1_000_000), big.NewInt(1000), []common.Address{usdcAddr, usdtAddr}, 500)
	require.NoError(t, err)

	res := r.Build(approval, ResultInput{Type: domain.ResultSwap, Quote: quote, Token: asset.USDT, TokenIn: asset.USDC})
	res = r.Fail(res, apperror.New(apperror.CodeTransactionReverted))

	assert.False(t, res.Success)
	assert.NotContains(t, res.SuggestedAction, apperror.SuggestedActionFor(apperror.CodeSlippageExceeded))
}

func TestBuildFailure(t *testing.T) {
	r := NewOutcomeReporter("")

	report := r.BuildFailure(apperror.New(apperror.CodeInsufficientFunds, apperror.WithContext("balance 0.0005 ETH < 0.001 ETH")))

	assert.False(t, report.Success)
	assert.Equal(t, "INSUFFICIENT_FUNDS", report.Code)
	assert.Contains(t, report.Error, "0.0005")
	assert.Equal(t, "Verify that the signer holds enough ETH for gas", report.SuggestedAction)
}
