package app

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	blockchainDomain "github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	pricingDomain "github.com/fd1az/usdt-bridge/business/pricing/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/asset"
)

// DefaultExplorerURL is the block explorer the result links point to.
const DefaultExplorerURL = "https://etherscan.io"

// BalanceReadings are raw balances read after confirmation. Nil entries
// could not be read.
type BalanceReadings struct {
	SignerETHBefore *big.Int
	SignerETH       *big.Int
	SignerToken     *big.Int
	RecipientToken  *big.Int
}

// ResultInput is everything besides the record that a result shows.
type ResultInput struct {
	Type    string
	Message string

	InputCurrency  string
	AmountIn       decimal.Decimal
	OutputCurrency string
	AmountOut      decimal.Decimal
	Rate           string

	// Token is the token received; nil for native transfers.
	Token     *asset.Asset
	Signer    common.Address
	Recipient common.Address

	Balances *BalanceReadings

	Router   common.Address
	Quote    *pricingDomain.SwapQuote
	TokenIn  *asset.Asset
	Approval *domain.TransactionRecord
}

// OutcomeReporter formats terminal records for callers. It is pure.
type OutcomeReporter struct {
	explorer string
}

// NewOutcomeReporter creates a reporter linking to explorerURL.
func NewOutcomeReporter(explorerURL string) *OutcomeReporter {
	if explorerURL == "" {
		explorerURL = DefaultExplorerURL
	}
	return &OutcomeReporter{explorer: strings.TrimRight(explorerURL, "/")}
}

// Build assembles the result for a terminal record. Missing inputs render
// as zero values.
func (r *OutcomeReporter) Build(rec *domain.TransactionRecord, in ResultInput) *domain.BridgeResult {
	view := r.View(rec)

	res := &domain.BridgeResult{
		Success:     rec.Status == domain.StatusConfirmed,
		Type:        in.Type,
		Network:     domain.NetworkMainnet,
		Message:     in.Message,
		OperationID: rec.OperationID.String(),
		Transaction: view,
		Conversion: domain.Conversion{
			InputCurrency:  in.InputCurrency,
			OutputCurrency: in.OutputCurrency,
			Rate:           in.Rate,
			AmountInput:    in.AmountIn.String(),
			AmountOutput:   in.AmountOut.String(),
			Status:         string(rec.Status),
		},
		Etherscan: domain.Explorer{
			Transaction: r.TxURL(rec.Hash),
			Signer:      r.AddressURL(in.Signer),
			Recipient:   r.AddressURL(in.Recipient),
		},
	}

	if in.Token != nil {
		res.ContractInfo = &domain.ContractInfo{
			Address:  in.Token.Address().Hex(),
			Name:     in.Token.Name(),
			Symbol:   in.Token.Symbol(),
			Decimals: in.Token.Decimals(),
			Network:  domain.NetworkMainnet,
		}
		res.Etherscan.Token = r.TokenURL(in.Token.Address())
	}

	if in.Type == domain.ResultIssue {
		res.Emission = &domain.Emission{
			Method:     "transfer(address to, uint256 amount)",
			AmountUSD:  in.AmountIn.String(),
			AmountUSDT: in.AmountOut.String(),
			From:       in.Signer.Hex(),
			To:         in.Recipient.Hex(),
			Timestamp:  rec.CreatedAt,
		}
	}

	if in.Quote != nil {
		res.Swap = r.swapSummary(in)
	}
	if in.Approval != nil {
		approval := r.View(in.Approval)
		res.Approval = &approval
	}

	res.Balances = r.balances(rec, in)
	return res
}

// View renders a record for display.
func (r *OutcomeReporter) View(rec *domain.TransactionRecord) domain.TransactionView {
	var block, gasUsed uint64
	if rec.BlockNumber != nil {
		block = *rec.BlockNumber
	}
	if rec.GasUsed != nil {
		gasUsed = *rec.GasUsed
	}

	return domain.TransactionView{
		Hash:           rec.Hash.Hex(),
		From:           rec.From.Hex(),
		To:             rec.To.Hex(),
		Method:         rec.Kind.Method(),
		BlockNumber:    block,
		Status:         rec.Status,
		GasUsed:        fmt.Sprintf("%d", gasUsed),
		GasLimit:       fmt.Sprintf("%d", rec.GasLimit),
		GasPrice:       FormatGwei(rec.EffectiveGasPrice),
		TransactionFee: FormatEther(rec.Fee()),
		Confirmations:  rec.Confirmations,
		Timestamp:      rec.CreatedAt,
	}
}

// BuildFailure renders err as the uniform failure envelope.
func (r *OutcomeReporter) BuildFailure(err error) domain.FailureReport {
	return domain.FailureReport{
		Success:         false,
		Code:            string(apperror.GetCode(err)),
		Error:           err.Error(),
		SuggestedAction: apperror.SuggestedAction(err),
	}
}

// Fail marks res as failed by err. A reverted swap carries the slippage
// hint, since the router's minimum-output check reverts like any other.
func (r *OutcomeReporter) Fail(res *domain.BridgeResult, err error) *domain.BridgeResult {
	res.Success = false
	res.Error = err.Error()
	res.SuggestedAction = apperror.SuggestedAction(err)
	if res.Swap != nil && res.Transaction.Method == domain.KindSwap.Method() &&
		apperror.GetCode(err) == apperror.CodeTransactionReverted {
		res.SuggestedAction = res.SuggestedAction + ". " + apperror.SuggestedActionFor(apperror.CodeSlippageExceeded) +
			" (minimum output " + res.Swap.MinAmountOut + ")"
	}
	return res
}

// TxURL links a transaction.
func (r *OutcomeReporter) TxURL(hash common.Hash) string {
	return r.explorer + "/tx/" + hash.Hex()
}

// TokenURL links a token contract.
func (r *OutcomeReporter) TokenURL(token common.Address) string {
	return r.explorer + "/token/" + token.Hex()
}

// AddressURL links an account.
func (r *OutcomeReporter) AddressURL(addr common.Address) string {
	return r.explorer + "/address/" + addr.Hex()
}

func (r *OutcomeReporter) swapSummary(in ResultInput) *domain.SwapSummary {
	inDecimals, outDecimals := uint8(0), uint8(0)
	if in.TokenIn != nil {
		inDecimals = in.TokenIn.Decimals()
	}
	if in.Token != nil {
		outDecimals = in.Token.Decimals()
	}

	path := make([]string, 0, len(in.Quote.Path))
	for _, p := range in.Quote.Path {
		path = append(path, p.Hex())
	}

	return &domain.SwapSummary{
		Router:             in.Router.Hex(),
		Path:               path,
		AmountIn:           asset.FormatUnits(in.Quote.AmountIn, inDecimals),
		AmountOutEstimated: asset.FormatUnits(in.Quote.AmountOutEstimated, outDecimals),
		MinAmountOut:       asset.FormatUnits(in.Quote.MinAmountOut, outDecimals),
		SlippageBps:        in.Quote.SlippageBps,
	}
}

func (r *OutcomeReporter) balances(rec *domain.TransactionRecord, in ResultInput) *domain.Balances {
	b := &domain.Balances{TransactionFee: FormatEther(rec.Fee())}

	if rec.Status == domain.StatusConfirmed {
		b.RecipientReceived = in.AmountOut.String() + " " + in.OutputCurrency
	}

	if in.Balances == nil {
		return b
	}
	if v := in.Balances.SignerETHBefore; v != nil {
		b.SignerETHBefore = FormatEther(v)
	}
	if v := in.Balances.SignerETH; v != nil {
		b.SignerETH = FormatEther(v)
	}
	if in.Token == nil {
		return b
	}
	if v := in.Balances.SignerToken; v != nil {
		b.SignerToken = asset.NewAmount(in.Token, v).String()
	}
	if v := in.Balances.RecipientToken; v != nil {
		b.RecipientToken = asset.NewAmount(in.Token, v).String()
	}
	return b
}

// FormatEther renders wei as "X ETH".
func FormatEther(wei *big.Int) string {
	return blockchainDomain.Ether(wei).String() + " ETH"
}

// FormatGwei renders wei as "X Gwei".
func FormatGwei(wei *big.Int) string {
	return blockchainDomain.Gwei(wei).String() + " Gwei"
}
