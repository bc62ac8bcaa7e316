package domain

import "time"

// Result types
const (
	ResultIssue    = "USD_TO_USDT_EMISSION"
	ResultSwap     = "USDC_TO_USDT_SWAP"
	ResultDemo     = "DEMO_NATIVE_TRANSFER"
	NetworkMainnet = "Ethereum Mainnet"
)

// BridgeResult is the outward report of one bridge operation. It is only
// built from a terminal TransactionRecord.
type BridgeResult struct {
	Success         bool             `json:"success"`
	Type            string           `json:"type"`
	Network         string           `json:"network"`
	Message         string           `json:"message"`
	OperationID     string           `json:"operationId"`
	Emission        *Emission        `json:"emission,omitempty"`
	Swap            *SwapSummary     `json:"swap,omitempty"`
	Transaction     TransactionView  `json:"transaction"`
	Approval        *TransactionView `json:"approval,omitempty"`
	ContractInfo    *ContractInfo    `json:"contractInfo,omitempty"`
	Conversion      Conversion       `json:"conversion"`
	Balances        *Balances        `json:"balances,omitempty"`
	Etherscan       Explorer         `json:"etherscan"`
	Error           string           `json:"error,omitempty"`
	SuggestedAction string           `json:"suggestedAction,omitempty"`
}

// Emission describes an issue-as-owner transfer.
type Emission struct {
	Method     string    `json:"method"`
	AmountUSD  string    `json:"amountUSD"`
	AmountUSDT string    `json:"amountUSDT"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Timestamp  time.Time `json:"timestamp"`
}

// SwapSummary describes the router quote a swap was submitted with.
type SwapSummary struct {
	Router             string   `json:"router"`
	Path               []string `json:"path"`
	AmountIn           string   `json:"amountIn"`
	AmountOutEstimated string   `json:"amountOutEstimated"`
	MinAmountOut       string   `json:"minAmountOut"`
	SlippageBps        uint32   `json:"slippageBps"`
}

// TransactionView is the display form of a TransactionRecord.
type TransactionView struct {
	Hash           string    `json:"hash"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Method         string    `json:"method"`
	BlockNumber    uint64    `json:"blockNumber"`
	Status         Status    `json:"status"`
	GasUsed        string    `json:"gasUsed"`
	GasLimit       string    `json:"gasLimit"`
	GasPrice       string    `json:"gasPrice"`
	TransactionFee string    `json:"transactionFee"`
	Confirmations  uint64    `json:"confirmations"`
	Timestamp      time.Time `json:"timestamp"`
}

// ContractInfo describes the token contract involved.
type ContractInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Network  string `json:"network"`
}

// Conversion is the fiat or token conversion applied.
type Conversion struct {
	InputCurrency  string `json:"inputCurrency"`
	OutputCurrency string `json:"outputCurrency"`
	Rate           string `json:"rate"`
	AmountInput    string `json:"amountInput"`
	AmountOutput   string `json:"amountOutput"`
	Status         string `json:"status"`
}

// Balances is a best-effort snapshot read after confirmation. Unreadable
// entries are empty.
type Balances struct {
	SignerETHBefore   string `json:"signerETHBefore,omitempty"`
	SignerETH         string `json:"signerETH,omitempty"`
	SignerToken       string `json:"signerToken,omitempty"`
	RecipientToken    string `json:"recipientToken,omitempty"`
	RecipientReceived string `json:"recipientReceived,omitempty"`
	TransactionFee    string `json:"transactionFee"`
}

// Explorer links for the transaction and the accounts involved.
type Explorer struct {
	Transaction string `json:"transaction"`
	Token       string `json:"token,omitempty"`
	Signer      string `json:"signer"`
	Recipient   string `json:"recipient"`
}

// FailureReport is the uniform error envelope.
type FailureReport struct {
	Success         bool   `json:"success"`
	Code            string `json:"code,omitempty"`
	Error           string `json:"error"`
	SuggestedAction string `json:"suggestedAction,omitempty"`
}
