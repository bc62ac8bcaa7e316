package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Blockchain/Ethereum errors
	CodeEthereumConnectionFailed: "Failed to connect to Ethereum node",
	CodeEthereumRPCError:         "Ethereum RPC call failed",
	CodeChainIDMismatch:          "Connected node reports an unexpected chain id",
	CodeContractCallFailed:       "Smart contract call failed",
	CodeSigningFailed:            "Failed to sign transaction",

	// Request validation
	CodeInvalidAmount:  "Amount must be a positive number",
	CodeInvalidAddress: "Invalid account address",
	CodeInvalidPath:    "Invalid swap path",

	// Preconditions
	CodeInsufficientFunds:      "Insufficient native balance to cover gas",
	CodeInsufficientTokenFunds: "Insufficient token balance for transfer",

	// Submission and confirmation pipeline
	CodeSubmissionError:     "Transaction submission failed",
	CodeTransactionReverted: "Transaction reverted on-chain",
	CodeSlippageExceeded:    "Swap output below minimum amount",
	CodeConfirmationTimeout: "Timed out waiting for confirmation",

	// DEX (Uniswap) errors
	CodeUniswapQuoteFailed: "Failed to get Uniswap quote",
	CodeInvalidQuote:       "Invalid quote data",

	// Record store errors
	CodeRecordNotFound:  "Transaction record not found",
	CodeRecordDuplicate: "Transaction record already exists",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}

// suggestedActions maps pipeline error codes to a remedial hint for callers.
var suggestedActions = map[Code]string{
	CodeInvalidAmount:          "Send a positive numeric amount",
	CodeInvalidAddress:         "Send a 0x-prefixed 20-byte hex address",
	CodeInvalidPath:            "Use two distinct, non-zero token addresses",
	CodeInsufficientFunds:      "Verify that the signer holds enough ETH for gas",
	CodeInsufficientTokenFunds: "Top up the signer's token balance before issuing",
	CodeSubmissionError:        "Check RPC connectivity and the signer nonce, then resubmit",
	CodeTransactionReverted:    "Inspect the transaction on the block explorer; gas was consumed",
	CodeSlippageExceeded:       "Retry with a smaller amount or when liquidity improves",
	CodeConfirmationTimeout:    "The transaction may still be mined; check its hash before resubmitting",
	CodeEthereumRPCError:       "Check RPC connectivity and retry",
	CodeUniswapQuoteFailed:     "Verify the router address and that the pair has liquidity",
	CodeCircuitOpen:            "The node is failing repeatedly; retry later",
}

// SuggestedAction returns the remedial hint for the error's code, if any.
func SuggestedAction(err error) string {
	return SuggestedActionFor(GetCode(err))
}

// SuggestedActionFor returns the remedial hint registered for code.
func SuggestedActionFor(code Code) string {
	return suggestedActions[code]
}
