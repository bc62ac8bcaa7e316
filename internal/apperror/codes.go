package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Bridge-specific error codes
const (
	// Blockchain/Ethereum errors
	CodeEthereumConnectionFailed Code = "ETHEREUM_CONNECTION_FAILED"
	CodeEthereumRPCError         Code = "ETHEREUM_RPC_ERROR"
	CodeChainIDMismatch          Code = "CHAIN_ID_MISMATCH"
	CodeContractCallFailed       Code = "CONTRACT_CALL_FAILED"
	CodeSigningFailed            Code = "SIGNING_FAILED"

	// Request validation (rejected before any remote call)
	CodeInvalidAmount  Code = "INVALID_AMOUNT"
	CodeInvalidAddress Code = "INVALID_ADDRESS"
	CodeInvalidPath    Code = "INVALID_PATH"

	// Preconditions (rejected before submission)
	CodeInsufficientFunds      Code = "INSUFFICIENT_FUNDS"
	CodeInsufficientTokenFunds Code = "INSUFFICIENT_TOKEN_FUNDS"

	// Submission and confirmation pipeline
	CodeSubmissionError     Code = "SUBMISSION_ERROR"
	CodeTransactionReverted Code = "TRANSACTION_REVERTED"
	CodeSlippageExceeded    Code = "SLIPPAGE_EXCEEDED"
	CodeConfirmationTimeout Code = "CONFIRMATION_TIMEOUT"

	// DEX (Uniswap) errors
	CodeUniswapQuoteFailed Code = "UNISWAP_QUOTE_FAILED"
	CodeInvalidQuote       Code = "INVALID_QUOTE"

	// Record store errors
	CodeRecordNotFound  Code = "RECORD_NOT_FOUND"
	CodeRecordDuplicate Code = "RECORD_DUPLICATE"

	// Circuit breaker errors
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
