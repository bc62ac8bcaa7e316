package apperror

import (
	"errors"
	"net/http"
	"strings"
)

// AppError is a coded pipeline error. Code drives the HTTP status, the
// message and the suggested action shown to the caller.
type AppError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Context    string `json:"context,omitempty"`
	cause      error
}

// Error implements the error interface
func (e *AppError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Context != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Context)
		sb.WriteString(")")
	}
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

// Response is the JSON failure envelope written to HTTP callers.
type Response struct {
	Success         bool   `json:"success"`
	Code            Code   `json:"code"`
	Error           string `json:"error"`
	Context         string `json:"context,omitempty"`
	SuggestedAction string `json:"suggestedAction,omitempty"`
}

// ToResponse renders the error as a failure envelope.
func (e *AppError) ToResponse() Response {
	return Response{
		Code:            e.Code,
		Error:           e.Message,
		Context:         e.Context,
		SuggestedAction: suggestedActions[e.Code],
	}
}

// New creates an AppError for code with the registered message.
func New(code Code, opts ...Option) *AppError {
	err := &AppError{
		Code:       code,
		Message:    messages[code],
		StatusCode: defaultStatusCode(code),
	}
	for _, opt := range opts {
		opt(err)
	}
	if err.Message == "" {
		err.Message = string(code)
	}
	return err
}

// Option configures an AppError.
type Option func(*AppError)

// WithContext names the input or step the error refers to.
func WithContext(context string) Option {
	return func(e *AppError) {
		e.Context = context
	}
}

// WithCause wraps an underlying error.
func WithCause(cause error) Option {
	return func(e *AppError) {
		e.cause = cause
	}
}

// NotFound creates a 404 error.
func NotFound(code Code, context string) *AppError {
	err := New(code, WithContext(context))
	err.StatusCode = http.StatusNotFound
	return err
}

// Validation creates a 400 error. Validation failures never reach the chain.
func Validation(code Code, context string) *AppError {
	err := New(code, WithContext(context))
	err.StatusCode = http.StatusBadRequest
	return err
}

// Internal creates a 500 error wrapping cause.
func Internal(code Code, context string, cause error) *AppError {
	err := New(code, WithContext(context), WithCause(cause))
	err.StatusCode = http.StatusInternalServerError
	return err
}

// Wrap converts err into an AppError. An AppError anywhere in the chain
// keeps its code; the copy returned gets context when it had none. The
// original is never modified.
func Wrap(err error, code Code, context string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		cp := *appErr
		if context != "" && cp.Context == "" {
			cp.Context = context
		}
		return &cp
	}

	return Internal(code, context, err)
}

// GetCode extracts the error code, or CodeUnknownError for foreign errors.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknownError
}

// StatusCode returns the HTTP status for err, 500 for foreign errors.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func defaultStatusCode(code Code) int {
	s := string(code)
	switch {
	case code == CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case strings.Contains(s, "NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(s, "INVALID_"):
		return http.StatusBadRequest
	case strings.Contains(s, "CONNECTION"),
		strings.Contains(s, "TIMEOUT"),
		strings.HasPrefix(s, "CIRCUIT"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

