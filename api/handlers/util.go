package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes the uniform failure envelope.
func JSONError(w http.ResponseWriter, report domain.FailureReport, code int) {
	JSON(w, report, code)
}

// statusFor maps an error to a response status. Validation and lookup
// failures keep their own status; everything else is an execution failure.
func statusFor(err error) int {
	switch code := apperror.StatusCode(err); code {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusTooManyRequests:
		return code
	}
	return http.StatusInternalServerError
}
