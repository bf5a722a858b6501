package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"accounts-server/internal/shared/errors"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var statusByType = map[errors.ErrorType]int{
	errors.ErrorTypeNotFound:      http.StatusNotFound,
	errors.ErrorTypeValidation:    http.StatusBadRequest,
	errors.ErrorTypeConflict:      http.StatusConflict,
	errors.ErrorTypeUnauthorized:  http.StatusUnauthorized,
	errors.ErrorTypeConfiguration: http.StatusInternalServerError,
	errors.ErrorTypeInternal:      http.StatusInternalServerError,
}

// StatusCode returns the HTTP status for an error type. Unknown types are 500.
func StatusCode(errorType errors.ErrorType) int {
	if status, ok := statusByType[errorType]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error logs err once with request context and writes its client-safe form.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	status := StatusCode(errorType)

	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(r.Context(), logLevel(errorType), "Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", status,
		"error", err,
	)

	writeJSON(w, status, ErrorResponse{
		Error:   string(errorType),
		Message: errors.ClientMessage(err),
		Code:    status,
	})
}

func logLevel(errorType errors.ErrorType) slog.Level {
	switch errorType {
	case errors.ErrorTypeNotFound, errors.ErrorTypeValidation:
		return slog.LevelDebug
	case errors.ErrorTypeConflict:
		return slog.LevelInfo
	case errors.ErrorTypeUnauthorized:
		// Repeated failures are the abuse signal
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Success writes data as JSON with the given status.
func Success(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	// Headers are already sent, an encode failure cannot be reported to the client
	_ = json.NewEncoder(w).Encode(data)
}
