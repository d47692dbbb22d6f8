// Package errors provides the structured error types used across the API.
// Service-layer code returns *AppError so handlers can emit consistent JSON
// responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail     = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_SERVER_ERROR", Message: "An unexpected error occurred", StatusCode: http.StatusInternalServerError}
)

// Upload and snapshot errors.
var (
	ErrUnsupportedBrokerage = &AppError{Code: "UNSUPPORTED_BROKERAGE", Message: "Brokerage must be 'fidelity' or 'schwab'", StatusCode: http.StatusBadRequest}
	ErrEmptyCSV             = &AppError{Code: "EMPTY_CSV", Message: "No holdings found in CSV", StatusCode: http.StatusBadRequest}
	ErrMalformedCSV         = &AppError{Code: "MALFORMED_CSV", Message: "Could not parse CSV file", StatusCode: http.StatusBadRequest}
	ErrSnapshotNotFound     = &AppError{Code: "SNAPSHOT_NOT_FOUND", Message: "No snapshot exists for that date", StatusCode: http.StatusNotFound}
	ErrNoHoldings           = &AppError{Code: "NO_HOLDINGS", Message: "No holdings uploaded yet", StatusCode: http.StatusBadRequest}
)

// Classification errors.
var (
	ErrClassificationNotFound = &AppError{Code: "CLASSIFICATION_NOT_FOUND", Message: "Ticker has no classification", StatusCode: http.StatusNotFound}
	ErrInvalidClassification  = &AppError{Code: "INVALID_CLASSIFICATION", Message: "Classification breakdown is invalid", StatusCode: http.StatusBadRequest}
	ErrClassifierUnavailable  = &AppError{Code: "CLASSIFIER_UNAVAILABLE", Message: "AI classifier is not configured", StatusCode: http.StatusServiceUnavailable}
)

// Target and rebalance errors.
var (
	ErrInvalidTargetSum = &AppError{Code: "INVALID_TARGET_SUM", Message: "Target percentages must sum to 100", StatusCode: http.StatusBadRequest}
	ErrInvalidDimension = &AppError{Code: "INVALID_DIMENSION", Message: "Dimension must be 'region' or 'category'", StatusCode: http.StatusBadRequest}
)

// Analysis errors.
var (
	ErrAnalysisNotFound    = &AppError{Code: "ANALYSIS_NOT_FOUND", Message: "No analysis exists for that date", StatusCode: http.StatusNotFound}
	ErrAnalystUnavailable  = &AppError{Code: "ANALYST_UNAVAILABLE", Message: "AI analyst is not configured", StatusCode: http.StatusServiceUnavailable}
	ErrQuoteFetchFailed    = &AppError{Code: "QUOTE_FETCH_FAILED", Message: "Could not fetch live prices", StatusCode: http.StatusBadGateway}
	ErrPipelineUnavailable = &AppError{Code: "PIPELINE_UNAVAILABLE", Message: "Pipeline is not configured", StatusCode: http.StatusServiceUnavailable}
)
